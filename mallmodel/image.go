package mallmodel

import (
	"fmt"
	"net/url"
	"strings"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"}

// ImageValidation is the outcome of checking a product image URL
type ImageValidation struct {
	Valid bool
	URL   string
	Error string
	// LikelyImage is false when the URL has no image extension and no image/ content marker
	LikelyImage bool
}

// ValidateImageURL checks that an image URL is absolute http(s)
func ValidateImageURL(raw string) ImageValidation {
	if strings.TrimSpace(raw) == "" {
		return ImageValidation{Error: "empty URL"}
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		msg := "invalid URL"
		if err != nil {
			msg = fmt.Sprintf("invalid URL: %v", err)
		}
		return ImageValidation{URL: raw, Error: msg}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ImageValidation{URL: raw, Error: "URL scheme must be http or https"}
	}

	lower := strings.ToLower(raw)
	likely := strings.Contains(lower, "image/")
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			likely = true
			break
		}
	}

	return ImageValidation{Valid: true, URL: raw, LikelyImage: likely}
}

// FallbackImage returns an inline SVG placeholder of the given size
func FallbackImage(width, height int, text string) string {
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<rect width="%d" height="%d" fill="#f5f5f5"/>`+
			`<text x="50%%" y="50%%" font-family="Arial" font-size="14" fill="#999" text-anchor="middle" dy=".3em">%s</text></svg>`,
		width, height, width, height, width, height, text)
	return "data:image/svg+xml;charset=utf-8," + url.PathEscape(svg)
}

// DisplayImageURL returns raw when it is a valid image URL, otherwise a placeholder
func DisplayImageURL(raw, fallbackText string) string {
	if v := ValidateImageURL(raw); v.Valid {
		return v.URL
	}
	return FallbackImage(200, 200, fallbackText)
}
