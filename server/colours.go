package server

import "github.com/fatih/color"

var methodColors = map[string]*color.Color{
	"GET":    color.New(color.FgGreen),
	"POST":   color.New(color.FgBlue),
	"PUT":    color.New(color.FgCyan),
	"DELETE": color.New(color.FgYellow),
	"PATCH":  color.New(color.FgMagenta),
}

var (
	defaultMethodColor = color.New(color.FgHiBlack)
	errorColor         = color.New(color.FgRed)
)

// paintMethod pads and colours an HTTP method for route and request logs
func paintMethod(method string) string {
	c, ok := methodColors[method]
	if !ok {
		c = defaultMethodColor
	}
	return c.Sprintf(" %-7s", method)
}
