// Package sessions owns the authenticated identity of the mall client and
// persists it across restarts.
package sessions

import (
	"github.com/jrsteele09/go-mall-client/internal/utils"
)

// Session is the authenticated identity held by the Store.
// IsAuthenticated holds exactly when Credential is non-empty; IsAdmin is only
// meaningful alongside it and is never re-validated against the server.
type Session struct {
	Credential  string // Opaque bearer token, empty when logged out
	UserID      *int64 // Nil when unknown
	DisplayName string
	IsAdmin     bool
}

func (s Session) IsAuthenticated() bool {
	return s.Credential != ""
}

// UserIDValue returns the user id or 0 when it is unknown
func (s Session) UserIDValue() int64 {
	return utils.Value(s.UserID)
}

// AuthResponse is the outcome of a successful login as recorded by Store.Login
type AuthResponse struct {
	Credential      string  `json:"token"`
	UserID          *int64  `json:"userId"`
	DisplayName     *string `json:"username"`
	IsAdministrator bool    `json:"isAdmin"`
}
