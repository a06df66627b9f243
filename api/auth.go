package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-mall-client/internal/utils"
	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/jrsteele09/go-mall-client/sessions"
)

type loginResponse struct {
	Token string              `json:"token"`
	User  mallmodel.LoginUser `json:"user"`
}

// Login authenticates with the API. The result is meant to be handed to
// sessions.Store.Login; this call does not touch the session itself.
func (c *Client) Login(ctx context.Context, username, password string) (*sessions.AuthResponse, error) {
	var body loginResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/login",
		body:     mallmodel.LoginRequest{Username: username, Password: password},
		strict:   true,
		fallback: "login failed",
	}, &body)
	if err != nil {
		return nil, err
	}

	return &sessions.AuthResponse{
		Credential:      body.Token,
		UserID:          utils.Ptr(body.User.ID),
		DisplayName:     utils.Ptr(body.User.Username),
		IsAdministrator: body.User.UserType == mallmodel.UserTypeAdmin,
	}, nil
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates an account and returns the server's confirmation message
func (c *Client) Register(ctx context.Context, req mallmodel.RegisterRequest) (string, error) {
	var body messageResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/register",
		body:     req,
		strict:   true,
		fallback: "registration failed",
	}, &body)
	if err != nil {
		return "", err
	}
	return body.Message, nil
}

// Logout asks the server to revoke the held credential. It does not clear the
// session; callers do that whether or not the server was reached.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/logout",
		auth:     true,
		fallback: "logout failed",
	}, nil)
}
