package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-mall-client/mallmodel"
)

type profileResponse struct {
	Profile mallmodel.Profile `json:"user_profile"`
}

func (c *Client) GetProfile(ctx context.Context) (*mallmodel.Profile, error) {
	var body profileResponse
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/customer/profile",
		auth:     true,
		fallback: "failed to load profile",
	}, &body)
	if err != nil {
		return nil, err
	}
	return &body.Profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update mallmodel.ProfileUpdate) error {
	return c.do(ctx, request{
		method:   http.MethodPut,
		path:     "/customer/profile",
		body:     update,
		auth:     true,
		strict:   true,
		fallback: "failed to update profile",
	}, nil)
}
