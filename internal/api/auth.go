package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/existflow/medshare/internal/model"
)

// Login authenticates and returns the session token and user
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.AuthPayload, error) {
	env, err := c.do(ctx, call{op: "auth.login", method: http.MethodPost, path: "/auth/login", body: creds})
	if err != nil {
		return nil, err
	}
	return decodeAuthPayload(env)
}

// Register creates an account and returns the session token and user
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthPayload, error) {
	env, err := c.do(ctx, call{op: "auth.register", method: http.MethodPost, path: "/auth/register", body: req})
	if err != nil {
		return nil, err
	}
	return decodeAuthPayload(env)
}

// ForgotPassword asks the backend to email a reset link
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.do(ctx, call{
		op:     "auth.forgot_password",
		method: http.MethodPost,
		path:   "/auth/forgot-password",
		body:   map[string]string{"email": email},
	})
	return err
}

// ResetPassword sets a new password using an emailed reset token
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	_, err := c.do(ctx, call{
		op:     "auth.reset_password",
		method: http.MethodPost,
		path:   "/auth/reset-password",
		body:   map[string]string{"token": token, "nova_senha": newPassword},
	})
	return err
}

// VerifyResetToken checks that a reset token is still usable
func (c *Client) VerifyResetToken(ctx context.Context, token string) error {
	_, err := c.do(ctx, call{
		op:     "auth.verify_reset_token",
		method: http.MethodGet,
		path:   "/auth/verify-reset-token/" + url.PathEscape(token),
	})
	return err
}

// decodeAuthPayload reads {token, user} from data, falling back to the top level
func decodeAuthPayload(env *Envelope) (*model.AuthPayload, error) {
	var payload model.AuthPayload
	if err := env.Decode(&payload); err != nil {
		return nil, &Error{Err: err}
	}
	if payload.Token == "" {
		var top model.AuthPayload
		if err := env.DecodeRaw(&top); err == nil && top.Token != "" {
			payload = top
		}
	}
	if payload.Token == "" {
		return nil, &Error{Message: "Missing token in authentication response"}
	}
	return &payload, nil
}
