package api

import (
	"context"
	"net/http"

	"github.com/existflow/medshare/internal/model"
)

// QRImage is the binary QR code of the public link
type QRImage struct {
	Data        []byte
	ContentType string
}

// Profile fetches the current user
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	env, err := c.do(ctx, call{op: "users.profile", method: http.MethodGet, path: "/users/profile"})
	if err != nil {
		return nil, err
	}
	if !env.HasData() {
		return nil, &Error{Message: "Empty profile response"}
	}
	return decodeData[model.User](env)
}

// UpdateProfile saves profile fields and returns the updated user. The user is nil when
// the response carries no data.
func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.User, error) {
	env, err := c.do(ctx, call{op: "users.update_profile", method: http.MethodPut, path: "/users/profile", body: update})
	if err != nil {
		return nil, err
	}
	if !env.HasData() {
		return nil, nil
	}
	return decodeData[model.User](env)
}

// ChangePassword replaces the account password
func (c *Client) ChangePassword(ctx context.Context, change model.PasswordChange) error {
	_, err := c.do(ctx, call{op: "users.change_password", method: http.MethodPut, path: "/users/password", body: change})
	return err
}

// GeneratePublicLink enables the public link, or changes its access password
func (c *Client) GeneratePublicLink(ctx context.Context, password string) (*model.GeneratedLink, error) {
	env, err := c.do(ctx, call{
		op:     "users.generate_public_link",
		method: http.MethodPost,
		path:   "/users/generate-public-link",
		body:   map[string]string{"senha_acesso_publico": password},
	})
	if err != nil {
		return nil, err
	}
	return decodeData[model.GeneratedLink](env)
}

// PublicLinkInfo returns the public link configuration of the current user
func (c *Client) PublicLinkInfo(ctx context.Context) (*model.PublicLinkInfo, error) {
	env, err := c.do(ctx, call{op: "users.public_link_info", method: http.MethodGet, path: "/users/public-link-info"})
	if err != nil {
		return nil, err
	}
	return decodeData[model.PublicLinkInfo](env)
}

// DisablePublicLink removes the public link
func (c *Client) DisablePublicLink(ctx context.Context) error {
	_, err := c.do(ctx, call{op: "users.disable_public_link", method: http.MethodDelete, path: "/users/public-link"})
	return err
}

// QRCode downloads the QR code image of the public link
func (c *Client) QRCode(ctx context.Context) (*QRImage, error) {
	_, raw, err := c.roundTrip(ctx, call{
		op:     "users.qr_code",
		method: http.MethodGet,
		path:   "/users/qr-code",
		accept: "image/png, image/*",
	})
	if err != nil {
		return nil, err
	}
	contentType := raw.contentType
	if contentType == "" {
		contentType = "image/png"
	}
	return &QRImage{Data: raw.body, ContentType: contentType}, nil
}

// DeleteAccount permanently removes the account. The password is required.
func (c *Client) DeleteAccount(ctx context.Context, password string) error {
	_, err := c.do(ctx, call{
		op:     "users.delete_account",
		method: http.MethodDelete,
		path:   "/users/account",
		body:   map[string]string{"senha": password},
	})
	return err
}

// decodeData unmarshals the envelope data into a new T
func decodeData[T any](env *Envelope) (*T, error) {
	var out T
	if err := env.Decode(&out); err != nil {
		return nil, &Error{Err: err}
	}
	return &out, nil
}
