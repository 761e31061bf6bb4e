package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/existflow/medshare/internal/model"
)

// CheckPublicLink returns display metadata for a public link identifier
func (c *Client) CheckPublicLink(ctx context.Context, id string) (*model.PublicLinkCheck, error) {
	env, err := c.do(ctx, call{op: "public.check", method: http.MethodGet, path: "/public/check/" + url.PathEscape(id)})
	if err != nil {
		return nil, err
	}
	return decodeData[model.PublicLinkCheck](env)
}

// PublicStats returns the non-sensitive summary of a public profile
func (c *Client) PublicStats(ctx context.Context, id string) (*model.PublicStats, error) {
	env, err := c.do(ctx, call{op: "public.stats", method: http.MethodGet, path: "/public/stats/" + url.PathEscape(id)})
	if err != nil {
		return nil, err
	}
	return decodeData[model.PublicStats](env)
}

// PublicProfile exchanges the access password for the emergency view
func (c *Client) PublicProfile(ctx context.Context, id, password string) (*model.PublicProfile, error) {
	env, err := c.do(ctx, call{
		op:     "public.profile",
		method: http.MethodPost,
		path:   "/public/profile/" + url.PathEscape(id),
		body:   map[string]string{"senha": password},
	})
	if err != nil {
		return nil, err
	}
	return decodeData[model.PublicProfile](env)
}
