package api

import (
	"context"
	"net/http"

	"github.com/existflow/medshare/internal/model"
)

// MedicalInfo fetches the medical document of the current user
func (c *Client) MedicalInfo(ctx context.Context) (*model.MedicalInfo, error) {
	env, err := c.do(ctx, call{op: "medical.get", method: http.MethodGet, path: "/medical/info"})
	if err != nil {
		return nil, err
	}
	return decodeData[model.MedicalInfo](env)
}

// UpdateMedicalInfo replaces the whole medical document
func (c *Client) UpdateMedicalInfo(ctx context.Context, update model.MedicalUpdate) (*model.MedicalInfo, error) {
	env, err := c.do(ctx, call{op: "medical.update", method: http.MethodPut, path: "/medical/info", body: update})
	if err != nil {
		return nil, err
	}
	return decodeData[model.MedicalInfo](env)
}

// ClearMedicalInfo empties the medical document
func (c *Client) ClearMedicalInfo(ctx context.Context) error {
	_, err := c.do(ctx, call{op: "medical.clear", method: http.MethodDelete, path: "/medical/info"})
	return err
}
