package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/existflow/medshare/internal/model"
)

func contactPath(id int64) string {
	return "/emergency-contacts/" + strconv.FormatInt(id, 10)
}

// Contacts lists the emergency contacts of the current user
func (c *Client) Contacts(ctx context.Context) ([]model.EmergencyContact, error) {
	env, err := c.do(ctx, call{op: "contacts.list", method: http.MethodGet, path: "/emergency-contacts"})
	if err != nil {
		return nil, err
	}
	contacts, err := decodeData[[]model.EmergencyContact](env)
	if err != nil {
		return nil, err
	}
	return *contacts, nil
}

// Contact fetches a single emergency contact
func (c *Client) Contact(ctx context.Context, id int64) (*model.EmergencyContact, error) {
	env, err := c.do(ctx, call{op: "contacts.get", method: http.MethodGet, path: contactPath(id)})
	if err != nil {
		return nil, err
	}
	return decodeData[model.EmergencyContact](env)
}

// CreateContact adds an emergency contact
func (c *Client) CreateContact(ctx context.Context, in model.ContactInput) (*model.EmergencyContact, error) {
	env, err := c.do(ctx, call{op: "contacts.create", method: http.MethodPost, path: "/emergency-contacts", body: in})
	if err != nil {
		return nil, err
	}
	return decodeData[model.EmergencyContact](env)
}

// UpdateContact edits an emergency contact
func (c *Client) UpdateContact(ctx context.Context, id int64, in model.ContactInput) (*model.EmergencyContact, error) {
	env, err := c.do(ctx, call{op: "contacts.update", method: http.MethodPut, path: contactPath(id), body: in})
	if err != nil {
		return nil, err
	}
	return decodeData[model.EmergencyContact](env)
}

// DeleteContact removes an emergency contact
func (c *Client) DeleteContact(ctx context.Context, id int64) error {
	_, err := c.do(ctx, call{op: "contacts.delete", method: http.MethodDelete, path: contactPath(id)})
	return err
}
