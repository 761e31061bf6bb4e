// Package dashboard builds the account overview shown after login.
package dashboard

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/logger"
	"github.com/existflow/medshare/internal/model"
)

// Service is the part of the API client the dashboard reads from
type Service interface {
	MedicalInfo(ctx context.Context) (*model.MedicalInfo, error)
	Contacts(ctx context.Context) ([]model.EmergencyContact, error)
}

// Summary is the dashboard content
type Summary struct {
	UserName        string
	HasPublicLink   bool
	MedicalComplete bool
	ContactCount    int
	LastUpdate      time.Time

	// Errors from the two loads. Neither blocks the other.
	MedicalErr  error
	ContactsErr error
}

// Load fetches medical info and contacts concurrently and waits for both
func Load(ctx context.Context, svc Service, user *model.User) Summary {
	var s Summary
	if user != nil {
		s.UserName = user.Name
		s.HasPublicLink = user.HasPublicLink()
	}

	var (
		wg       sync.WaitGroup
		info     *model.MedicalInfo
		contacts []model.EmergencyContact
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		info, s.MedicalErr = svc.MedicalInfo(ctx)
	}()
	go func() {
		defer wg.Done()
		contacts, s.ContactsErr = svc.Contacts(ctx)
	}()
	wg.Wait()

	if s.MedicalErr == nil {
		s.MedicalComplete = MedicalComplete(info)
		if info != nil {
			s.LastUpdate = info.UpdatedAt
		}
	} else {
		logger.Debug("Dashboard medical info unavailable", logger.F("error", api.Message(s.MedicalErr)))
	}

	if s.ContactsErr == nil {
		s.ContactCount = len(contacts)
	} else {
		logger.Warn("Dashboard contacts unavailable", logger.F("error", api.Message(s.ContactsErr)))
	}

	return s
}

// MedicalComplete is true when the blood type or any of the four lists is filled in
func MedicalComplete(info *model.MedicalInfo) bool {
	return info != nil && !info.IsEmpty()
}

// QRFilename is the download name of the QR code image for a user
func QRFilename(user *model.User) string {
	name := "user"
	if user != nil && user.Name != "" {
		name = strings.ToLower(strings.Join(strings.Fields(user.Name), "-"))
	}
	return "medshare-qr-" + name + ".png"
}
