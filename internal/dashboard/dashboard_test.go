package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/existflow/medshare/internal/model"
)

type fakeService struct {
	info        *model.MedicalInfo
	medicalErr  error
	contacts    []model.EmergencyContact
	contactsErr error

	// both calls must be in flight together before either returns
	barrier  chan struct{}
	inFlight int32
}

func (f *fakeService) wait() {
	if f.barrier == nil {
		return
	}
	if atomic.AddInt32(&f.inFlight, 1) == 2 {
		close(f.barrier)
	}
	select {
	case <-f.barrier:
	case <-time.After(2 * time.Second):
	}
}

func (f *fakeService) MedicalInfo(ctx context.Context) (*model.MedicalInfo, error) {
	f.wait()
	return f.info, f.medicalErr
}

func (f *fakeService) Contacts(ctx context.Context) ([]model.EmergencyContact, error) {
	f.wait()
	return f.contacts, f.contactsErr
}

func TestLoad_Concurrent(t *testing.T) {
	updated := time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC)
	svc := &fakeService{
		info:     &model.MedicalInfo{BloodType: "O+", UpdatedAt: updated},
		contacts: []model.EmergencyContact{{ID: 1}, {ID: 2}, {ID: 3}},
		barrier:  make(chan struct{}),
	}
	user := &model.User{Name: "Ana", PublicLinkID: "0b7e1c9a-6f2d-4f8e-9a51-3c2d1e0f4a5b"}

	s := Load(context.Background(), svc, user)

	assert.Equal(t, int32(2), atomic.LoadInt32(&svc.inFlight))
	assert.Equal(t, "Ana", s.UserName)
	assert.True(t, s.HasPublicLink)
	assert.True(t, s.MedicalComplete)
	assert.Equal(t, 3, s.ContactCount)
	assert.Equal(t, updated, s.LastUpdate)
	assert.NoError(t, s.MedicalErr)
	assert.NoError(t, s.ContactsErr)
}

func TestLoad_MedicalFailureDegrades(t *testing.T) {
	svc := &fakeService{
		medicalErr: errors.New("not found"),
		contacts:   []model.EmergencyContact{{ID: 1}},
	}

	s := Load(context.Background(), svc, &model.User{Name: "Ana"})

	assert.False(t, s.MedicalComplete)
	assert.True(t, s.LastUpdate.IsZero())
	assert.Equal(t, 1, s.ContactCount)
	assert.Error(t, s.MedicalErr)
	assert.False(t, s.HasPublicLink)
}

func TestLoad_ContactsFailureRecorded(t *testing.T) {
	svc := &fakeService{
		info:        &model.MedicalInfo{Allergies: []string{"Penicilina"}},
		contactsErr: errors.New("boom"),
	}

	s := Load(context.Background(), svc, &model.User{Name: "Ana"})

	assert.True(t, s.MedicalComplete)
	assert.Zero(t, s.ContactCount)
	assert.EqualError(t, s.ContactsErr, "boom")
}

func TestMedicalComplete(t *testing.T) {
	tests := []struct {
		name     string
		info     *model.MedicalInfo
		expected bool
	}{
		{"nil", nil, false},
		{"empty", &model.MedicalInfo{}, false},
		{"empty_lists", &model.MedicalInfo{Allergies: []string{}, Surgeries: []string{}}, false},
		{"blood_type_only", &model.MedicalInfo{BloodType: "AB-"}, true},
		{"allergies_only", &model.MedicalInfo{Allergies: []string{"Látex"}}, true},
		{"medications_only", &model.MedicalInfo{Medications: []string{"Insulina"}}, true},
		{"diseases_only", &model.MedicalInfo{Diseases: []string{"Diabetes"}}, true},
		{"surgeries_only", &model.MedicalInfo{Surgeries: []string{"Apendicectomia"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MedicalComplete(tt.info))
		})
	}
}

func TestQRFilename(t *testing.T) {
	assert.Equal(t, "medshare-qr-ana.png", QRFilename(&model.User{Name: "Ana"}))
	assert.Equal(t, "medshare-qr-ana-clara.png", QRFilename(&model.User{Name: "Ana Clara"}))
	assert.Equal(t, "medshare-qr-user.png", QRFilename(nil))
}
