package service

import (
	"context"
	"testing"

	propertyerrors "roamify/internal/properties/errors"
	usererrors "roamify/internal/users/errors"
	"roamify/internal/users/validator"
	"roamify/pkg/auth"
	"roamify/pkg/config"
	apperrors "roamify/pkg/errors"
	"roamify/pkg/logger"
	"roamify/pkg/model"
)

const (
	userOID = "64f000000000000000000001"
	propOID = "64f100000000000000000001"
)

type mockUserRepo struct {
	users map[string]*model.User
}

func (m *mockUserRepo) Create(_ context.Context, u *model.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, usererrors.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByIDs(_ context.Context, ids []string) ([]*model.User, error) {
	var out []*model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id string, update model.ProfileUpdate) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, usererrors.ErrNotFound
	}
	if update.Name != "" {
		u.Name = update.Name
	}
	if update.PhoneNumber != "" {
		u.PhoneNumber = update.PhoneNumber
	}
	if update.ProfileImage != "" {
		u.ProfileImage = update.ProfileImage
	}
	return u, nil
}

func (m *mockUserRepo) AddSavedProperty(_ context.Context, userID, propertyID string) error {
	u, ok := m.users[userID]
	if !ok {
		return usererrors.ErrNotFound
	}
	for _, id := range u.SavedProperties {
		if id == propertyID {
			return nil
		}
	}
	u.SavedProperties = append(u.SavedProperties, propertyID)
	return nil
}

func (m *mockUserRepo) RemoveSavedProperty(_ context.Context, userID, propertyID string) error {
	u, ok := m.users[userID]
	if !ok {
		return usererrors.ErrNotFound
	}
	filtered := u.SavedProperties[:0]
	for _, id := range u.SavedProperties {
		if id != propertyID {
			filtered = append(filtered, id)
		}
	}
	u.SavedProperties = filtered
	return nil
}

type mockPropertyRepo struct {
	properties map[string]*model.Property
}

func (m *mockPropertyRepo) Create(_ context.Context, p *model.Property) error { return nil }

func (m *mockPropertyRepo) FindByID(_ context.Context, id string) (*model.Property, error) {
	p, ok := m.properties[id]
	if !ok {
		return nil, propertyerrors.ErrNotFound
	}
	return p, nil
}

func (m *mockPropertyRepo) FindByIDs(_ context.Context, ids []string) ([]*model.Property, error) {
	var out []*model.Property
	for _, id := range ids {
		if p, ok := m.properties[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPropertyRepo) FindActive(_ context.Context, _ model.PropertyFilter, _, _ int) ([]*model.Property, error) {
	return nil, nil
}
func (m *mockPropertyRepo) CountActive(_ context.Context, _ model.PropertyFilter) (int64, error) {
	return 0, nil
}
func (m *mockPropertyRepo) FindByHost(_ context.Context, _ string) ([]*model.Property, error) {
	return nil, nil
}
func (m *mockPropertyRepo) Replace(_ context.Context, _ string, _ *model.Property) error { return nil }
func (m *mockPropertyRepo) Delete(_ context.Context, _ string) error                     { return nil }

func newTestService() (UserService, *mockUserRepo) {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.FormatJSON,
			Service: "test",
		}),
	}

	users := &mockUserRepo{users: map[string]*model.User{
		userOID: {ID: userOID, Name: "Grace", Email: "grace@example.com", Role: auth.RoleUser},
	}}
	properties := &mockPropertyRepo{properties: map[string]*model.Property{
		propOID: {ID: propOID, Title: "Sea View Villa", Status: model.PropertyActive},
	}}

	return NewUserService(users, properties, validator.NewUserValidator(cfg.Log), cfg), users
}

func caller() auth.Identity { return auth.Identity{UserID: userOID, Role: auth.RoleUser} }

func TestSaveIsIdempotent(t *testing.T) {
	svc, _ := newTestService()

	for i := 0; i < 3; i++ {
		saved, err := svc.UpdateSavedProperty(context.Background(), caller(), propOID, model.SaveAction)
		if err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
		if len(saved) != 1 || saved[0] != propOID {
			t.Fatalf("saved = %v, want exactly [%s]", saved, propOID)
		}
	}
}

func TestUnsaveIsIdempotent(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.UpdateSavedProperty(context.Background(), caller(), propOID, model.SaveAction); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		saved, err := svc.UpdateSavedProperty(context.Background(), caller(), propOID, model.UnsaveAction)
		if err != nil {
			t.Fatalf("unsave %d failed: %v", i, err)
		}
		if len(saved) != 0 {
			t.Fatalf("saved = %v, want empty", saved)
		}
	}
}

func TestSaveUnknownPropertyIsNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateSavedProperty(context.Background(), caller(), "64f1ffffffffffffffffffff", model.SaveAction)
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("error = %v, want %s", err, apperrors.CodeNotFound)
	}
}

func TestSaveRejectsUnknownAction(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateSavedProperty(context.Background(), caller(), propOID, "bookmark")
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
		t.Errorf("error = %v, want %s", err, apperrors.CodeValidation)
	}
}

func TestUpdateProfileTouchesOnlyAllowedFields(t *testing.T) {
	svc, users := newTestService()

	user, err := svc.UpdateProfile(context.Background(), caller(), model.ProfileUpdate{
		Name:        "Grace Hopper",
		PhoneNumber: "+14155551234",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if user.Name != "Grace Hopper" || user.PhoneNumber != "+14155551234" {
		t.Errorf("profile = %s/%s, want updated", user.Name, user.PhoneNumber)
	}
	if users.users[userOID].Email != "grace@example.com" {
		t.Error("email must not change through profile updates")
	}
}

func TestUpdateProfileRejectsBadPhone(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateProfile(context.Background(), caller(), model.ProfileUpdate{PhoneNumber: "555-1234"})
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
		t.Errorf("error = %v, want %s", err, apperrors.CodeValidation)
	}
}

func TestListSavedPropertiesExpandsDocuments(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.UpdateSavedProperty(context.Background(), caller(), propOID, model.SaveAction); err != nil {
		t.Fatal(err)
	}

	properties, err := svc.ListSavedProperties(context.Background(), caller())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(properties) != 1 || properties[0].Title != "Sea View Villa" {
		t.Errorf("properties = %v, want the saved villa", properties)
	}
}
