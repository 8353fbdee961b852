package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	bookingerrors "roamify/internal/bookings/errors"
	"roamify/internal/bookings/repository"
	"roamify/internal/bookings/validator"
	propertyerrors "roamify/internal/properties/errors"
	"roamify/pkg/auth"
	"roamify/pkg/config"
	dbmongo "roamify/pkg/db/mongo"
	apperrors "roamify/pkg/errors"
	"roamify/pkg/kafka"
	"roamify/pkg/logger"
	"roamify/pkg/model"
)

const (
	propOID  = "64f100000000000000000001"
	guestOID = "64f000000000000000000001"
	hostOID  = "64f000000000000000000002"
	otherOID = "64f000000000000000000003"
	adminOID = "64f000000000000000000004"
)

type mockBookingRepo struct {
	bookings map[string]*model.Booking
	nextID   int
	statuses map[string]model.BookingStatus
	reasons  map[string]string
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{
		bookings: make(map[string]*model.Booking),
		statuses: make(map[string]model.BookingStatus),
		reasons:  make(map[string]string),
	}
}

func (m *mockBookingRepo) Create(_ context.Context, booking *model.Booking) error {
	m.nextID++
	booking.ID = fmt.Sprintf("64f20000000000000000%04d", m.nextID)
	m.bookings[booking.ID] = booking
	return nil
}

func (m *mockBookingRepo) FindByID(_ context.Context, id string) (*model.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingerrors.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *mockBookingRepo) FindByGuest(_ context.Context, guestID string) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range m.bookings {
		if b.GuestID == guestID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) FindByProperties(_ context.Context, propertyIDs []string) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range m.bookings {
		for _, id := range propertyIDs {
			if b.PropertyID == id {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func (m *mockBookingRepo) FindOverlapping(_ context.Context, propertyID string, checkIn, checkOut time.Time) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range m.bookings {
		if b.PropertyID != propertyID {
			continue
		}
		if b.BookingStatus != model.BookingConfirmed && b.BookingStatus != model.BookingPending {
			continue
		}
		if !b.CheckInDate.After(checkOut) && !b.CheckOutDate.Before(checkIn) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, id string, status model.BookingStatus, reason string) error {
	b, ok := m.bookings[id]
	if !ok {
		return bookingerrors.ErrNotFound
	}
	b.BookingStatus = status
	m.statuses[id] = status
	if reason != "" {
		b.CancellationReason = reason
		m.reasons[id] = reason
	}
	return nil
}

type mockLockRepo struct {
	held     map[string]bool
	acquires int
	releases int
}

func newMockLockRepo() *mockLockRepo {
	return &mockLockRepo{held: make(map[string]bool)}
}

func (m *mockLockRepo) Acquire(_ context.Context, propertyID string) error {
	if m.held[propertyID] {
		return repository.ErrLockHeld
	}
	m.held[propertyID] = true
	m.acquires++
	return nil
}

func (m *mockLockRepo) Release(_ context.Context, propertyID string) error {
	delete(m.held, propertyID)
	m.releases++
	return nil
}

type mockPropertyRepo struct {
	properties map[string]*model.Property
}

func (m *mockPropertyRepo) Create(_ context.Context, p *model.Property) error {
	m.properties[p.ID] = p
	return nil
}

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

func (m *mockPropertyRepo) FindByHost(_ context.Context, hostID string) ([]*model.Property, error) {
	var out []*model.Property
	for _, p := range m.properties {
		if p.HostID == hostID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPropertyRepo) Replace(_ context.Context, _ string, _ *model.Property) error { return nil }
func (m *mockPropertyRepo) Delete(_ context.Context, _ string) error                    { return nil }

type mockUserRepo struct {
	users map[string]*model.User
}

func (m *mockUserRepo) Create(_ context.Context, u *model.User) error { return nil }

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, bookingerrors.ErrNotFound
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

func (m *mockUserRepo) UpdateProfile(_ context.Context, _ string, _ model.ProfileUpdate) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepo) AddSavedProperty(_ context.Context, _, _ string) error    { return nil }
func (m *mockUserRepo) RemoveSavedProperty(_ context.Context, _, _ string) error { return nil }

type passthroughTx struct{}

func (passthroughTx) ExecuteTransaction(_ context.Context, fn dbmongo.TransactionFunc) error {
	return fn(nil)
}

type capturingPublisher struct {
	messages []kafka.Message
}

func (p *capturingPublisher) Publish(_ context.Context, msg kafka.Message) error {
	p.messages = append(p.messages, msg)
	return nil
}

type fixture struct {
	svc       BookingService
	bookings  *mockBookingRepo
	locks     *mockLockRepo
	publisher *capturingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.FormatJSON,
			Service: "test",
		}),
	}

	properties := &mockPropertyRepo{properties: map[string]*model.Property{
		propOID: {
			ID:     propOID,
			HostID: hostOID,
			Title:  "Sea View Villa",
			Status: model.PropertyActive,
			Location: model.Location{
				City: "Lisbon",
			},
			Price: model.Price{Regular: 120},
			Rules: model.HouseRules{MaxGuests: 4},
		},
	}}
	users := &mockUserRepo{users: map[string]*model.User{
		guestOID: {ID: guestOID, Name: "Grace", Email: "grace@example.com"},
		hostOID:  {ID: hostOID, Name: "Hank", Email: "hank@example.com"},
	}}

	f := &fixture{
		bookings:  newMockBookingRepo(),
		locks:     newMockLockRepo(),
		publisher: &capturingPublisher{},
	}
	f.svc = NewBookingService(
		f.bookings,
		f.locks,
		properties,
		users,
		validator.NewBookingValidator(cfg.Log),
		passthroughTx{},
		f.publisher,
		cfg,
	)
	return f
}

func guest() auth.Identity { return auth.Identity{UserID: guestOID, Role: auth.RoleUser} }
func host() auth.Identity  { return auth.Identity{UserID: hostOID, Role: auth.RoleHost} }
func admin() auth.Identity { return auth.Identity{UserID: adminOID, Role: auth.RoleAdmin} }

// day builds a UTC date far enough in the future that past-date validation
// never interferes.
func day(d int) time.Time {
	base := time.Now().UTC().AddDate(1, 0, 0).Truncate(24 * time.Hour)
	return base.AddDate(0, 0, d)
}

func request(checkIn, checkOut int) *model.BookingRequest {
	return &model.BookingRequest{
		PropertyID:   propOID,
		CheckInDate:  day(checkIn),
		CheckOutDate: day(checkOut),
		TotalGuests:  2,
		TotalPrice:   600,
	}
}

func seedBooking(f *fixture, checkIn, checkOut int, status model.BookingStatus) *model.Booking {
	b := &model.Booking{
		PropertyID:    propOID,
		GuestID:       otherOID,
		CheckInDate:   day(checkIn),
		CheckOutDate:  day(checkOut),
		TotalGuests:   2,
		TotalPrice:    500,
		PaymentStatus: model.PaymentPending,
		BookingStatus: status,
	}
	_ = f.bookings.Create(context.Background(), b)
	return b
}

func TestCreateRejectsOverlappingDates(t *testing.T) {
	// Existing confirmed stay on days 10-15; the interval is closed, so a
	// new stay starting on the checkout day still conflicts.
	tests := []struct {
		name     string
		checkIn  int
		checkOut int
		wantCode string
	}{
		{"contained overlap", 14, 18, apperrors.CodeConflict},
		{"starts on checkout day", 15, 20, apperrors.CodeConflict},
		{"starts after checkout", 16, 20, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			seedBooking(f, 10, 15, model.BookingConfirmed)

			booking, err := f.svc.Create(context.Background(), guest(), request(tt.checkIn, tt.checkOut))
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("create failed: %v", err)
				}
				if booking.BookingStatus != model.BookingPending {
					t.Errorf("status = %s, want pending", booking.BookingStatus)
				}
				return
			}
			if err == nil {
				t.Fatal("expected conflict, booking was created")
			}
			if appErr := apperrors.AsAppError(err); appErr.Code != tt.wantCode {
				t.Errorf("error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestCreateIgnoresTerminalBookings(t *testing.T) {
	for _, status := range []model.BookingStatus{model.BookingCanceled, model.BookingCompleted} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			seedBooking(f, 10, 15, status)

			if _, err := f.svc.Create(context.Background(), guest(), request(12, 14)); err != nil {
				t.Errorf("%s booking should not block: %v", status, err)
			}
		})
	}
}

func TestCreateReleasesLock(t *testing.T) {
	f := newFixture(t)
	seedBooking(f, 10, 15, model.BookingConfirmed)

	// One conflicting and one successful attempt both release the lock.
	_, _ = f.svc.Create(context.Background(), guest(), request(12, 14))
	_, _ = f.svc.Create(context.Background(), guest(), request(20, 25))

	if f.locks.acquires != 2 || f.locks.releases != 2 {
		t.Errorf("acquires/releases = %d/%d, want 2/2", f.locks.acquires, f.locks.releases)
	}
}

func TestCreateWhileLockHeldConflicts(t *testing.T) {
	f := newFixture(t)
	f.locks.held[propOID] = true

	_, err := f.svc.Create(context.Background(), guest(), request(1, 3))
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("error = %v, want %s", err, apperrors.CodeConflict)
	}
}

func TestCreateRejectsOwnProperty(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), host(), request(1, 3))
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeForbidden {
		t.Errorf("error = %v, want %s", err, apperrors.CodeForbidden)
	}
}

func TestCreateRejectsTooManyGuests(t *testing.T) {
	f := newFixture(t)

	req := request(1, 3)
	req.TotalGuests = 7
	_, err := f.svc.Create(context.Background(), guest(), req)
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
		t.Errorf("error = %v, want %s", err, apperrors.CodeValidation)
	}
}

func TestCreatePublishesEvent(t *testing.T) {
	f := newFixture(t)

	booking, err := f.svc.Create(context.Background(), guest(), request(1, 3))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(f.publisher.messages) != 1 {
		t.Fatalf("published %d events, want 1", len(f.publisher.messages))
	}

	msg := f.publisher.messages[0]
	if msg.Key != booking.ID {
		t.Errorf("event key = %s, want booking ID %s", msg.Key, booking.ID)
	}
	if msg.EventType() != EventBookingCreated {
		t.Errorf("event type = %s, want %s", msg.EventType(), EventBookingCreated)
	}

	var event BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if event.PropertyID != propOID || event.Status != model.BookingPending {
		t.Errorf("event = %+v, want property %s status pending", event, propOID)
	}
}

func TestGuestMayCancelWithReason(t *testing.T) {
	f := newFixture(t)
	b := seedBooking(f, 10, 15, model.BookingConfirmed)
	b.GuestID = guestOID

	updated, err := f.svc.UpdateStatus(context.Background(), guest(), b.ID, &model.BookingStatusUpdate{
		BookingStatus:      model.BookingCanceled,
		CancellationReason: "change of plans",
	})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if updated.BookingStatus != model.BookingCanceled {
		t.Errorf("status = %s, want canceled", updated.BookingStatus)
	}
	if f.bookings.reasons[b.ID] != "change of plans" {
		t.Errorf("reason = %q, want stored", f.bookings.reasons[b.ID])
	}
}

func TestGuestMayNotConfirm(t *testing.T) {
	f := newFixture(t)
	b := seedBooking(f, 10, 15, model.BookingPending)
	b.GuestID = guestOID

	_, err := f.svc.UpdateStatus(context.Background(), guest(), b.ID, &model.BookingStatusUpdate{
		BookingStatus: model.BookingConfirmed,
	})
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeForbidden {
		t.Errorf("error = %v, want %s", err, apperrors.CodeForbidden)
	}
}

func TestHostMayConfirmAndComplete(t *testing.T) {
	f := newFixture(t)
	b := seedBooking(f, 10, 15, model.BookingPending)

	if _, err := f.svc.UpdateStatus(context.Background(), host(), b.ID, &model.BookingStatusUpdate{
		BookingStatus: model.BookingConfirmed,
	}); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := f.svc.UpdateStatus(context.Background(), host(), b.ID, &model.BookingStatusUpdate{
		BookingStatus: model.BookingCompleted,
	}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	tests := []struct {
		from model.BookingStatus
		to   model.BookingStatus
	}{
		{model.BookingCompleted, model.BookingPending},
		{model.BookingCompleted, model.BookingConfirmed},
		{model.BookingCanceled, model.BookingConfirmed},
		{model.BookingPending, model.BookingCompleted},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			f := newFixture(t)
			b := seedBooking(f, 10, 15, tt.from)

			_, err := f.svc.UpdateStatus(context.Background(), admin(), b.ID, &model.BookingStatusUpdate{
				BookingStatus: tt.to,
			})
			if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
				t.Errorf("error = %v, want %s", err, apperrors.CodeConflict)
			}
		})
	}
}

func TestStrangerMayNotViewBooking(t *testing.T) {
	f := newFixture(t)
	b := seedBooking(f, 10, 15, model.BookingConfirmed)

	stranger := auth.Identity{UserID: "64f0000000000000000000ff", Role: auth.RoleUser}
	_, err := f.svc.GetByID(context.Background(), stranger, b.ID)
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeForbidden {
		t.Errorf("error = %v, want %s", err, apperrors.CodeForbidden)
	}
}

func TestListForHostEmbedsSummaries(t *testing.T) {
	f := newFixture(t)
	b := seedBooking(f, 10, 15, model.BookingConfirmed)
	b.GuestID = guestOID

	bookings, err := f.svc.ListForHost(context.Background(), host())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("got %d bookings, want 1", len(bookings))
	}
	if bookings[0].Property == nil || bookings[0].Property.Title != "Sea View Villa" {
		t.Error("property summary not embedded")
	}
	if bookings[0].Guest == nil || bookings[0].Guest.Name != "Grace" {
		t.Error("guest summary not embedded")
	}
}

func TestIsAvailable(t *testing.T) {
	f := newFixture(t)
	seedBooking(f, 10, 15, model.BookingConfirmed)

	if ok, _ := f.svc.IsAvailable(context.Background(), propOID, day(12), day(14)); ok {
		t.Error("overlapping dates reported available")
	}
	if ok, _ := f.svc.IsAvailable(context.Background(), propOID, day(16), day(20)); !ok {
		t.Error("free dates reported unavailable")
	}
}
