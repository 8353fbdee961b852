package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	bookingerrors "roamify/internal/bookings/errors"
	"roamify/internal/bookings/repository"
	"roamify/internal/bookings/validator"
	propertyerrors "roamify/internal/properties/errors"
	propertyrepo "roamify/internal/properties/repository"
	userrepo "roamify/internal/users/repository"
	"roamify/pkg/auth"
	"roamify/pkg/config"
	dbmongo "roamify/pkg/db/mongo"
	apperrors "roamify/pkg/errors"
	"roamify/pkg/kafka"
	"roamify/pkg/model"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"

	eventSource = "roamify-api"
)

// EventPublisher is the slice of the Kafka producer the service needs. A nil
// publisher disables events entirely.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// BookingEvent is the payload published on create and status change.
type BookingEvent struct {
	BookingID    string              `json:"bookingId"`
	PropertyID   string              `json:"propertyId"`
	GuestID      string              `json:"guestId"`
	Status       model.BookingStatus `json:"status"`
	CheckInDate  time.Time           `json:"checkInDate"`
	CheckOutDate time.Time           `json:"checkOutDate"`
	OccurredAt   time.Time           `json:"occurredAt"`
}

type BookingService interface {
	Create(ctx context.Context, caller auth.Identity, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, caller auth.Identity, id string) (*model.Booking, error)
	ListMine(ctx context.Context, caller auth.Identity) ([]*model.Booking, error)
	ListForHost(ctx context.Context, caller auth.Identity) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, caller auth.Identity, id string, update *model.BookingStatusUpdate) (*model.Booking, error)
	IsAvailable(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (bool, error)
}

type bookingService struct {
	repo       repository.BookingRepository
	locks      repository.BookingLockRepository
	properties propertyrepo.PropertyRepository
	users      userrepo.UserRepository
	validator  *validator.BookingValidator
	txManager  dbmongo.TransactionManager
	publisher  EventPublisher
	cfg        *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	locks repository.BookingLockRepository,
	properties propertyrepo.PropertyRepository,
	users userrepo.UserRepository,
	validator *validator.BookingValidator,
	txManager dbmongo.TransactionManager,
	publisher EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		locks:      locks,
		properties: properties,
		users:      users,
		validator:  validator,
		txManager:  txManager,
		publisher:  publisher,
		cfg:        cfg,
	}
}

// IsAvailable reports whether the property has no confirmed or pending
// booking over the closed interval [checkIn, checkOut].
func (s *bookingService) IsAvailable(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (bool, error) {
	overlapping, err := s.repo.FindOverlapping(ctx, propertyID, checkIn, checkOut)
	if err != nil {
		return false, apperrors.Internal("Failed to check availability", err)
	}
	return len(overlapping) == 0, nil
}

func (s *bookingService) Create(ctx context.Context, caller auth.Identity, req *model.BookingRequest) (*model.Booking, error) {
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	property, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		switch {
		case errors.Is(err, propertyerrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Property", req.PropertyID)
		case errors.Is(err, propertyerrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid property ID format")
		default:
			return nil, apperrors.Internal("Failed to retrieve property", err)
		}
	}
	if property.Status != model.PropertyActive {
		return nil, apperrors.NotFoundWithID("Property", req.PropertyID)
	}
	if property.HostID == caller.UserID {
		return nil, apperrors.Forbidden("Hosts cannot book their own property")
	}
	if req.TotalGuests > property.Rules.MaxGuests {
		return nil, apperrors.Validation("Booking validation failed", map[string]any{
			"error": fmt.Sprintf("property sleeps at most %d guests", property.Rules.MaxGuests),
		})
	}

	booking := &model.Booking{
		PropertyID:      req.PropertyID,
		GuestID:         caller.UserID,
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
		TotalGuests:     req.TotalGuests,
		TotalPrice:      req.TotalPrice,
		PaymentStatus:   model.PaymentPending,
		BookingStatus:   model.BookingPending,
		SpecialRequests: req.SpecialRequests,
	}

	// The per-property advisory lock plus the transaction make the overlap
	// check and the insert one atomic step: two concurrent requests for the
	// same dates cannot both pass the check.
	if err := s.locks.Acquire(ctx, req.PropertyID); err != nil {
		if errors.Is(err, repository.ErrLockHeld) {
			return nil, apperrors.Conflict("Another booking for this property is in progress, try again")
		}
		return nil, apperrors.Internal("Failed to create booking", err)
	}
	defer func() {
		if err := s.locks.Release(ctx, req.PropertyID); err != nil {
			s.cfg.Log.Error("Failed to release booking lock", "property_id", req.PropertyID, "error", err)
		}
	}()

	err = s.txManager.ExecuteTransaction(ctx, func(sessCtx mongodriver.SessionContext) error {
		overlapping, err := s.repo.FindOverlapping(sessCtx, req.PropertyID, req.CheckInDate, req.CheckOutDate)
		if err != nil {
			return apperrors.Internal("Failed to check availability", err)
		}
		if len(overlapping) > 0 {
			return apperrors.Conflict("Property is not available for the selected dates")
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Booking creation failed", "property_id", req.PropertyID, "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created",
		"booking_id", booking.ID,
		"property_id", booking.PropertyID,
		"guest_id", booking.GuestID,
	)
	s.publishEvent(ctx, EventBookingCreated, booking)

	booking.Property = property.Summary()
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, caller auth.Identity, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}

	property, err := s.properties.FindByID(ctx, booking.PropertyID)
	if err != nil && !errors.Is(err, propertyerrors.ErrNotFound) {
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	if !s.mayView(caller, booking, property) {
		return nil, apperrors.Forbidden("Not authorized to view this booking")
	}

	if property != nil {
		booking.Property = property.Summary()
		s.embedHost(ctx, booking.Property)
	}
	if guests, err := s.users.FindByIDs(ctx, []string{booking.GuestID}); err == nil && len(guests) == 1 {
		booking.Guest = guests[0].Summary()
	}
	return booking, nil
}

func (s *bookingService) ListMine(ctx context.Context, caller auth.Identity) ([]*model.Booking, error) {
	bookings, err := s.repo.FindByGuest(ctx, caller.UserID)
	if err != nil {
		s.cfg.Log.Error("Failed to list guest bookings", "guest_id", caller.UserID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	if err := s.embedPropertySummaries(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *bookingService) ListForHost(ctx context.Context, caller auth.Identity) ([]*model.Booking, error) {
	properties, err := s.properties.FindByHost(ctx, caller.UserID)
	if err != nil {
		s.cfg.Log.Error("Failed to list host properties", "host_id", caller.UserID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	summaries := make(map[string]*model.PropertySummary, len(properties))
	ids := make([]string, 0, len(properties))
	for _, p := range properties {
		summaries[p.ID] = p.Summary()
		ids = append(ids, p.ID)
	}

	bookings, err := s.repo.FindByProperties(ctx, ids)
	if err != nil {
		s.cfg.Log.Error("Failed to list host bookings", "host_id", caller.UserID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	guestIDs := make([]string, 0, len(bookings))
	seen := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		b.Property = summaries[b.PropertyID]
		if !seen[b.GuestID] {
			seen[b.GuestID] = true
			guestIDs = append(guestIDs, b.GuestID)
		}
	}

	guests, err := s.users.FindByIDs(ctx, guestIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to load guest summaries", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	guestSummaries := make(map[string]*model.UserSummary, len(guests))
	for _, g := range guests {
		guestSummaries[g.ID] = g.Summary()
	}
	for _, b := range bookings {
		b.Guest = guestSummaries[b.GuestID]
	}

	return bookings, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, caller auth.Identity, id string, update *model.BookingStatusUpdate) (*model.Booking, error) {
	if err := s.validator.ValidateStatusUpdate(update); err != nil {
		return nil, apperrors.Validation("Status update validation failed", map[string]any{"error": err.Error()})
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}

	property, err := s.properties.FindByID(ctx, booking.PropertyID)
	if err != nil && !errors.Is(err, propertyerrors.ErrNotFound) {
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	if err := s.authorizeTransition(caller, booking, property, update.BookingStatus); err != nil {
		return nil, err
	}

	if !booking.BookingStatus.CanTransitionTo(update.BookingStatus) {
		return nil, apperrors.Conflict(fmt.Sprintf(
			"Booking cannot move from %s to %s", booking.BookingStatus, update.BookingStatus,
		))
	}

	reason := ""
	if update.BookingStatus == model.BookingCanceled {
		reason = update.CancellationReason
	}
	if err := s.repo.UpdateStatus(ctx, id, update.BookingStatus, reason); err != nil {
		if errors.Is(err, bookingerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to update booking status", "booking_id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking status", err)
	}

	booking.BookingStatus = update.BookingStatus
	if reason != "" {
		booking.CancellationReason = reason
	}
	booking.UpdatedAt = time.Now().UTC()

	s.cfg.Log.Info("Booking status updated",
		"booking_id", id,
		"status", update.BookingStatus,
		"actor_id", caller.UserID,
	)
	s.publishEvent(ctx, EventBookingStatusChanged, booking)

	if property != nil {
		booking.Property = property.Summary()
	}
	return booking, nil
}

// mayView: the guest, the property's host, and admins can see a booking.
func (s *bookingService) mayView(caller auth.Identity, booking *model.Booking, property *model.Property) bool {
	if caller.Role.IsAdmin() || caller.UserID == booking.GuestID {
		return true
	}
	return property != nil && property.HostID == caller.UserID
}

// authorizeTransition enforces who may request which lifecycle move:
// cancellation is open to the guest, the host, and admins; confirmation and
// completion are host/admin decisions.
func (s *bookingService) authorizeTransition(caller auth.Identity, booking *model.Booking, property *model.Property, next model.BookingStatus) error {
	if !s.mayView(caller, booking, property) {
		return apperrors.Forbidden("Not authorized to modify this booking")
	}
	if next == model.BookingCanceled {
		return nil
	}

	isHost := property != nil && property.HostID == caller.UserID
	if caller.Role.IsAdmin() || isHost {
		return nil
	}
	return apperrors.Forbidden(fmt.Sprintf("Only the host may mark a booking %s", next))
}

func (s *bookingService) embedPropertySummaries(ctx context.Context, bookings []*model.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]string, 0, len(bookings))
	seen := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if !seen[b.PropertyID] {
			seen[b.PropertyID] = true
			ids = append(ids, b.PropertyID)
		}
	}

	properties, err := s.properties.FindByIDs(ctx, ids)
	if err != nil {
		s.cfg.Log.Error("Failed to load property summaries", "error", err)
		return apperrors.Internal("Failed to retrieve bookings", err)
	}

	summaries := make(map[string]*model.PropertySummary, len(properties))
	for _, p := range properties {
		summaries[p.ID] = p.Summary()
	}
	for _, b := range bookings {
		b.Property = summaries[b.PropertyID]
	}
	return nil
}

func (s *bookingService) embedHost(ctx context.Context, summary *model.PropertySummary) {
	hosts, err := s.users.FindByIDs(ctx, []string{summary.HostID})
	if err != nil || len(hosts) != 1 {
		return
	}
	summary.Host = hosts[0].Summary()
}

// publishEvent is best-effort: a broken broker must never fail a booking.
func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(BookingEvent{
			BookingID:    booking.ID,
			PropertyID:   booking.PropertyID,
			GuestID:      booking.GuestID,
			Status:       booking.BookingStatus,
			CheckInDate:  booking.CheckInDate,
			CheckOutDate: booking.CheckOutDate,
			OccurredAt:   time.Now().UTC(),
		}).
		WithEventType(eventType).
		WithSource(eventSource).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

func translateLookupError(err error, id string) error {
	switch {
	case errors.Is(err, bookingerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	default:
		return apperrors.Internal("Failed to retrieve booking", err)
	}
}
