package model

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// bookingTransitions is the closed lifecycle graph. Canceled and completed
// are terminal; everything not listed here is an illegal transition no matter
// who asks.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCanceled},
	BookingConfirmed: {BookingCanceled, BookingCompleted},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCanceled, BookingCompleted:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCanceled || s == BookingCompleted
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID                 string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PropertyID         string        `json:"propertyId" bson:"property" validate:"required,mongodb"`
	GuestID            string        `json:"guestId" bson:"guest" validate:"required,mongodb"`
	CheckInDate        time.Time     `json:"checkInDate" bson:"check_in_date" validate:"required"`
	CheckOutDate       time.Time     `json:"checkOutDate" bson:"check_out_date" validate:"required,gtfield=CheckInDate"`
	TotalGuests        int           `json:"totalGuests" bson:"total_guests" validate:"required,min=1"`
	TotalPrice         float64       `json:"totalPrice" bson:"total_price" validate:"required,gt=0"`
	PaymentStatus      PaymentStatus `json:"paymentStatus" bson:"payment_status" validate:"required,oneof=pending paid failed refunded"`
	BookingStatus      BookingStatus `json:"bookingStatus" bson:"booking_status" validate:"required,oneof=pending confirmed canceled completed"`
	SpecialRequests    string        `json:"specialRequests,omitempty" bson:"special_requests,omitempty" validate:"omitempty,max=1000"`
	CancellationReason string        `json:"cancellationReason,omitempty" bson:"cancellation_reason,omitempty" validate:"omitempty,max=1000"`
	ReviewSubmitted    bool          `json:"reviewSubmitted" bson:"review_submitted"`
	CreatedAt          time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt          time.Time     `json:"updatedAt" bson:"updated_at"`

	// Populated on listing endpoints, never persisted.
	Property *PropertySummary `json:"property,omitempty" bson:"-"`
	Guest    *UserSummary     `json:"guest,omitempty" bson:"-"`
}

// BookingRequest is the creation payload; guest and statuses are assigned
// server-side.
type BookingRequest struct {
	PropertyID      string    `json:"propertyId" validate:"required,mongodb"`
	CheckInDate     time.Time `json:"checkInDate" validate:"required"`
	CheckOutDate    time.Time `json:"checkOutDate" validate:"required,gtfield=CheckInDate"`
	TotalGuests     int       `json:"totalGuests" validate:"required,min=1"`
	TotalPrice      float64   `json:"totalPrice" validate:"required,gt=0"`
	SpecialRequests string    `json:"specialRequests,omitempty" validate:"omitempty,max=1000"`
}

type BookingStatusUpdate struct {
	BookingStatus      BookingStatus `json:"bookingStatus" validate:"required,oneof=pending confirmed canceled completed"`
	CancellationReason string        `json:"cancellationReason,omitempty" validate:"omitempty,max=1000"`
}
