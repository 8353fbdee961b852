package validator

import (
	"testing"
	"time"

	"roamify/pkg/logger"
	"roamify/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.FormatJSON,
		Service: "test",
	})
}

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		PropertyID:   "64f100000000000000000001",
		CheckInDate:  time.Now().UTC().AddDate(0, 0, 7),
		CheckOutDate: time.Now().UTC().AddDate(0, 0, 12),
		TotalGuests:  2,
		TotalPrice:   600,
	}
}

func TestValidateRequestAccepts(t *testing.T) {
	v := NewBookingValidator(testLogger())
	if err := v.ValidateRequest(validRequest()); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestValidateRequestRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.BookingRequest)
	}{
		{"missing property id", func(r *model.BookingRequest) { r.PropertyID = "" }},
		{"malformed property id", func(r *model.BookingRequest) { r.PropertyID = "abc" }},
		{"checkout before checkin", func(r *model.BookingRequest) {
			r.CheckOutDate = r.CheckInDate.AddDate(0, 0, -1)
		}},
		{"checkout equals checkin", func(r *model.BookingRequest) {
			r.CheckOutDate = r.CheckInDate
		}},
		{"zero guests", func(r *model.BookingRequest) { r.TotalGuests = 0 }},
		{"zero price", func(r *model.BookingRequest) { r.TotalPrice = 0 }},
		{"past check-in", func(r *model.BookingRequest) {
			r.CheckInDate = time.Now().UTC().AddDate(0, 0, -3)
			r.CheckOutDate = time.Now().UTC().AddDate(0, 0, 3)
		}},
	}

	v := NewBookingValidator(testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(r)
			if err := v.ValidateRequest(r); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateStatusUpdate(t *testing.T) {
	v := NewBookingValidator(testLogger())

	if err := v.ValidateStatusUpdate(&model.BookingStatusUpdate{BookingStatus: model.BookingConfirmed}); err != nil {
		t.Errorf("valid update rejected: %v", err)
	}
	if err := v.ValidateStatusUpdate(&model.BookingStatusUpdate{BookingStatus: "archived"}); err == nil {
		t.Error("unknown status accepted")
	}
	if err := v.ValidateStatusUpdate(&model.BookingStatusUpdate{}); err == nil {
		t.Error("empty status accepted")
	}
}
