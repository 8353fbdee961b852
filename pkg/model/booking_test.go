package model

import "testing"

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"pending to confirmed", BookingPending, BookingConfirmed, true},
		{"pending to canceled", BookingPending, BookingCanceled, true},
		{"pending to completed", BookingPending, BookingCompleted, false},
		{"confirmed to canceled", BookingConfirmed, BookingCanceled, true},
		{"confirmed to completed", BookingConfirmed, BookingCompleted, true},
		{"confirmed to pending", BookingConfirmed, BookingPending, false},
		{"canceled is terminal", BookingCanceled, BookingPending, false},
		{"canceled cannot confirm", BookingCanceled, BookingConfirmed, false},
		{"completed is terminal", BookingCompleted, BookingPending, false},
		{"completed cannot cancel", BookingCompleted, BookingCanceled, false},
		{"no self transition", BookingPending, BookingPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	for _, s := range []BookingStatus{BookingCanceled, BookingCompleted} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestPropertySummaryPicksMainImage(t *testing.T) {
	p := &Property{
		ID:     "64f000000000000000000001",
		Title:  "Sea View Villa",
		HostID: "64f000000000000000000002",
		Location: Location{
			City: "Lisbon",
		},
		Price: Price{Regular: 120},
		Images: []Image{
			{URL: "https://img.example.com/1.jpg"},
			{URL: "https://img.example.com/2.jpg", IsMain: true},
		},
	}

	s := p.Summary()
	if s.MainImage != "https://img.example.com/2.jpg" {
		t.Errorf("MainImage = %q, want the image flagged main", s.MainImage)
	}
	if s.City != "Lisbon" {
		t.Errorf("City = %q, want Lisbon", s.City)
	}

	p.Images[1].IsMain = false
	if got := p.Summary().MainImage; got != "https://img.example.com/1.jpg" {
		t.Errorf("without a main flag, expected first image, got %q", got)
	}
}
