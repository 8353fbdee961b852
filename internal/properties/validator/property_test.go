package validator

import (
	"testing"

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

func validProperty() *model.Property {
	return &model.Property{
		HostID:      "64f000000000000000000002",
		Title:       "Sea View Villa",
		Description: "A villa with a view of the Atlantic.",
		Type:        "Villa",
		Location: model.Location{
			Address: "1 Ocean Drive",
			City:    "Lisbon",
			State:   "Lisbon",
			Country: "Portugal",
		},
		Price: model.Price{Regular: 120},
		Rules: model.HouseRules{
			MaxGuests:    4,
			CheckInTime:  "15:00",
			CheckOutTime: "11:00",
		},
		Rooms: model.Rooms{Bedrooms: 2, Beds: 3, Bathrooms: 1},
		Images: []model.Image{
			{URL: "https://img.example.com/1.jpg", IsMain: true},
		},
		Status: model.PropertyActive,
	}
}

func TestValidatePropertyAccepts(t *testing.T) {
	v := NewPropertyValidator(testLogger())
	if err := v.Validate(validProperty()); err != nil {
		t.Fatalf("valid property rejected: %v", err)
	}
}

func TestValidatePropertyRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Property)
	}{
		{"missing title", func(p *model.Property) { p.Title = "" }},
		{"unknown type", func(p *model.Property) { p.Type = "Treehouse" }},
		{"zero max guests", func(p *model.Property) { p.Rules.MaxGuests = 0 }},
		{"zero beds", func(p *model.Property) { p.Rooms.Beds = 0 }},
		{"negative price", func(p *model.Property) { p.Price.Regular = -10 }},
		{"bad host id", func(p *model.Property) { p.HostID = "not-an-oid" }},
		{"unknown amenity", func(p *model.Property) { p.Amenities = []string{"Helipad"} }},
		{"bad image url", func(p *model.Property) { p.Images[0].URL = "not a url" }},
		{"discount above regular", func(p *model.Property) {
			d := 200.0
			p.Price.Discounted = &d
		}},
		{"two main images", func(p *model.Property) {
			p.Images = append(p.Images, model.Image{URL: "https://img.example.com/2.jpg", IsMain: true})
		}},
	}

	v := NewPropertyValidator(testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProperty()
			tt.mutate(p)
			if err := v.Validate(p); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidatePropertyAllowsKnownAmenities(t *testing.T) {
	v := NewPropertyValidator(testLogger())
	p := validProperty()
	p.Amenities = []string{"WiFi", "Free parking", "Hot tub"}
	if err := v.Validate(p); err != nil {
		t.Fatalf("known amenities rejected: %v", err)
	}
}
