package model

import "time"

type PropertyStatus string

const (
	PropertyActive   PropertyStatus = "active"
	PropertyInactive PropertyStatus = "inactive"
	PropertyPending  PropertyStatus = "pending"
	PropertyRejected PropertyStatus = "rejected"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
}

type Location struct {
	Address     string       `json:"address" bson:"address" validate:"required"`
	City        string       `json:"city" bson:"city" validate:"required"`
	State       string       `json:"state" bson:"state" validate:"required"`
	Country     string       `json:"country" bson:"country" validate:"required"`
	ZipCode     string       `json:"zipCode,omitempty" bson:"zip_code,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

type Price struct {
	Regular    float64  `json:"regular" bson:"regular" validate:"required,gt=0"`
	Discounted *float64 `json:"discounted,omitempty" bson:"discounted,omitempty" validate:"omitempty,gt=0"`
}

type HouseRules struct {
	PetsAllowed    bool   `json:"petsAllowed" bson:"pets_allowed"`
	SmokingAllowed bool   `json:"smokingAllowed" bson:"smoking_allowed"`
	EventsAllowed  bool   `json:"eventsAllowed" bson:"events_allowed"`
	MaxGuests      int    `json:"maxGuests" bson:"max_guests" validate:"required,min=1"`
	CheckInTime    string `json:"checkInTime" bson:"check_in_time" validate:"omitempty,len=5"`
	CheckOutTime   string `json:"checkOutTime" bson:"check_out_time" validate:"omitempty,len=5"`
}

type Rooms struct {
	Bedrooms  int `json:"bedrooms" bson:"bedrooms" validate:"min=0"`
	Beds      int `json:"beds" bson:"beds" validate:"required,min=1"`
	Bathrooms int `json:"bathrooms" bson:"bathrooms" validate:"min=0"`
}

type Image struct {
	URL     string `json:"url" bson:"url" validate:"required,url"`
	Caption string `json:"caption,omitempty" bson:"caption,omitempty"`
	IsMain  bool   `json:"isMain" bson:"is_main"`
}

type Ratings struct {
	Average float64 `json:"average" bson:"average" validate:"min=0,max=5"`
	Count   int     `json:"count" bson:"count" validate:"min=0"`
}

type AvailabilityWindow struct {
	StartDate time.Time `json:"startDate" bson:"start_date" validate:"required"`
	EndDate   time.Time `json:"endDate" bson:"end_date" validate:"required,gtfield=StartDate"`
}

type Property struct {
	ID           string               `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	HostID       string               `json:"hostId" bson:"host" validate:"required,mongodb"`
	Title        string               `json:"title" bson:"title" validate:"required,min=3,max=150"`
	Description  string               `json:"description" bson:"description" validate:"required,max=5000"`
	Type         string               `json:"type" bson:"type" validate:"required,oneof=Hotel Apartment House Villa Cabin Cottage Other"`
	Location     Location             `json:"location" bson:"location" validate:"required"`
	Price        Price                `json:"price" bson:"price" validate:"required"`
	Amenities    []string             `json:"amenities" bson:"amenities" validate:"dive,oneof=WiFi Kitchen 'Free parking' 'Air conditioning' Heating Washer Dryer TV Pool 'Hot tub' Gym Breakfast"`
	Rules        HouseRules           `json:"rules" bson:"rules" validate:"required"`
	Rooms        Rooms                `json:"rooms" bson:"rooms" validate:"required"`
	Images       []Image              `json:"images" bson:"images" validate:"dive"`
	Ratings      Ratings              `json:"ratings" bson:"ratings"`
	Availability []AvailabilityWindow `json:"availability" bson:"availability" validate:"dive"`
	Status       PropertyStatus       `json:"status" bson:"status" validate:"omitempty,oneof=active inactive pending rejected"`
	CreatedAt    time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updated_at"`
}

// PropertySummary is the slice of a property embedded in booking listings.
type PropertySummary struct {
	ID        string  `json:"id" bson:"_id"`
	Title     string  `json:"title" bson:"title"`
	City      string  `json:"city"`
	Price     Price   `json:"price" bson:"price"`
	MainImage string  `json:"mainImage,omitempty"`
	HostID    string  `json:"hostId" bson:"host"`
	Host      *UserSummary `json:"host,omitempty" bson:"-"`
}

// Summary projects the fields booking listings embed.
func (p *Property) Summary() *PropertySummary {
	s := &PropertySummary{
		ID:     p.ID,
		Title:  p.Title,
		City:   p.Location.City,
		Price:  p.Price,
		HostID: p.HostID,
	}
	for _, img := range p.Images {
		if img.IsMain {
			s.MainImage = img.URL
			break
		}
	}
	if s.MainImage == "" && len(p.Images) > 0 {
		s.MainImage = p.Images[0].URL
	}
	return s
}

// PropertyFilter captures the public listing query.
type PropertyFilter struct {
	City     string
	Type     string
	MinPrice *float64
	MaxPrice *float64
	Guests   *int
	Term     string
}
