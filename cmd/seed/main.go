package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	bookingrepo "roamify/internal/bookings/repository"
	propertyrepo "roamify/internal/properties/repository"
	userrepo "roamify/internal/users/repository"
	"roamify/pkg/auth"
	"roamify/pkg/config"
	"roamify/pkg/model"
)

const ServiceName = "roamify-seed"

// Seeds a demo marketplace: one admin, one host with two listings, one guest
// with a confirmed stay. Prints a bearer token per user so the API can be
// exercised immediately.
func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := userrepo.NewMongoUserRepository(cfg)
	properties := propertyrepo.NewMongoPropertyRepository(cfg)
	bookings := bookingrepo.NewMongoBookingRepository(cfg)

	admin := &model.User{
		Name:  "Ada Admin",
		Email: "admin@roamify.dev",
		Role:  auth.RoleAdmin,
	}
	host := &model.User{
		Name:        "Hank Host",
		Email:       "hank@roamify.dev",
		PhoneNumber: "+14155550101",
		Role:        auth.RoleHost,
	}
	guest := &model.User{
		Name:  "Grace Guest",
		Email: "grace@roamify.dev",
		Role:  auth.RoleUser,
	}
	for _, u := range []*model.User{admin, host, guest} {
		if err := users.Create(ctx, u); err != nil {
			cfg.Log.Fatal("Failed to seed user", "email", u.Email, "error", err)
		}
	}

	villa := &model.Property{
		HostID:      host.ID,
		Title:       "Sea View Villa",
		Description: "A villa above the cliffs with a private pool and a view of the Atlantic.",
		Type:        "Villa",
		Location: model.Location{
			Address: "1 Ocean Drive",
			City:    "Lisbon",
			State:   "Lisbon",
			Country: "Portugal",
		},
		Price:     model.Price{Regular: 240},
		Amenities: []string{"WiFi", "Pool", "Kitchen", "Free parking"},
		Rules: model.HouseRules{
			MaxGuests:    6,
			CheckInTime:  "15:00",
			CheckOutTime: "11:00",
		},
		Rooms: model.Rooms{Bedrooms: 3, Beds: 4, Bathrooms: 2},
		Images: []model.Image{
			{URL: "https://images.roamify.dev/villa-1.jpg", IsMain: true},
			{URL: "https://images.roamify.dev/villa-2.jpg"},
		},
		Status: model.PropertyActive,
	}
	loft := &model.Property{
		HostID:      host.ID,
		Title:       "Old Town Loft",
		Description: "A bright loft two streets from the castle, good for a weekend stay.",
		Type:        "Apartment",
		Location: model.Location{
			Address: "12 Rua da Alfama",
			City:    "Lisbon",
			State:   "Lisbon",
			Country: "Portugal",
		},
		Price:     model.Price{Regular: 95},
		Amenities: []string{"WiFi", "Kitchen", "Washer"},
		Rules:     model.HouseRules{MaxGuests: 2, CheckInTime: "14:00", CheckOutTime: "12:00"},
		Rooms:     model.Rooms{Bedrooms: 1, Beds: 1, Bathrooms: 1},
		Images: []model.Image{
			{URL: "https://images.roamify.dev/loft-1.jpg", IsMain: true},
		},
		Status: model.PropertyActive,
	}
	for _, p := range []*model.Property{villa, loft} {
		if err := properties.Create(ctx, p); err != nil {
			cfg.Log.Fatal("Failed to seed property", "title", p.Title, "error", err)
		}
	}

	checkIn := time.Now().UTC().AddDate(0, 0, 14).Truncate(24 * time.Hour)
	stay := &model.Booking{
		PropertyID:    villa.ID,
		GuestID:       guest.ID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkIn.AddDate(0, 0, 5),
		TotalGuests:   2,
		TotalPrice:    1200,
		PaymentStatus: model.PaymentPaid,
		BookingStatus: model.BookingConfirmed,
	}
	if err := bookings.Create(ctx, stay); err != nil {
		cfg.Log.Fatal("Failed to seed booking", "error", err)
	}

	cfg.Log.Info("Seed data created",
		"users", 3,
		"properties", 2,
		"bookings", 1,
	)

	verifier := auth.NewTokenVerifier(cfg.JWTSecret)
	for _, u := range []*model.User{admin, host, guest} {
		token, err := verifier.Sign(u.ID, u.Role, 24*time.Hour)
		if err != nil {
			cfg.Log.Fatal("Failed to sign demo token", "error", err)
		}
		fmt.Printf("%s (%s): %s\n", u.Name, u.Role, token)
	}
}
