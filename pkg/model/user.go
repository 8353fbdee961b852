package model

import (
	"time"

	"roamify/pkg/auth"
)

type User struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name            string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email           string    `json:"email" bson:"email" validate:"required,email"`
	PhoneNumber     string    `json:"phoneNumber,omitempty" bson:"phone_number,omitempty" validate:"omitempty,e164"`
	ProfileImage    string    `json:"profileImage,omitempty" bson:"profile_image,omitempty" validate:"omitempty,url"`
	Role            auth.Role `json:"role" bson:"role" validate:"required,oneof=user host admin"`
	SavedProperties []string  `json:"savedProperties" bson:"saved_properties"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updated_at"`
}

// ProfileUpdate is the only mutable slice of a profile through the API.
type ProfileUpdate struct {
	Name         string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	PhoneNumber  string `json:"phoneNumber,omitempty" validate:"omitempty,e164"`
	ProfileImage string `json:"profileImage,omitempty" validate:"omitempty,url"`
}

// UserSummary is the slice of a user embedded in booking responses.
type UserSummary struct {
	ID           string `json:"id" bson:"_id"`
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	ProfileImage string `json:"profileImage,omitempty" bson:"profile_image,omitempty"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}

const (
	SaveAction   = "save"
	UnsaveAction = "unsave"
)

type SavedPropertyUpdate struct {
	Action string `json:"action" validate:"required,oneof=save unsave"`
}
