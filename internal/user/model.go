// File: internal/user/model.go
package user

import (
	"strings"
	"time"

	"plusone_backend/internal/common"

	"github.com/google/uuid"
)

// Gender is the self-reported gender enum. The zero value means "not set".
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderNonBinary      Gender = "non-binary"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer-not-to-say"
)

// Location is an always-present value structure; unset fields stay at their
// zero values so consumers never deal with a missing substructure.
type Location struct {
	City      string   `json:"city,omitempty"`
	State     string   `json:"state,omitempty"`
	Country   string   `json:"country,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Job holds the current position captured during onboarding.
type Job struct {
	Title       string `json:"title,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	CompanyID   string `json:"company_id,omitempty"`
}

// Photo references the stored profile picture.
type Photo struct {
	Storage string `json:"storage,omitempty"` // "gridfs" | "s3" | "gcs"
	Key     string `json:"key,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Profile is the embedded profile document, persisted as a JSON column on the
// users table. NumConnections/NumRequests are stored counters, distinct from
// the live counts computed at profile-read time.
type Profile struct {
	Gender         Gender   `json:"gender,omitempty"`
	Age            *int     `json:"age,omitempty"` // validated 13..120 at the API boundary
	Location       Location `json:"location"`
	Job            Job      `json:"job"`
	Interests      []string `json:"interests"`
	ProfilePhoto   Photo    `json:"profile_photo"`
	NumConnections int      `json:"num_connections"`
	NumRequests    int      `json:"num_requests"`
}

// EmptyProfile returns a fully-materialized profile with empty substructures.
func EmptyProfile() Profile {
	return Profile{Interests: []string{}}
}

// Onboarding tracks the staged profile-completion progress.
// Step is always within [1,4]; CompletedAt is present iff Completed is true.
type Onboarding struct {
	Completed   bool       `json:"completed"`
	Step        int        `json:"step"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

const (
	// OnboardingStepMin is the first onboarding step.
	OnboardingStepMin = 1
	// OnboardingStepMax is the last onboarding step.
	OnboardingStepMax = 4
)

// DefaultOnboarding is the state a fresh account starts in.
func DefaultOnboarding() Onboarding {
	return Onboarding{Completed: false, Step: OnboardingStepMin}
}

// User is the account aggregate. Profile and Onboarding are owned
// exclusively by it and never persisted independently.
type User struct {
	common.BaseModel
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Profile      Profile    `gorm:"type:jsonb;serializer:json" json:"profile"`
	Onboarding   Onboarding `gorm:"type:jsonb;serializer:json" json:"onboarding"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// FullName joins the display name parts.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NormalizeEmail lowercases and trims an email address. Every lookup and
// write path goes through this so the unique index sees one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// --- DTOs ---

// UserResponse is the public user shape returned by discovery endpoints.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converts a User model to its public DTO.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Profile:   u.Profile,
		CreatedAt: u.CreatedAt,
	}
}
