// File: internal/profile/model.go
package profile

import (
	"plusone_backend/internal/post"
	"plusone_backend/internal/user"

	"github.com/google/uuid"
)

// UpdateRequest is the profile update payload. All three fields are
// optional; absent fields leave the corresponding state untouched.
type UpdateRequest struct {
	Profile   *user.Profile `json:"profile"`
	Step      *int          `json:"step"`
	Completed *bool         `json:"completed"`
}

// Response is the enriched profile view: the stored account plus live
// counts and the account's posts.
type Response struct {
	UserID           uuid.UUID           `json:"user_id"`
	Email            string              `json:"email"`
	FirstName        string              `json:"first_name"`
	LastName         string              `json:"last_name"`
	Profile          user.Profile        `json:"profile"`
	Onboarding       user.Onboarding     `json:"onboarding"`
	ConnectionsCount int                 `json:"connections_count"`
	RequestsCount    int                 `json:"requests_count"`
	PostsCount       int                 `json:"posts_count"`
	Posts            []post.PostResponse `json:"posts"`
}
