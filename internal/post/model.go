// File: internal/post/model.go
package post

import (
	"time"

	"plusone_backend/internal/common"

	"github.com/google/uuid"
)

// Post is a community feed entry owned by one account.
type Post struct {
	common.BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Category    string    `gorm:"type:varchar(50);not null" json:"category"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"type:text" json:"image_url,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

// --- DTOs ---

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Category    string `json:"category" binding:"required,oneof='Events' 'Job opportunities' 'Internships' 'Housing'"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
}

// UpdatePostRequest is the payload for editing a post. Absent fields are
// left unchanged.
type UpdatePostRequest struct {
	Category    *string `json:"category" binding:"omitempty,oneof='Events' 'Job opportunities' 'Internships' 'Housing'"`
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
}

// PostResponse is the post shape returned by the API and the profile view.
type PostResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToPostResponse converts a Post model to its DTO.
func ToPostResponse(p *Post) PostResponse {
	return PostResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Category:    p.Category,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
}
