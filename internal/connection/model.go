// File: internal/connection/model.go
package connection

import (
	"time"

	"plusone_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatus is the lifecycle state of a connection request.
// PENDING transitions exactly once to ACCEPTED or REJECTED; both are
// terminal.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestAccepted RequestStatus = "ACCEPTED"
	RequestRejected RequestStatus = "REJECTED"
)

// Status is the resolved relationship between two accounts.
type Status string

const (
	StatusConnected Status = "CONNECTED"
	StatusPending   Status = "PENDING"
	StatusNone      Status = "NONE"
)

// ConnectionRequest is a directed, single-use proposal from one account to
// another to become connected. Requests are never deleted or reopened.
type ConnectionRequest struct {
	common.BaseModel
	FromUserID uuid.UUID     `gorm:"type:uuid;not null;index:idx_request_pair" json:"from_user_id"`
	ToUserID   uuid.UUID     `gorm:"type:uuid;not null;index:idx_request_pair;index:idx_request_to_status" json:"to_user_id"`
	Message    string        `gorm:"type:text;not null" json:"message"`
	Status     RequestStatus `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_request_to_status" json:"status"`
}

func (ConnectionRequest) TableName() string {
	return "connection_requests"
}

// Connection is the symmetric, permanent record created when a request is
// accepted. Member order carries no meaning; lookups are always symmetric.
type Connection struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	User1ID             uuid.UUID `gorm:"type:uuid;not null;index" json:"user1_id"`
	User2ID             uuid.UUID `gorm:"type:uuid;not null;index" json:"user2_id"`
	ConnectionRequestID uuid.UUID `gorm:"type:uuid;not null" json:"connection_request_id"`
	ConnectedAt         time.Time `gorm:"not null" json:"connected_at"`
}

func (Connection) TableName() string {
	return "connections"
}

// BeforeCreate assigns the id and connection timestamp.
func (c *Connection) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.ConnectedAt.IsZero() {
		c.ConnectedAt = time.Now()
	}
	return nil
}

// --- DTOs ---

// CreateRequestInput is the payload for creating a connection request.
type CreateRequestInput struct {
	ToUserID uuid.UUID `json:"to_user_id" binding:"required"`
	Message  string    `json:"message" binding:"required,max=1000"`
}

// RequestResponse is the request record returned by engine operations.
type RequestResponse struct {
	ID         uuid.UUID     `json:"id"`
	FromUserID uuid.UUID     `json:"from_user_id"`
	ToUserID   uuid.UUID     `json:"to_user_id"`
	Message    string        `json:"message"`
	Status     RequestStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// StatusResponse carries a resolved relationship status.
type StatusResponse struct {
	Status Status `json:"status"`
}

// ToRequestResponse converts a request model to its DTO.
func ToRequestResponse(r *ConnectionRequest) RequestResponse {
	return RequestResponse{
		ID:         r.ID,
		FromUserID: r.FromUserID,
		ToUserID:   r.ToUserID,
		Message:    r.Message,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
