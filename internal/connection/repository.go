// File: internal/connection/repository.go
package connection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"plusone_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestRepository persists connection requests.
type RequestRepository interface {
	Create(ctx context.Context, request *ConnectionRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*ConnectionRequest, error)
	// FindByFromAndTo returns the most recent request for the ordered
	// (from, to) pair.
	FindByFromAndTo(ctx context.Context, fromID, toID uuid.UUID) (*ConnectionRequest, error)
	FindByToAndStatus(ctx context.Context, toID uuid.UUID, status RequestStatus) ([]ConnectionRequest, error)
	CountByToAndStatus(ctx context.Context, toID uuid.UUID, status RequestStatus) (int64, error)
	// UpdateStatus transitions a request out of PENDING. The update is
	// guarded on the current status so a request can never be
	// double-accepted or accepted-then-rejected; losing the race yields
	// ErrInvalidState. On success the in-memory record is updated too.
	UpdateStatus(ctx context.Context, request *ConnectionRequest, status RequestStatus) error
}

// ConnectionRepository persists the symmetric connection records.
type ConnectionRepository interface {
	Create(ctx context.Context, conn *Connection) error
	// FindBetween matches the unordered pair {a, b}.
	FindBetween(ctx context.Context, a, b uuid.UUID) (*Connection, error)
	CountForAccount(ctx context.Context, id uuid.UUID) (int64, error)
}

type gormRequestRepository struct {
	db *gorm.DB
}

// NewGORMRequestRepository creates a GORM-backed request repository.
func NewGORMRequestRepository(db *gorm.DB) RequestRepository {
	return &gormRequestRepository{db: db}
}

func (r *gormRequestRepository) Create(ctx context.Context, request *ConnectionRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("creating connection request: %w", err)
	}
	return nil
}

func (r *gormRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*ConnectionRequest, error) {
	var req ConnectionRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Connection request not found.")
		}
		return nil, fmt.Errorf("finding connection request %s: %w", id, err)
	}
	return &req, nil
}

func (r *gormRequestRepository) FindByFromAndTo(ctx context.Context, fromID, toID uuid.UUID) (*ConnectionRequest, error) {
	var req ConnectionRequest
	err := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromID, toID).
		Order("created_at DESC").
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("No connection request between these users.")
		}
		return nil, fmt.Errorf("finding connection request from %s to %s: %w", fromID, toID, err)
	}
	return &req, nil
}

func (r *gormRequestRepository) FindByToAndStatus(ctx context.Context, toID uuid.UUID, status RequestStatus) ([]ConnectionRequest, error) {
	var requests []ConnectionRequest
	err := r.db.WithContext(ctx).
		Where("to_user_id = ? AND status = ?", toID, status).
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("finding %s requests for %s: %w", status, toID, err)
	}
	return requests, nil
}

func (r *gormRequestRepository) CountByToAndStatus(ctx context.Context, toID uuid.UUID, status RequestStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ConnectionRequest{}).
		Where("to_user_id = ? AND status = ?", toID, status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting %s requests for %s: %w", status, toID, err)
	}
	return count, nil
}

func (r *gormRequestRepository) UpdateStatus(ctx context.Context, request *ConnectionRequest, status RequestStatus) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&ConnectionRequest{}).
		Where("id = ? AND status = ?", request.ID, RequestPending).
		Updates(map[string]interface{}{"status": status, "updated_at": now})
	if result.Error != nil {
		return fmt.Errorf("updating connection request %s: %w", request.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrInvalidState.WithDetails("Connection request is not pending.")
	}
	request.Status = status
	request.UpdatedAt = now
	return nil
}

type gormConnectionRepository struct {
	db *gorm.DB
}

// NewGORMConnectionRepository creates a GORM-backed connection repository.
func NewGORMConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &gormConnectionRepository{db: db}
}

func (r *gormConnectionRepository) Create(ctx context.Context, conn *Connection) error {
	if err := r.db.WithContext(ctx).Create(conn).Error; err != nil {
		return fmt.Errorf("creating connection: %w", err)
	}
	return nil
}

func (r *gormConnectionRepository) FindBetween(ctx context.Context, a, b uuid.UUID) (*Connection, error) {
	var conn Connection
	err := r.db.WithContext(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)", a, b, b, a).
		First(&conn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("No connection between these users.")
		}
		return nil, fmt.Errorf("finding connection between %s and %s: %w", a, b, err)
	}
	return &conn, nil
}

func (r *gormConnectionRepository) CountForAccount(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Connection{}).
		Where("user1_id = ? OR user2_id = ?", id, id).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting connections for %s: %w", id, err)
	}
	return count, nil
}
