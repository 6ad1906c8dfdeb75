// File: internal/connection/service.go
package connection

import (
	"context"
	"errors"

	"plusone_backend/internal/common"
	"plusone_backend/internal/notifier"
	"plusone_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service owns the connection-request lifecycle and the relationship status
// computed from it. All state transitions and uniqueness invariants live
// here; handlers stay thin.
type Service struct {
	requests    RequestRepository
	connections ConnectionRepository
	users       user.Repository
	notifier    notifier.Notifier
	logger      *zap.Logger
}

// NewService creates the connection service.
func NewService(
	requests RequestRepository,
	connections ConnectionRepository,
	users user.Repository,
	notifier notifier.Notifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		requests:    requests,
		connections: connections,
		users:       users,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateRequest creates a PENDING connection request from fromID to the
// payload's recipient. It fails with NotFound when either account is
// unknown, and with Conflict when the accounts are already connected or a
// request for the ordered (from, to) pair is already pending. A pending
// request in the reverse direction does not block creation; status
// resolution is directional in the same way.
func (s *Service) CreateRequest(ctx context.Context, fromID uuid.UUID, input CreateRequestInput) (*RequestResponse, error) {
	fromUser, err := s.users.FindByID(ctx, fromID)
	if err != nil {
		return nil, err
	}
	toUser, err := s.users.FindByID(ctx, input.ToUserID)
	if err != nil {
		return nil, err
	}

	connected, err := s.AreConnected(ctx, fromID, input.ToUserID)
	if err != nil {
		return nil, err
	}
	if connected {
		return nil, common.ErrConflict.WithDetails("Users are already connected.")
	}

	existing, err := s.requests.FindByFromAndTo(ctx, fromID, input.ToUserID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status == RequestPending {
		return nil, common.ErrConflict.WithDetails("A connection request is already pending.")
	}

	request := &ConnectionRequest{
		FromUserID: fromID,
		ToUserID:   input.ToUserID,
		Message:    input.Message,
		Status:     RequestPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("Connection request created",
		zap.String("requestID", request.ID.String()),
		zap.String("fromUserID", fromID.String()),
		zap.String("toUserID", input.ToUserID.String()),
	)

	// Best-effort; the notifier swallows its own failures.
	s.notifier.RequestCreated(toUser.Email, toUser.FirstName, fromUser.FullName(), input.Message)

	resp := ToRequestResponse(request)
	return &resp, nil
}

// AcceptRequest transitions a PENDING request to ACCEPTED and derives the
// symmetric Connection record. Only the recipient may accept; terminal
// requests fail with InvalidState. The two persistence steps are not atomic:
// a crash after the status update leaves an ACCEPTED request without its
// Connection. That window is accepted at this scale; both steps are kept in
// this one operation so a transactional store can close it behind the
// repository interface later.
func (s *Service) AcceptRequest(ctx context.Context, requestID, actingUserID uuid.UUID) (*RequestResponse, error) {
	request, err := s.gateTransition(ctx, requestID, actingUserID)
	if err != nil {
		return nil, err
	}

	if err := s.requests.UpdateStatus(ctx, request, RequestAccepted); err != nil {
		return nil, err
	}

	conn := &Connection{
		User1ID:             request.FromUserID,
		User2ID:             request.ToUserID,
		ConnectionRequestID: request.ID,
	}
	if err := s.connections.Create(ctx, conn); err != nil {
		return nil, err
	}

	s.logger.Info("Connection request accepted",
		zap.String("requestID", request.ID.String()),
		zap.String("connectionID", conn.ID.String()),
	)

	s.notifyAccepted(ctx, request)

	resp := ToRequestResponse(request)
	return &resp, nil
}

// RejectRequest transitions a PENDING request to REJECTED. Same gates as
// accept; no connection is created and nobody is notified.
func (s *Service) RejectRequest(ctx context.Context, requestID, actingUserID uuid.UUID) (*RequestResponse, error) {
	request, err := s.gateTransition(ctx, requestID, actingUserID)
	if err != nil {
		return nil, err
	}

	if err := s.requests.UpdateStatus(ctx, request, RequestRejected); err != nil {
		return nil, err
	}

	s.logger.Info("Connection request rejected", zap.String("requestID", request.ID.String()))

	resp := ToRequestResponse(request)
	return &resp, nil
}

// gateTransition loads a request and applies the shared accept/reject
// preconditions in order: NotFound, then Forbidden, then InvalidState.
func (s *Service) gateTransition(ctx context.Context, requestID, actingUserID uuid.UUID) (*ConnectionRequest, error) {
	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ToUserID != actingUserID {
		return nil, common.ErrForbidden.WithDetails("Only the recipient may respond to this request.")
	}
	if request.Status != RequestPending {
		return nil, common.ErrInvalidState.WithDetails("Connection request is not pending.")
	}
	return request, nil
}

// AreConnected reports whether a Connection exists between the two accounts,
// in either member order.
func (s *Service) AreConnected(ctx context.Context, a, b uuid.UUID) (bool, error) {
	_, err := s.connections.FindBetween(ctx, a, b)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ResolveStatus computes the tri-state relationship from fromID's point of
// view: CONNECTED beats PENDING beats NONE. Only the ordered (from, to)
// pair is inspected for pendingness.
func (s *Service) ResolveStatus(ctx context.Context, fromID, toID uuid.UUID) (Status, error) {
	connected, err := s.AreConnected(ctx, fromID, toID)
	if err != nil {
		return "", err
	}
	if connected {
		return StatusConnected, nil
	}

	request, err := s.requests.FindByFromAndTo(ctx, fromID, toID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return StatusNone, nil
		}
		return "", err
	}
	if request.Status == RequestPending {
		return StatusPending, nil
	}
	return StatusNone, nil
}

// PendingRequestsFor lists the PENDING requests addressed to the account.
func (s *Service) PendingRequestsFor(ctx context.Context, accountID uuid.UUID) ([]RequestResponse, error) {
	requests, err := s.requests.FindByToAndStatus(ctx, accountID, RequestPending)
	if err != nil {
		return nil, err
	}
	responses := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, ToRequestResponse(&requests[i]))
	}
	return responses, nil
}

// notifyAccepted tells the original requester. Account lookups here are
// read-side enrichment: a failure only skips the email.
func (s *Service) notifyAccepted(ctx context.Context, request *ConnectionRequest) {
	fromUser, err := s.users.FindByID(ctx, request.FromUserID)
	if err != nil {
		s.logger.Warn("Skipping acceptance notification, requester lookup failed",
			zap.Error(err), zap.String("requestID", request.ID.String()))
		return
	}
	toUser, err := s.users.FindByID(ctx, request.ToUserID)
	if err != nil {
		s.logger.Warn("Skipping acceptance notification, recipient lookup failed",
			zap.Error(err), zap.String("requestID", request.ID.String()))
		return
	}
	s.notifier.RequestAccepted(fromUser.Email, fromUser.FirstName, toUser.FullName())
}
