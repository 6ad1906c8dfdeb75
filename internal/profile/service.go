// File: internal/profile/service.go
package profile

import (
	"context"
	"time"

	"plusone_backend/internal/connection"
	"plusone_backend/internal/post"
	"plusone_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service reads and updates profiles and onboarding state. Reads are
// fault-tolerant: count and post lookups degrade to zero values so a
// profile page never fails because a secondary store is down. Writes are
// strict and surface every error.
type Service struct {
	users       user.Repository
	connections connection.ConnectionRepository
	requests    connection.RequestRepository
	posts       post.Repository
	search      *user.SearchService
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates the profile service.
func NewService(
	users user.Repository,
	connections connection.ConnectionRepository,
	requests connection.RequestRepository,
	posts post.Repository,
	search *user.SearchService,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:       users,
		connections: connections,
		requests:    requests,
		posts:       posts,
		search:      search,
		logger:      logger,
		now:         time.Now,
	}
}

// GetProfile returns the enriched profile view for the account.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*Response, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	normalizeStored(u)
	return s.buildResponse(ctx, u), nil
}

// UpdateProfile applies a partial update to the account's profile and
// onboarding state and returns the refreshed view. The incoming profile
// replaces the stored one wholesale after sanitization; step and completed
// are applied individually.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateRequest) (*Response, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	normalizeStored(u)

	if req.Profile != nil {
		u.Profile = sanitizeProfile(*req.Profile)
	}
	u.Onboarding = applyOnboardingUpdate(u.Onboarding, req.Step, req.Completed, s.now())

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated",
		zap.String("userID", userID.String()),
		zap.Bool("onboardingCompleted", u.Onboarding.Completed),
		zap.Int("onboardingStep", u.Onboarding.Step),
	)

	// Interests may have changed; keep the search index in step.
	s.search.IndexUser(ctx, u)

	return s.buildResponse(ctx, u), nil
}

// sanitizeProfile returns a defensive copy of the incoming profile with
// every collection materialized and the stored counters clamped to be
// non-negative. Substructures are value types, so a partial payload already
// decodes to fully-materialized zero values.
func sanitizeProfile(p user.Profile) user.Profile {
	interests := make([]string, 0, len(p.Interests))
	interests = append(interests, p.Interests...)
	p.Interests = interests

	if p.NumConnections < 0 {
		p.NumConnections = 0
	}
	if p.NumRequests < 0 {
		p.NumRequests = 0
	}
	return p
}

// applyOnboardingUpdate merges optional step and completed changes into the
// current onboarding state. The step is clamped to the valid range.
// CompletedAt is set exactly once: re-completing keeps the original
// timestamp, and un-completing clears it.
func applyOnboardingUpdate(current user.Onboarding, step *int, completed *bool, now time.Time) user.Onboarding {
	ob := current
	if step != nil {
		ob.Step = clampStep(*step)
	}
	if completed != nil {
		ob.Completed = *completed
		if *completed {
			if ob.CompletedAt == nil {
				t := now
				ob.CompletedAt = &t
			}
		} else {
			ob.CompletedAt = nil
		}
	}
	return ob
}

func clampStep(step int) int {
	if step < user.OnboardingStepMin {
		return user.OnboardingStepMin
	}
	if step > user.OnboardingStepMax {
		return user.OnboardingStepMax
	}
	return step
}

// normalizeStored repairs rows written before the current invariants held:
// a nil interests slice and an out-of-range step.
func normalizeStored(u *user.User) {
	if u.Profile.Interests == nil {
		u.Profile.Interests = []string{}
	}
	u.Onboarding.Step = clampStep(u.Onboarding.Step)
}

// buildResponse assembles the enriched view. Each enrichment lookup fails
// soft: the error is logged and the field stays at its zero value.
func (s *Service) buildResponse(ctx context.Context, u *user.User) *Response {
	resp := &Response{
		UserID:     u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Profile:    u.Profile,
		Onboarding: u.Onboarding,
		Posts:      []post.PostResponse{},
	}

	if count, err := s.connections.CountForAccount(ctx, u.ID); err != nil {
		s.logger.Warn("Connection count unavailable for profile view",
			zap.Error(err), zap.String("userID", u.ID.String()))
	} else {
		resp.ConnectionsCount = int(count)
	}

	if count, err := s.requests.CountByToAndStatus(ctx, u.ID, connection.RequestPending); err != nil {
		s.logger.Warn("Pending request count unavailable for profile view",
			zap.Error(err), zap.String("userID", u.ID.String()))
	} else {
		resp.RequestsCount = int(count)
	}

	if posts, err := s.posts.FindByUserID(ctx, u.ID); err != nil {
		s.logger.Warn("Posts unavailable for profile view",
			zap.Error(err), zap.String("userID", u.ID.String()))
	} else {
		resp.PostsCount = len(posts)
		for i := range posts {
			resp.Posts = append(resp.Posts, post.ToPostResponse(&posts[i]))
		}
	}

	return resp
}
