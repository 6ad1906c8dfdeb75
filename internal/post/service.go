// File: internal/post/service.go
package post

import (
	"context"

	"plusone_backend/internal/common"
	"plusone_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service owns post creation and ownership checks.
type Service struct {
	posts  Repository
	users  user.Repository
	logger *zap.Logger
}

// NewService creates the post service.
func NewService(posts Repository, users user.Repository, logger *zap.Logger) *Service {
	return &Service{posts: posts, users: users, logger: logger}
}

// CreatePost creates a post owned by the acting account.
func (s *Service) CreatePost(ctx context.Context, userID uuid.UUID, req CreatePostRequest) (*PostResponse, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	p := &Post{
		UserID:      userID,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Post created",
		zap.String("postID", p.ID.String()),
		zap.String("userID", userID.String()),
		zap.String("category", p.Category),
	)

	resp := ToPostResponse(p)
	return &resp, nil
}

// UpdatePost applies a partial edit. Only the owner may edit.
func (s *Service) UpdatePost(ctx context.Context, postID, actingUserID uuid.UUID, req UpdatePostRequest) (*PostResponse, error) {
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.UserID != actingUserID {
		return nil, common.ErrForbidden.WithDetails("You can only edit your own posts.")
	}

	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}

	resp := ToPostResponse(p)
	return &resp, nil
}

// DeletePost removes a post. Only the owner may delete.
func (s *Service) DeletePost(ctx context.Context, postID, actingUserID uuid.UUID) error {
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID != actingUserID {
		return common.ErrForbidden.WithDetails("You can only delete your own posts.")
	}
	return s.posts.Delete(ctx, postID)
}

// Feed returns one page of the community feed, optionally filtered by
// category.
func (s *Service) Feed(ctx context.Context, category string, page, pageSize int) ([]PostResponse, *common.Pagination, error) {
	offset := (page - 1) * pageSize
	posts, total, err := s.posts.FindPage(ctx, category, offset, pageSize)
	if err != nil {
		return nil, nil, err
	}
	responses := make([]PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, ToPostResponse(&posts[i]))
	}
	return responses, common.NewPagination(total, page, pageSize), nil
}

// ListByUser returns the account's posts, newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]PostResponse, error) {
	posts, err := s.posts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, ToPostResponse(&posts[i]))
	}
	return responses, nil
}
