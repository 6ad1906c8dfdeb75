// File: internal/post/handler.go
package post

import (
	"errors"

	"plusone_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler exposes the post endpoints. All of them require auth.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts /posts routes on the given group. Reads are public;
// writes require auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	posts := rg.Group("/posts")
	{
		posts.GET("", h.feed)
		posts.GET("/user/:user_id", h.listByUser)
		posts.POST("", authMW, h.createPost)
		posts.PUT("/:post_id", authMW, h.updatePost)
		posts.DELETE("/:post_id", authMW, h.deletePost)
	}
}

func (h *Handler) feed(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	category := c.Query("category")

	posts, pagination, err := h.service.Feed(c.Request.Context(), category, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Posts retrieved successfully.", gin.H{
		"posts":      posts,
		"pagination": pagination,
	})
}

func (h *Handler) createPost(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.service.CreatePost(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Post created successfully.", resp)
}

func (h *Handler) updatePost(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}

	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid post ID format."))
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.service.UpdatePost(c.Request.Context(), postID, userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Post updated successfully.", resp)
}

func (h *Handler) deletePost(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}

	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid post ID format."))
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), postID, userID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Post deleted successfully.", nil)
}

func (h *Handler) listByUser(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid user ID format."))
		return
	}

	posts, err := h.service.ListByUser(c.Request.Context(), targetID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Posts retrieved successfully.", posts)
}

func respondBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
		return
	}
	common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
}
