// File: internal/user/handler.go
package user

import (
	"strconv"
	"strings"

	"plusone_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler exposes user discovery endpoints.
type Handler struct {
	search *SearchService
	logger *zap.Logger
}

func NewHandler(search *SearchService, logger *zap.Logger) *Handler {
	return &Handler{search: search, logger: logger}
}

// RegisterRoutes mounts /users discovery routes on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	users := rg.Group("/users")
	{
		users.GET("/search", h.searchUsers)
		users.GET("/recent", authMW, h.recentUsers)
	}
}

func (h *Handler) searchUsers(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Query parameter 'q' is required."))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	results, err := h.search.SearchByInterest(c.Request.Context(), query, limit)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Search results retrieved successfully.", results)
}

func (h *Handler) recentUsers(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))

	results, err := h.search.RecentUsers(c.Request.Context(), userID, limit)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Recent users retrieved successfully.", results)
}
