// File: internal/connection/handler.go
package connection

import (
	"context"
	"errors"

	"plusone_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler exposes the connection endpoints. All of them require auth.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts /connections routes on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	connections := rg.Group("/connections", authMW)
	{
		connections.POST("/request", h.createRequest)
		connections.POST("/accept/:request_id", h.acceptRequest)
		connections.POST("/reject/:request_id", h.rejectRequest)
		connections.GET("/status", h.getStatus)
		connections.GET("/pending-requests", h.getPendingRequests)
	}
}

func (h *Handler) createRequest(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}

	var input CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	if input.ToUserID == userID {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Cannot send a connection request to yourself."))
		return
	}

	resp, err := h.service.CreateRequest(c.Request.Context(), userID, input)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Connection request sent successfully.", resp)
}

func (h *Handler) acceptRequest(c *gin.Context) {
	h.respondToRequest(c, h.service.AcceptRequest, "Connection request accepted successfully.")
}

func (h *Handler) rejectRequest(c *gin.Context) {
	h.respondToRequest(c, h.service.RejectRequest, "Connection request rejected successfully.")
}

// respondToRequest handles the shared shape of accept and reject.
func (h *Handler) respondToRequest(
	c *gin.Context,
	op func(ctx context.Context, requestID, actingUserID uuid.UUID) (*RequestResponse, error),
	successMessage string,
) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}

	requestID, err := uuid.Parse(c.Param("request_id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request ID format."))
		return
	}

	resp, err := op(c.Request.Context(), requestID, userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, successMessage, resp)
}

func (h *Handler) getStatus(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}

	toUserID, err := uuid.Parse(c.Query("to_user_id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Query parameter 'to_user_id' must be a valid UUID."))
		return
	}

	status, err := h.service.ResolveStatus(c.Request.Context(), userID, toUserID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Connection status retrieved successfully.", StatusResponse{Status: status})
}

func (h *Handler) getPendingRequests(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}

	requests, err := h.service.PendingRequestsFor(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Pending requests retrieved successfully.", requests)
}
