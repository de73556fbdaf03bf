package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler/internal/constants"
	"github.com/yukikurage/warbler/internal/dto"
	apierrors "github.com/yukikurage/warbler/internal/errors"
	"github.com/yukikurage/warbler/internal/middleware"
	"github.com/yukikurage/warbler/internal/services"
	"github.com/yukikurage/warbler/internal/utils"
)

const likeLoginRequiredMessage = "You must be logged in to like a warble."

// MessageHandler serves warbles and likes.
type MessageHandler struct {
	messageService *services.MessageService
	likeService    *services.LikeService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService, likeService *services.LikeService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		likeService:    likeService,
	}
}

// CreateMessage posts a message as the current user
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	type CreateMessageRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor := middleware.CurrentUser(c)
	message, err := h.messageService.Create(c.Request.Context(), actor, req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageCreatedResponse{
		Message:  dto.ToMessageDTO(*message),
		Notice:   dto.Success("Message posted."),
		Redirect: fmt.Sprintf("/users/%d", actor.ID),
	})
}

// GetMessage returns one message
func (h *MessageHandler) GetMessage(c *gin.Context) {
	messageID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid message ID")
		return
	}

	message, err := h.messageService.Get(c.Request.Context(), messageID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageDTO(*message))
}

// DeleteMessage removes the message loaded and ownership-checked by RequireMessageOwner.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	message := middleware.LoadedMessage(c)
	if message == nil {
		apierrors.InternalError(c, "")
		return
	}

	actor := middleware.CurrentUser(c)
	if err := h.messageService.Remove(c.Request.Context(), actor, message); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NoticeResponse{
		Notice:   dto.Success("Message deleted."),
		Redirect: fmt.Sprintf("/users/%d", actor.ID),
	})
}

// ToggleLike likes or unlikes a message
func (h *MessageHandler) ToggleLike(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		middleware.AddNotice(c, constants.NoticeDanger, likeLoginRequiredMessage)
		apierrors.RespondWithError(c, http.StatusUnauthorized,
			apierrors.NewNoticeError(apierrors.ErrCodeUnauthorized, likeLoginRequiredMessage, "/login"))
		return
	}

	messageID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid message ID")
		return
	}

	result, err := h.likeService.ToggleLike(c.Request.Context(), actor, messageID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	notice := dto.Success("You have liked the warble.")
	if result == services.LikeResultUnliked {
		notice = dto.Success("You have unliked the warble.")
	}

	c.JSON(http.StatusOK, dto.LikeResponse{
		Result:   result,
		Notice:   notice,
		Redirect: fmt.Sprintf("/messages/%d", messageID),
	})
}
