package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/warbler/internal/errors"
	"github.com/yukikurage/warbler/internal/logger"
	"github.com/yukikurage/warbler/internal/models"
	"github.com/yukikurage/warbler/internal/services"
	"go.uber.org/zap"
)

// ContextKeyMessage holds the message loaded by RequireMessageOwner
const ContextKeyMessage = "message"

// RequireMessageOwner loads the message named by :id and checks that the
// signed-in user wrote it. Must run after RequireAuth.
func RequireMessageOwner(messageService *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		messageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid message ID")
			c.Abort()
			return
		}

		user := CurrentUser(c)
		if user == nil {
			RejectUnauthorized(c)
			return
		}

		message, err := messageService.Get(c.Request.Context(), messageID)
		if err != nil {
			if errors.Is(err, services.ErrMessageNotFound) {
				apierrors.NotFound(c, "Message not found")
			} else {
				logger.Error("failed to load message", zap.Uint64("message_id", messageID), zap.Error(err))
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		if message.UserID != user.ID {
			RejectForbidden(c)
			return
		}

		c.Set(ContextKeyMessage, message)
		c.Next()
	}
}

// LoadedMessage returns the message RequireMessageOwner put in the context, or nil
func LoadedMessage(c *gin.Context) *models.Message {
	value, exists := c.Get(ContextKeyMessage)
	if !exists {
		return nil
	}
	message, _ := value.(*models.Message)
	return message
}
