package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler/internal/constants"
	apierrors "github.com/yukikurage/warbler/internal/errors"
	"github.com/yukikurage/warbler/internal/logger"
	"github.com/yukikurage/warbler/internal/middleware"
	"github.com/yukikurage/warbler/internal/services"
	"go.uber.org/zap"
)

const wrongPasswordMessage = "Wrong password, please try again."

// respondServiceError maps service errors to HTTP responses
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		middleware.RejectUnauthorized(c)
	case errors.Is(err, services.ErrNotMessageOwner):
		middleware.RejectForbidden(c)
	case errors.Is(err, services.ErrIncorrectPassword):
		middleware.AddNotice(c, constants.NoticeDanger, wrongPasswordMessage)
		apierrors.RespondWithError(c, http.StatusUnauthorized,
			apierrors.NewNoticeError(apierrors.ErrCodeInvalidCredentials, wrongPasswordMessage, "/"))
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrPasswordTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at most %d bytes", constants.MaxPasswordBytes))
	case errors.Is(err, services.ErrMessageTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Message must be at most %d characters", constants.MaxMessageLength))
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrCannotFollowSelf):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUsernameOrEmailTaken):
		apierrors.Conflict(c, "Username or email already taken")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrMessageNotFound):
		apierrors.NotFound(c, "Message not found")
	default:
		logger.Error("request failed",
			zap.String("request_id", c.GetString(constants.ContextKeyRequestID)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		apierrors.InternalError(c, "")
	}
}
