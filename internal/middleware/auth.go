package middleware

import (
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler/internal/constants"
	"github.com/yukikurage/warbler/internal/dto"
	apierrors "github.com/yukikurage/warbler/internal/errors"
	"github.com/yukikurage/warbler/internal/logger"
	"github.com/yukikurage/warbler/internal/models"
	"github.com/yukikurage/warbler/internal/services"
	"go.uber.org/zap"
)

const loggedOutMessage = "You have been logged out."

// LoadCurrentUser resolves the session's user for every request.
// A binding to a user that no longer exists is dropped.
func LoadCurrentUser(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(constants.SessionKeyUserID)
		if raw == nil {
			c.Next()
			return
		}

		userID, ok := toUint64(raw)
		if !ok {
			clearBinding(session)
			c.Next()
			return
		}

		user, err := authService.GetUser(c.Request.Context(), userID)
		switch {
		case err == nil:
			setCurrentUser(c, user)
		case errors.Is(err, services.ErrUserNotFound):
			clearBinding(session)
		default:
			logger.Error("failed to load session user", zap.Uint64("user_id", userID), zap.Error(err))
			apierrors.InternalError(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAuth rejects requests without a signed-in user
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			RejectUnauthorized(c)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the signed-in user, or nil
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(constants.ContextKeyCurrentUser)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

// Login binds the session to user
func Login(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(constants.SessionKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		return err
	}

	setCurrentUser(c, user)
	return nil
}

// Logout drops the session binding and queues a notice
func Logout(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(constants.SessionKeyUserID)
	session.AddFlash(encodeNotice(constants.NoticeSuccess, loggedOutMessage))
	if err := session.Save(); err != nil {
		return err
	}

	c.Set(constants.ContextKeyCurrentUser, (*models.User)(nil))
	c.Set(constants.ContextKeyUserID, nil)
	return nil
}

// AddNotice queues a one-shot notice for the next page the user sees
func AddNotice(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(encodeNotice(category, message))
	if err := session.Save(); err != nil {
		logger.Warn("failed to save notice", zap.Error(err))
	}
}

// PopNotices returns and clears pending notices
func PopNotices(c *gin.Context) []dto.Notice {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if err := session.Save(); err != nil {
		logger.Warn("failed to clear notices", zap.Error(err))
	}

	notices := make([]dto.Notice, 0, len(flashes))
	for _, f := range flashes {
		s, ok := f.(string)
		if !ok {
			continue
		}
		notices = append(notices, decodeNotice(s))
	}
	return notices
}

// RejectUnauthorized answers 401 and queues the access notice
func RejectUnauthorized(c *gin.Context) {
	AddNotice(c, constants.NoticeDanger, apierrors.AccessUnauthorizedMessage)
	apierrors.Unauthorized(c)
	c.Abort()
}

// RejectForbidden answers 403 and queues the access notice
func RejectForbidden(c *gin.Context) {
	AddNotice(c, constants.NoticeDanger, apierrors.AccessUnauthorizedMessage)
	apierrors.Forbidden(c)
	c.Abort()
}

func setCurrentUser(c *gin.Context, user *models.User) {
	c.Set(constants.ContextKeyCurrentUser, user)
	c.Set(constants.ContextKeyUserID, user.ID)
}

func clearBinding(session sessions.Session) {
	session.Delete(constants.SessionKeyUserID)
	if err := session.Save(); err != nil {
		logger.Warn("failed to clear stale session", zap.Error(err))
	}
}

// Flashes are stored as "category:message" so the session codec needs no registered types
func encodeNotice(category, message string) string {
	return category + ":" + message
}

func decodeNotice(s string) dto.Notice {
	category, message, found := strings.Cut(s, ":")
	if !found {
		return dto.Notice{Category: constants.NoticeSuccess, Message: s}
	}
	return dto.Notice{Category: category, Message: message}
}

func toUint64(v interface{}) (uint64, bool) {
	switch id := v.(type) {
	case uint64:
		return id, true
	case uint:
		return uint64(id), true
	case int:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	case int64:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	case float64:
		// JSON-serialized session stores decode numbers as float64
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	default:
		return 0, false
	}
}
