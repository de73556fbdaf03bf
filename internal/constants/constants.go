package constants

import "time"

// Session and context keys
const (
	SessionCookieName     = "warbler_session"
	SessionKeyUserID      = "curr_user"
	ContextKeyUserID      = "user_id"
	ContextKeyCurrentUser = "current_user"
	ContextKeyRequestID   = "request_id"
	HeaderRequestID       = "X-Request-ID"
)

// Account rules
const (
	MinPasswordLength = 6
	// bcrypt ignores input past 72 bytes
	MaxPasswordBytes  = 72
	MaxUsernameLength = 50
	MaxProfileText    = 140
)

// Default profile images
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// Messages and feeds
const (
	MaxMessageLength     = 140
	DefaultTimelineLimit = 100
	MaxTimelineLimit     = 100
)

// Cache
const (
	ProfileStatsTTL = 5 * time.Minute
)

// Notice categories
const (
	NoticeSuccess = "success"
	NoticeDanger  = "danger"
)
