package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler/internal/constants"
)

// GetLimitParam reads the ?limit= query parameter for feed endpoints.
// Missing, malformed or out-of-range values fall back to the default.
func GetLimitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultTimelineLimit)))
	if err != nil || limit < 1 || limit > constants.MaxTimelineLimit {
		return constants.DefaultTimelineLimit
	}
	return limit
}

// ParseIDParam parses a numeric route parameter
func ParseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
