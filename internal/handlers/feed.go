package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler/internal/dto"
	"github.com/yukikurage/warbler/internal/middleware"
	"github.com/yukikurage/warbler/internal/services"
	"github.com/yukikurage/warbler/internal/utils"
)

// FeedHandler serves the home timeline and pending notices.
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// Timeline returns the signed-in user's home feed; visitors get an empty anonymous feed
func (h *FeedHandler) Timeline(c *gin.Context) {
	timeline, err := h.feedService.TimelineFor(c.Request.Context(), middleware.CurrentUser(c), utils.GetLimitParam(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimelineResponse(timeline))
}

// Notices pops the pending one-shot notices
func (h *FeedHandler) Notices(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NoticeListResponse{Notices: middleware.PopNotices(c)})
}
