package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler/internal/dto"
	apierrors "github.com/yukikurage/warbler/internal/errors"
	"github.com/yukikurage/warbler/internal/middleware"
	"github.com/yukikurage/warbler/internal/services"
	"github.com/yukikurage/warbler/internal/utils"
)

// UserHandler serves user pages, the follow graph and account management.
type UserHandler struct {
	userService   *services.UserService
	followService *services.FollowService
	likeService   *services.LikeService
	feedService   *services.FeedService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, followService *services.FollowService, likeService *services.LikeService, feedService *services.FeedService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		followService: followService,
		likeService:   likeService,
		feedService:   feedService,
	}
}

// ListUsers lists users, optionally filtered by ?q=
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{Users: dto.ToPublicUserDTOs(users)})
}

// GetProfile shows a user with counters and latest messages
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	ctx := c.Request.Context()
	profile, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	messages, err := h.feedService.MessagesOf(ctx, userID, utils.GetLimitParam(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := dto.ToProfileDTO(profile, messages)
	if viewer := middleware.CurrentUser(c); viewer != nil && viewer.ID != userID {
		following, err := h.followService.IsFollowing(ctx, viewer.ID, userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		response.IsFollowing = &following
	}

	c.JSON(http.StatusOK, response)
}

// Following lists the users someone follows
func (h *UserHandler) Following(c *gin.Context) {
	userID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	users, err := h.followService.Following(c.Request.Context(), middleware.CurrentUser(c), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{Users: dto.ToPublicUserDTOs(users)})
}

// Followers lists the users following someone
func (h *UserHandler) Followers(c *gin.Context) {
	userID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	users, err := h.followService.Followers(c.Request.Context(), middleware.CurrentUser(c), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{Users: dto.ToPublicUserDTOs(users)})
}

// Likes lists the messages someone liked
func (h *UserHandler) Likes(c *gin.Context) {
	userID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	messages, err := h.likeService.LikesOf(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageListResponse{Messages: dto.ToMessageDTOs(messages)})
}

// Follow makes the current user follow :id
func (h *UserHandler) Follow(c *gin.Context) {
	followeeID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	actor := middleware.CurrentUser(c)
	if err := h.followService.Follow(c.Request.Context(), actor, followeeID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NoticeResponse{
		Notice:   dto.Success("Followed user."),
		Redirect: fmt.Sprintf("/users/%d/following", actor.ID),
	})
}

// StopFollowing makes the current user unfollow :id
func (h *UserHandler) StopFollowing(c *gin.Context) {
	followeeID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	actor := middleware.CurrentUser(c)
	if err := h.followService.Unfollow(c.Request.Context(), actor, followeeID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NoticeResponse{
		Notice:   dto.Success("Stopped following user."),
		Redirect: fmt.Sprintf("/users/%d/following", actor.ID),
	})
}

// UpdateProfile edits the current user's profile after a password check
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	type UpdateProfileRequest struct {
		Username       *string `json:"username"`
		Email          *string `json:"email"`
		ImageURL       *string `json:"image_url"`
		HeaderImageURL *string `json:"header_image_url"`
		Bio            *string `json:"bio"`
		Location       *string `json:"location"`
		Password       string  `json:"password" binding:"required"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), services.UpdateProfileInput{
		Username:       req.Username,
		Email:          req.Email,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
		Bio:            req.Bio,
		Location:       req.Location,
	}, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccountResponse{
		User:     dto.ToUserDTO(*user),
		Notice:   dto.Success("Profile updated."),
		Redirect: fmt.Sprintf("/users/%d", user.ID),
	})
}

// DeleteAccount removes the current user and signs them out
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.userService.DeleteAccount(c.Request.Context(), middleware.CurrentUser(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := middleware.Logout(c); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, dto.NoticeResponse{
		Notice:   dto.Success("Account deleted."),
		Redirect: "/signup",
	})
}
