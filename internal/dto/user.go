package dto

import (
	"time"

	"github.com/yukikurage/warbler/internal/models"
	"github.com/yukikurage/warbler/internal/services"
)

// UserDTO represents the signed-in user's own account
type UserDTO struct {
	ID             uint64    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ImageURL       string    `json:"image_url"`
	HeaderImageURL string    `json:"header_image_url"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
}

// PublicUserDTO represents another user; the email address is never exposed
type PublicUserDTO struct {
	ID             uint64 `json:"id"`
	Username       string `json:"username"`
	ImageURL       string `json:"image_url"`
	HeaderImageURL string `json:"header_image_url,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Location       string `json:"location,omitempty"`
}

// ProfileStatsDTO holds profile counters
type ProfileStatsDTO struct {
	Messages  int64 `json:"messages"`
	Following int64 `json:"following"`
	Followers int64 `json:"followers"`
	Likes     int64 `json:"likes"`
}

// ProfileDTO is a user page: the user, counters and latest messages
type ProfileDTO struct {
	User     PublicUserDTO   `json:"user"`
	Stats    ProfileStatsDTO `json:"stats"`
	Messages []MessageDTO    `json:"messages"`
	// IsFollowing is only set when a user is signed in
	IsFollowing *bool `json:"is_following,omitempty"`
}

// UserListResponse wraps a list of users
type UserListResponse struct {
	Users []PublicUserDTO `json:"users"`
}

// AccountResponse is returned by signup, login and profile updates
type AccountResponse struct {
	User     UserDTO `json:"user"`
	Notice   Notice  `json:"notice"`
	Redirect string  `json:"redirect,omitempty"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		ImageURL:       user.ImageURL,
		HeaderImageURL: user.HeaderImageURL,
		Bio:            user.Bio,
		Location:       user.Location,
		CreatedAt:      user.CreatedAt,
	}
}

// ToPublicUserDTO converts a User model to PublicUserDTO
func ToPublicUserDTO(user models.User) PublicUserDTO {
	return PublicUserDTO{
		ID:             user.ID,
		Username:       user.Username,
		ImageURL:       user.ImageURL,
		HeaderImageURL: user.HeaderImageURL,
		Bio:            user.Bio,
		Location:       user.Location,
	}
}

// ToPublicUserDTOs converts a slice of users
func ToPublicUserDTOs(users []models.User) []PublicUserDTO {
	result := make([]PublicUserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, ToPublicUserDTO(u))
	}
	return result
}

// ToProfileDTO converts a profile and its messages
func ToProfileDTO(profile *services.Profile, messages []models.Message) ProfileDTO {
	return ProfileDTO{
		User: ToPublicUserDTO(*profile.User),
		Stats: ProfileStatsDTO{
			Messages:  profile.Stats.Messages,
			Following: profile.Stats.Following,
			Followers: profile.Stats.Followers,
			Likes:     profile.Stats.Likes,
		},
		Messages: ToMessageDTOs(messages),
	}
}
