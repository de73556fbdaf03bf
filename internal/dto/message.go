package dto

import (
	"time"

	"github.com/yukikurage/warbler/internal/models"
	"github.com/yukikurage/warbler/internal/services"
)

// AuthorDTO is the compact user shown next to a message
type AuthorDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	ImageURL string `json:"image_url"`
}

// MessageDTO represents a message in API responses
type MessageDTO struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	UserID    uint64    `json:"user_id"`
	User      AuthorDTO `json:"user"`
}

// MessageListResponse wraps a list of messages
type MessageListResponse struct {
	Messages []MessageDTO `json:"messages"`
}

// TimelineResponse is the home feed
type TimelineResponse struct {
	Anonymous bool         `json:"anonymous"`
	Messages  []MessageDTO `json:"messages"`
}

// MessageCreatedResponse is returned after posting
type MessageCreatedResponse struct {
	Message  MessageDTO `json:"message"`
	Notice   Notice     `json:"notice"`
	Redirect string     `json:"redirect"`
}

// LikeResponse is returned after toggling a like
type LikeResponse struct {
	Result   services.LikeResult `json:"result"`
	Notice   Notice              `json:"notice"`
	Redirect string              `json:"redirect"`
}

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(message models.Message) MessageDTO {
	return MessageDTO{
		ID:        message.ID,
		Text:      message.Text,
		Timestamp: message.Timestamp,
		UserID:    message.UserID,
		User: AuthorDTO{
			ID:       message.User.ID,
			Username: message.User.Username,
			ImageURL: message.User.ImageURL,
		},
	}
}

// ToMessageDTOs converts a slice of messages
func ToMessageDTOs(messages []models.Message) []MessageDTO {
	result := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		result = append(result, ToMessageDTO(m))
	}
	return result
}

// ToTimelineResponse converts a timeline
func ToTimelineResponse(timeline *services.Timeline) TimelineResponse {
	return TimelineResponse{
		Anonymous: timeline.Anonymous,
		Messages:  ToMessageDTOs(timeline.Messages),
	}
}
