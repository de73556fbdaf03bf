package dto

import "github.com/yukikurage/warbler/internal/constants"

// Notice is a one-shot message for the user (a flash)
type Notice struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// NoticeResponse is returned by mutations that have nothing else to report
type NoticeResponse struct {
	Notice   Notice `json:"notice"`
	Redirect string `json:"redirect,omitempty"`
}

// NoticeListResponse holds pending flashes
type NoticeListResponse struct {
	Notices []Notice `json:"notices"`
}

// Success builds a success notice
func Success(message string) Notice {
	return Notice{Category: constants.NoticeSuccess, Message: message}
}

// Danger builds a danger notice
func Danger(message string) Notice {
	return Notice{Category: constants.NoticeDanger, Message: message}
}
