package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse is the JSON shape of every error reply
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// stringPtr creates a pointer to a string
func stringPtr(s string) *string {
	return &s
}

const sessionCookie = "swasthmate_session"

// sessionID returns the caller's session identifier, minting one on first
// contact and setting it as a cookie
func sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	if id := c.GetHeader("X-Session-ID"); id != "" {
		return id
	}

	id := uuid.New().String()
	c.SetCookie(sessionCookie, id, 3600, "/", "", false, true)
	return id
}
