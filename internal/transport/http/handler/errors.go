package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/friendlist/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer  = "Internal server error"
	errInvalidBody     = "Invalid request body"
	errRouteNotFound   = "Route not found"
	msgUserCreated     = "User created successfully"
	msgLoginSuccessful = "Login successful"
	msgFriendDeleted   = "Friend deleted successfully"
)

type errorResponse struct {
	err     error
	status  int
	message string
}

// Checked in order; the first match wins.
var errorResponses = []errorResponse{
	{domain.ErrMissingRegistrationFields, http.StatusBadRequest, "Name, email, and password are required"},
	{domain.ErrPasswordTooShort, http.StatusBadRequest, "Password must be at least 6 characters long"},
	{domain.ErrPasswordTooLong, http.StatusBadRequest, "Password must be at most 72 bytes long"},
	{domain.ErrEmailTaken, http.StatusBadRequest, "User already exists with this email"},
	{domain.ErrNulCharacter, http.StatusBadRequest, "Fields must not contain NUL characters"},
	{domain.ErrMissingCredentials, http.StatusBadRequest, "Email and password are required"},
	{domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
	{domain.ErrTokenMissing, http.StatusUnauthorized, "Access token required"},
	{domain.ErrTokenInvalid, http.StatusForbidden, "Invalid or expired token"},
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrMissingFriendFields, http.StatusBadRequest, "Name and email are required"},
	{domain.ErrFriendEmailTaken, http.StatusBadRequest, "Friend with this email already exists"},
	{domain.ErrFriendEmailConflict, http.StatusBadRequest, "Another friend with this email already exists"},
	{domain.ErrFriendNotFound, http.StatusNotFound, "Friend not found"},
}

// respondError writes the public response for a domain error. Anything else
// is logged and hidden behind a 500.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	for _, r := range errorResponses {
		if errors.Is(err, r.err) {
			c.JSON(r.status, gin.H{"error": r.message})
			return
		}
	}
	logger.ErrorContext(c.Request.Context(), op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
}

// bindJSON decodes the request body into dst. An empty body leaves dst at its
// zero value so the usecase reports which fields are missing.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return false
	}
	return true
}

// NotFound answers every unmatched route.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": errRouteNotFound})
}
