package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bibleplan/tracker/internal/dates"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context
}

// SuccessResponse is a standard success response.
type SuccessResponse struct {
	Message string `json:"message"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error
// response. The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// --- Parameter Parsing ---

// parseDateParam extracts and validates a YYYY-MM-DD date from URL
// parameters. Responds with a 400 error and returns false on bad input.
func parseDateParam(c *gin.Context, paramName string) (string, bool) {
	key := c.Param(paramName)
	if _, err := dates.Parse(key); err != nil {
		respondBadRequest(c, "invalid "+paramName+": expected YYYY-MM-DD")
		return "", false
	}
	return key, true
}

// parseIntParam extracts and validates an integer from URL parameters.
// Responds with a 400 error and returns false on bad input.
func parseIntParam(c *gin.Context, paramName string) (int, bool) {
	raw := c.Param(paramName)
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return n, true
}
