package response

import "github.com/gin-gonic/gin"

// ErrorBody is the JSON shape for every failed request. Success shapes are
// endpoint-specific and written by the handlers directly; only failures share
// a common envelope.
type ErrorBody struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Error(c *gin.Context, status int, msg string, details any) {
	c.JSON(status, ErrorBody{Message: msg, Details: details})
}

// AbortError is for middleware: it writes the error body and stops the
// handler chain so no privileged code runs after a rejection.
func AbortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Message: msg})
}
