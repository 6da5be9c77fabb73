// Package httputil provides shared HTTP response helpers.
package httputil

import "github.com/gin-gonic/gin"

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// RespondError writes a standardized JSON error response and aborts the
// request. The request ID comes from the gin context when the request ID
// middleware has set one.
func RespondError(c *gin.Context, status int, code, message string) {
	body := errorBody{Code: code, Message: message}

	if rid, exists := c.Get("request_id"); exists {
		body.RequestID, _ = rid.(string)
	}

	c.AbortWithStatusJSON(status, body)
}
