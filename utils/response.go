package utils

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform shape of every API response. No key is ever
// omitted: success responses carry errors=null, failures carry data=null.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Errors  any    `json:"errors"`
	Meta    any    `json:"meta,omitempty"`
}

// PageMeta is the pagination block attached to list responses
type PageMeta struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// JSONSuccess sends a success envelope
func JSONSuccess(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
		Errors:  nil,
	})
}

// JSONSuccessPage sends a success envelope with pagination metadata
func JSONSuccessPage(c *gin.Context, status int, data any, message string, meta PageMeta) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
		Errors:  nil,
		Meta:    meta,
	})
}

// JSONError sends a failure envelope. errs may be a field map or a string.
func JSONError(c *gin.Context, status int, errs any, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Message: message,
		Data:    nil,
		Errors:  errs,
	})
}
