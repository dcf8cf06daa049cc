package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"auction-backend/internal/auctionerrors"
	"auction-backend/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized envelope for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	utils.JSONError(c, http.StatusBadRequest, err.Error(), "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, auctionerrors.ErrForbidden):
		return http.StatusForbidden, "you do not have permission to perform this action"
	case errors.Is(err, auctionerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, auctionerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid username or password"
	case errors.Is(err, auctionerrors.ErrTokenInvalid), errors.Is(err, auctionerrors.ErrTokenRevoked):
		return http.StatusUnauthorized, "token is invalid or expired"
	case errors.Is(err, auctionerrors.ErrAuctionHasBids):
		return http.StatusBadRequest, "auction with bids cannot be cancelled"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError converts a service error into the failure envelope. Field
// validation errors keep their field map; unexpected errors are logged in
// full and reported with a generic message only.
func RespondError(c *gin.Context, handlerName string, err error) {
	if ve, ok := auctionerrors.AsValidationError(err); ok {
		utils.JSONError(c, http.StatusBadRequest, ve.Fields, "validation failed")
		utils.Warn(handlerName+": validation failed", map[string]any{"fields": ve.Fields})
		return
	}

	status, message := MapErrorToHTTP(err)
	if status == http.StatusInternalServerError {
		utils.JSONError(c, status, message, message)
		utils.Error(handlerName+": unexpected error", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONError(c, status, err.Error(), message)
	utils.Warn(handlerName+": request failed", map[string]any{"status": status, "error": err.Error()})
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// CurrentUserID returns the authenticated caller id set by the auth middleware
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// ParseIDParam parses the :id path segment
func ParseIDParam(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q: %w", raw, auctionerrors.ErrNotFound)
	}
	return uint(id), nil
}

// PageLinks builds the pagination meta block. Next and previous are the
// request URL with an adjusted page parameter, null at the edges.
func PageLinks(c *gin.Context, page, pageSize int, total int64) utils.PageMeta {
	meta := utils.PageMeta{Count: total}

	if int64(page)*int64(pageSize) < total {
		next := pageURL(c, page+1)
		meta.Next = &next
	}
	if page > 1 {
		prev := pageURL(c, page-1)
		meta.Previous = &prev
	}
	return meta
}

func pageURL(c *gin.Context, page int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, u.RequestURI())
}
