package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finledger/internal/errors"
	"finledger/internal/middleware"
	"finledger/internal/models"
	"finledger/internal/services"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// getUsername extracts the authenticated username from the Gin context.
// Returns ErrUnauthorized if not present.
func getUsername(c *gin.Context) (string, error) {
	username := c.GetString(middleware.UsernameKey)
	if username == "" {
		return "", apperrors.ErrUnauthorized
	}
	return username, nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// parseDate accepts YYYY-MM-DD or RFC3339 and keeps only the calendar day.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return models.DateOnly(t), nil
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date "+strconv.Quote(s)+", expected YYYY-MM-DD")
}

// parseOptionalDate returns the zero time for a missing or empty value.
func parseOptionalDate(s *string) (time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return time.Time{}, nil
	}
	return parseDate(*s)
}

// parseTransactionFilter reads the shared list/export query parameters.
func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	filter := services.TransactionFilter{
		Month:    strings.TrimSpace(c.Query("month")),
		Category: strings.TrimSpace(c.Query("category")),
		Card:     strings.TrimSpace(c.Query("card")),
	}

	if v := c.Query("type"); v != "" {
		txType, ok := models.ParseTransactionType(v)
		if !ok {
			return filter, apperrors.ErrInvalidTransactionType
		}
		filter.Type = &txType
	}
	if filter.Month != "" {
		parsed, err := models.ParseMonthLabel(filter.Month)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		filter.Month = models.MonthLabel(parsed)
	}
	if v := c.Query("from_date"); v != "" {
		from, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.FromDate = &from
	}
	if v := c.Query("to_date"); v != "" {
		to, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.ToDate = &to
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "from_date must not be after to_date")
	}
	return filter, nil
}

// respondWithError writes a consistent JSON error response. AppErrors keep
// their status, code and message; anything else is logged and reported as a
// generic internal error.
func respondWithError(c *gin.Context, err error) {
	appErr := middleware.ResolveError(c, err)
	c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
}

// bindError converts a binding failure into an INVALID_INPUT response body.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}
