package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
)

// ErrorHandler writes the last error attached with c.Error as a JSON error
// body, unless a handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		abortWithError(c, ResolveError(c, c.Errors.Last().Err))
	}
}

// ResolveError maps err to the AppError sent to the client and logs whatever
// the client will not see: the wrapped cause of an AppError, or the whole of
// any other error, which becomes INTERNAL_ERROR.
func ResolveError(c *gin.Context, err error) *apperrors.AppError {
	log := logger.Named("http").With(
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", c.GetString(RequestIDKey),
	)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			log.Errorw("app error", "code", appErr.Code, "internal", appErr.Internal.Error())
		}
		return appErr
	}

	log.Errorw("unexpected error", "error", err.Error())
	return apperrors.ErrInternalServer
}
