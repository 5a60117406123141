package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DevModeKey is the gin context key telling RespondError to expose error details.
const DevModeKey = "devMode"

// LoggerKey holds the request-scoped logger.
const LoggerKey = "logger"

// RequestLogger returns the request-scoped logger or the global one.
func RequestLogger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(LoggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.L()
}

// RespondOK writes a success envelope.
func RespondOK(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// RespondError writes {success:false, message, error?} plus any AppError details.
func RespondError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	logger := RequestLogger(c)

	body := gin.H{"success": false, "message": appErr.Message}
	for k, v := range appErr.Details {
		body[k] = v
	}

	if appErr.Status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		body["message"] = "Internal server error"
	} else {
		logger.Debug("Request rejected", zap.String("kind", string(appErr.Kind)), zap.String("message", appErr.Message))
	}

	if c.GetBool(DevModeKey) && appErr.Err != nil {
		body["error"] = appErr.Err.Error()
	}
	c.AbortWithStatusJSON(appErr.Status, body)
}
