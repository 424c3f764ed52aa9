package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/whiteheadbella/vet-management/services/common/apperrors"
	"go.uber.org/zap"
)

// Recovery catches panics from handlers, logs them, and answers with a
// generic 500 JSON body instead of tearing down the connection.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(apperrors.ErrInternalServer.Code, apperrors.ErrInternalServer)
			}
		}()
		c.Next()
	}
}
