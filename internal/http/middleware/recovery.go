package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/devroster-backend/internal/http/response"
	"github.com/yungbote/devroster-backend/internal/platform/ctxutil"
	"github.com/yungbote/devroster-backend/internal/platform/logger"
)

// Recovery turns a handler panic into the standard 500 error envelope.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if log != nil {
			log.Error("HTTP handler panic",
				"path", c.Request.URL.Path,
				"request_id", ctxutil.RequestID(c.Request.Context()),
				"panic", fmt.Sprint(recovered),
			)
		}
		response.RespondError(c, http.StatusInternalServerError, "internal", fmt.Errorf("internal server error"))
		c.Abort()
	})
}
