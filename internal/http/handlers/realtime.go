package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/devroster-backend/internal/platform/ctxutil"
	"github.com/yungbote/devroster-backend/internal/platform/logger"
	"github.com/yungbote/devroster-backend/internal/realtime"
)

type RealtimeHandler struct {
	Log *logger.Logger
	Hub *realtime.SSEHub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{
		Log: log.With("handler", "RealtimeHandler"),
		Hub: hub,
	}
}

// GET /api/sse/stream
func (h *RealtimeHandler) SSEStream(c *gin.Context) {
	client := h.Hub.NewSSEClient()
	h.Hub.AddChannel(client, realtime.ChannelDevelopers)
	h.Log.Info("SSEStream open", "client_id", client.ID.String(), "request_id", ctxutil.RequestID(c.Request.Context()))

	h.Hub.ServeHTTP(c.Writer, c.Request, client)

	h.Hub.CloseClient(client)
	h.Log.Info("SSEStream closed", "client_id", client.ID.String())
}
