package realtime

import (
	"github.com/google/uuid"

	"github.com/yungbote/devroster-backend/internal/platform/logger"
)

// SSEClient is one open event stream. Channels and closed are guarded by the
// owning hub's lock.
type SSEClient struct {
	ID       uuid.UUID
	Channels map[string]bool
	Outbound chan SSEMessage
	Logger   *logger.Logger

	done   chan struct{}
	closed bool
}

func newSSEClient(log *logger.Logger) *SSEClient {
	id := uuid.New()
	return &SSEClient{
		ID:       id,
		Channels: make(map[string]bool),
		Outbound: make(chan SSEMessage, outboundBuffer),
		Logger:   log.With("clientID", id.String()),
		done:     make(chan struct{}),
	}
}

// Done is closed once the hub has dropped the client.
func (c *SSEClient) Done() <-chan struct{} { return c.done }
