package services

import (
	"context"

	"github.com/yungbote/devroster-backend/internal/realtime"
)

var sseEventByType = map[ChangeEventType]realtime.SSEEvent{
	EventDeveloperCreated: realtime.SSEEventDeveloperCreated,
	EventDeveloperUpdated: realtime.SSEEventDeveloperUpdated,
	EventDeveloperRemoved: realtime.SSEEventDeveloperRemoved,
	EventDraftChanged:     realtime.SSEEventDraftChanged,
}

// NewDeveloperNotifier returns a listener that forwards registry changes to
// the developers SSE channel.
func NewDeveloperNotifier(emit SSEEmitter) ChangeListener {
	return func(ctx context.Context, ev ChangeEvent) {
		if emit == nil {
			return
		}
		event, ok := sseEventByType[ev.Type]
		if !ok {
			return
		}
		emit.Emit(context.WithoutCancel(ctx), realtime.SSEMessage{
			Channel: realtime.ChannelDevelopers,
			Event:   event,
			Data:    ev,
		})
	}
}
