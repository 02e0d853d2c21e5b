package services

import (
	"context"
	"testing"
	"time"

	types "github.com/yungbote/devroster-backend/internal/domain"
	"github.com/yungbote/devroster-backend/internal/platform/logger"
	"github.com/yungbote/devroster-backend/internal/realtime"
)

func TestDeveloperNotifierForwardsToHub(t *testing.T) {
	ctx := context.Background()
	hub := realtime.NewSSEHub(logger.NewNop())
	client := hub.NewSSEClient()
	hub.AddChannel(client, realtime.ChannelDevelopers)
	defer hub.CloseClient(client)

	svc := newTestRegistry(t)
	svc.Subscribe(NewDeveloperNotifier(&HubEmitter{Hub: hub}))

	if _, err := svc.SaveOrCreate(ctx, types.Developer{Name: "Ada"}); err != nil {
		t.Fatalf("SaveOrCreate: %v", err)
	}

	want := []realtime.SSEEvent{realtime.SSEEventDeveloperCreated, realtime.SSEEventDraftChanged}
	for _, ev := range want {
		select {
		case msg := <-client.Outbound:
			if msg.Event != ev {
				t.Fatalf("event: want=%s got=%s", ev, msg.Event)
			}
			if msg.Channel != realtime.ChannelDevelopers {
				t.Fatalf("channel: %q", msg.Channel)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", ev)
		}
	}
}

type recordingEmitter struct{ msgs []realtime.SSEMessage }

func (e *recordingEmitter) Emit(_ context.Context, msg realtime.SSEMessage) {
	e.msgs = append(e.msgs, msg)
}

func TestDeveloperNotifierPayload(t *testing.T) {
	em := &recordingEmitter{}
	notify := NewDeveloperNotifier(em)

	dev := types.Developer{ID: "1", Name: "Ada"}
	notify(context.Background(), ChangeEvent{Type: EventDeveloperUpdated, DeveloperID: "1", Developer: &dev})
	notify(context.Background(), ChangeEvent{Type: "unknown"})

	if len(em.msgs) != 1 {
		t.Fatalf("messages: want=1 got=%d", len(em.msgs))
	}
	ev, ok := em.msgs[0].Data.(ChangeEvent)
	if !ok || ev.DeveloperID != "1" || ev.Developer.Name != "Ada" {
		t.Fatalf("payload: %+v", em.msgs[0].Data)
	}
	if em.msgs[0].Event != realtime.SSEEventDeveloperUpdated {
		t.Fatalf("event: %s", em.msgs[0].Event)
	}
}
