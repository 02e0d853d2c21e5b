package services

import (
	"context"
	"sync"
	"time"

	types "github.com/yungbote/devroster-backend/internal/domain"
	"github.com/yungbote/devroster-backend/internal/platform/ctxutil"
)

type ChangeEventType string

const (
	EventDeveloperCreated ChangeEventType = "developer.created"
	EventDeveloperUpdated ChangeEventType = "developer.updated"
	EventDeveloperRemoved ChangeEventType = "developer.removed"
	EventDraftChanged     ChangeEventType = "draft.changed"
)

// ChangeEvent is published after every successful registry mutation.
type ChangeEvent struct {
	Type        ChangeEventType  `json:"type"`
	DeveloperID string           `json:"developerId,omitempty"`
	Developer   *types.Developer `json:"developer,omitempty"`
	Editor      *Editor          `json:"editor,omitempty"`
	RequestID   string           `json:"requestId,omitempty"`
	At          time.Time        `json:"at"`
}

type ChangeListener func(ctx context.Context, ev ChangeEvent)

type subscriberList struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]ChangeListener
}

func (l *subscriberList) add(fn ChangeListener) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.subs == nil {
		l.subs = make(map[int]ChangeListener)
	}
	id := l.nextID
	l.nextID++
	l.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
		})
	}
}

func (l *subscriberList) snapshot() []ChangeListener {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]ChangeListener, 0, len(l.subs))
	for id := 0; id < l.nextID; id++ {
		if fn, ok := l.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func newChangeEvent(ctx context.Context, typ ChangeEventType) ChangeEvent {
	return ChangeEvent{
		Type:      typ,
		RequestID: ctxutil.RequestID(ctx),
		At:        time.Now().UTC(),
	}
}
