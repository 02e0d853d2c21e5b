package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	devrepo "github.com/yungbote/devroster-backend/internal/data/repos/developer"
	types "github.com/yungbote/devroster-backend/internal/domain"
	"github.com/yungbote/devroster-backend/internal/observability"
	apperrors "github.com/yungbote/devroster-backend/internal/pkg/errors"
	"github.com/yungbote/devroster-backend/internal/platform/logger"
)

// DeveloperService is the developer registry: the ordered developer list plus
// the single draft behind the add/edit form. Every operation is all-or-nothing.
type DeveloperService interface {
	List(ctx context.Context) ([]types.Developer, error)
	Get(ctx context.Context, id string) (types.Developer, error)
	StageForEdit(ctx context.Context, id string) (types.Developer, error)
	SaveOrCreate(ctx context.Context, draft types.Developer) (types.Developer, error)
	SaveDraft(ctx context.Context) (types.Developer, error)
	Remove(ctx context.Context, id string) error

	Editor(ctx context.Context) Editor
	OpenNewDraft(ctx context.Context) Editor
	UpdateDraft(ctx context.Context, patch DraftPatch) Editor
	AddFrameworkToDraft(ctx context.Context, name string) Editor
	RemoveFrameworkFromDraft(ctx context.Context, index int) (Editor, error)
	ClearDraft(ctx context.Context) Editor

	// Subscribe registers fn for change events and returns its cancel func.
	Subscribe(fn ChangeListener) func()
}

type DeveloperServiceOption func(*developerService)

// WithIDGenerator replaces the UUID generator used for new developers.
func WithIDGenerator(fn func() string) DeveloperServiceOption {
	return func(s *developerService) {
		if fn != nil {
			s.newID = fn
		}
	}
}

type developerService struct {
	log   *logger.Logger
	repo  devrepo.DeveloperRepo
	newID func() string

	// mu serialises every operation; the draft and the check-then-write
	// sequences of SaveOrCreate live under it.
	mu         sync.Mutex
	draft      types.Developer
	editorOpen bool

	subs subscriberList
}

// NewDeveloperService builds the registry over repo and loads seed into it in
// order. Seed entries without an id get a generated one; duplicate ids or
// names and empty names are rejected.
func NewDeveloperService(ctx context.Context, log *logger.Logger, repo devrepo.DeveloperRepo, seed []types.Developer, opts ...DeveloperServiceOption) (DeveloperService, error) {
	if repo == nil {
		return nil, fmt.Errorf("developer repo required")
	}
	s := &developerService{
		log:   log.With("service", "DeveloperService"),
		repo:  repo,
		newID: uuid.NewString,
		draft: types.Developer{Frameworks: []types.Framework{}},
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(ctx, seed); err != nil {
		return nil, err
	}
	if n, err := repo.Count(ctx); err == nil {
		observability.Current().SetRegistrySize(n)
		s.log.Info("Developer registry ready", "developers", n)
	}
	return s, nil
}

func (s *developerService) load(ctx context.Context, seed []types.Developer) error {
	for i, dev := range seed {
		if strings.TrimSpace(dev.Name) == "" {
			return fmt.Errorf("seed developer #%d: %w", i, &ValidationError{Field: "name", Reason: "required"})
		}
		if dev.ID == "" {
			dev.ID = s.newID()
		}
		if _, found, err := s.repo.GetByID(ctx, dev.ID); err != nil {
			return fmt.Errorf("seed developer #%d: %w", i, err)
		} else if found {
			return fmt.Errorf("seed developer #%d: %w: duplicate id %s", i, apperrors.ErrInvalidArgument, dev.ID)
		}
		if _, found, err := s.repo.GetByName(ctx, dev.Name); err != nil {
			return fmt.Errorf("seed developer #%d: %w", i, err)
		} else if found {
			return fmt.Errorf("seed developer #%d: %w", i, &DuplicateNameError{Name: dev.Name})
		}
		if err := s.repo.Insert(ctx, dev.Clone()); err != nil {
			return fmt.Errorf("seed developer #%d: %w", i, err)
		}
	}
	return nil
}

func (s *developerService) List(ctx context.Context) ([]types.Developer, error) {
	ctx, span := startSpan(ctx, "DeveloperService.List")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.fail(span, "list", err)
	}
	return list, nil
}

func (s *developerService) Get(ctx context.Context, id string) (types.Developer, error) {
	ctx, span := startSpan(ctx, "DeveloperService.Get", attribute.String("developer.id", id))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	dev, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.Developer{}, s.fail(span, "get", err)
	}
	if !found {
		return types.Developer{}, s.fail(span, "get", &NotFoundError{ID: id})
	}
	return dev, nil
}

// StageForEdit copies the developer into the draft and opens the editing
// session. The returned value is a copy; edits go through the draft operations.
func (s *developerService) StageForEdit(ctx context.Context, id string) (types.Developer, error) {
	ctx, span := startSpan(ctx, "DeveloperService.StageForEdit", attribute.String("developer.id", id))
	defer span.End()

	s.mu.Lock()
	dev, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return types.Developer{}, s.fail(span, "stage_for_edit", err)
	}
	if !found {
		s.mu.Unlock()
		return types.Developer{}, s.fail(span, "stage_for_edit", &NotFoundError{ID: id})
	}
	s.draft = dev.Clone()
	s.editorOpen = true
	editor := s.editorLocked()
	s.mu.Unlock()

	observability.Current().ObserveRegistryOp("stage_for_edit", "ok")
	s.publishDraft(ctx, editor)
	return dev.Clone(), nil
}

// SaveOrCreate reconciles draft into the registry: replace by id, reject a
// new draft whose name is taken, otherwise append under a fresh id. On success
// the draft resets and the editing session closes.
func (s *developerService) SaveOrCreate(ctx context.Context, draft types.Developer) (types.Developer, error) {
	ctx, span := startSpan(ctx, "DeveloperService.SaveOrCreate", attribute.String("developer.id", draft.ID))
	defer span.End()

	s.mu.Lock()
	saved, ev, editor, err := s.commitLocked(ctx, draft)
	s.mu.Unlock()
	if err != nil {
		return types.Developer{}, s.fail(span, "save", err)
	}
	s.afterCommit(ctx, saved, ev, editor)
	return saved, nil
}

// SaveDraft submits the current draft.
func (s *developerService) SaveDraft(ctx context.Context) (types.Developer, error) {
	ctx, span := startSpan(ctx, "DeveloperService.SaveDraft")
	defer span.End()

	s.mu.Lock()
	saved, ev, editor, err := s.commitLocked(ctx, s.draft.Clone())
	s.mu.Unlock()
	if err != nil {
		return types.Developer{}, s.fail(span, "save", err)
	}
	s.afterCommit(ctx, saved, ev, editor)
	return saved, nil
}

func (s *developerService) commitLocked(ctx context.Context, draft types.Developer) (types.Developer, ChangeEventType, Editor, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return types.Developer{}, "", Editor{}, &ValidationError{Field: "name", Reason: "required"}
	}

	if draft.ID != "" {
		_, found, err := s.repo.GetByID(ctx, draft.ID)
		if err != nil {
			return types.Developer{}, "", Editor{}, err
		}
		if found {
			holder, taken, err := s.repo.GetByName(ctx, draft.Name)
			if err != nil {
				return types.Developer{}, "", Editor{}, err
			}
			if taken && holder.ID != draft.ID {
				return types.Developer{}, "", Editor{}, &DuplicateNameError{Name: draft.Name}
			}
			updated := draft.Clone()
			if err := s.repo.Replace(ctx, updated); err != nil {
				return types.Developer{}, "", Editor{}, err
			}
			s.resetDraftLocked()
			return updated.Clone(), EventDeveloperUpdated, s.editorLocked(), nil
		}
	}

	if _, taken, err := s.repo.GetByName(ctx, draft.Name); err != nil {
		return types.Developer{}, "", Editor{}, err
	} else if taken {
		return types.Developer{}, "", Editor{}, &DuplicateNameError{Name: draft.Name}
	}

	id, err := s.freshIDLocked(ctx)
	if err != nil {
		return types.Developer{}, "", Editor{}, err
	}
	// Frameworks are copied as given; dedup only happens in AddFrameworkToDraft.
	created := types.Developer{
		ID:         id,
		Name:       draft.Name,
		IsJunior:   draft.IsJunior,
		Frameworks: draft.Clone().Frameworks,
	}
	if err := s.repo.Insert(ctx, created); err != nil {
		return types.Developer{}, "", Editor{}, err
	}
	s.resetDraftLocked()
	return created.Clone(), EventDeveloperCreated, s.editorLocked(), nil
}

func (s *developerService) freshIDLocked(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 8; attempt++ {
		id := s.newID()
		if id == "" {
			continue
		}
		_, exists, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique developer id")
}

func (s *developerService) afterCommit(ctx context.Context, saved types.Developer, typ ChangeEventType, editor Editor) {
	observability.Current().ObserveRegistryOp("save", "ok")
	s.refreshSizeGauge(ctx)
	s.log.Info("Developer saved", "developer_id", saved.ID, "event", string(typ))

	ev := newChangeEvent(ctx, typ)
	ev.DeveloperID = saved.ID
	dev := saved.Clone()
	ev.Developer = &dev
	s.publish(ctx, ev)
	s.publishDraft(ctx, editor)
}

func (s *developerService) Remove(ctx context.Context, id string) error {
	ctx, span := startSpan(ctx, "DeveloperService.Remove", attribute.String("developer.id", id))
	defer span.End()

	s.mu.Lock()
	err := s.repo.Delete(ctx, id)
	s.mu.Unlock()
	if errors.Is(err, apperrors.ErrNotFound) {
		err = &NotFoundError{ID: id}
	}
	if err != nil {
		return s.fail(span, "remove", err)
	}

	observability.Current().ObserveRegistryOp("remove", "ok")
	s.refreshSizeGauge(ctx)
	s.log.Info("Developer removed", "developer_id", id)

	ev := newChangeEvent(ctx, EventDeveloperRemoved)
	ev.DeveloperID = id
	s.publish(ctx, ev)
	return nil
}

func (s *developerService) Subscribe(fn ChangeListener) func() {
	if fn == nil {
		return func() {}
	}
	return s.subs.add(fn)
}

func (s *developerService) publish(ctx context.Context, ev ChangeEvent) {
	for _, fn := range s.subs.snapshot() {
		s.notify(ctx, fn, ev)
	}
}

func (s *developerService) notify(ctx context.Context, fn ChangeListener, ev ChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Change listener panicked", "event", string(ev.Type), "panic", r)
		}
	}()
	fn(ctx, ev)
}

func (s *developerService) publishDraft(ctx context.Context, editor Editor) {
	ev := newChangeEvent(ctx, EventDraftChanged)
	ev.Editor = &editor
	s.publish(ctx, ev)
}

func (s *developerService) refreshSizeGauge(ctx context.Context) {
	m := observability.Current()
	if m == nil {
		return
	}
	if n, err := s.repo.Count(ctx); err == nil {
		m.SetRegistrySize(n)
	}
}

// fail records err on the span, metrics and log and returns it unchanged.
// Expected conditions log at warn; anything else is an error.
func (s *developerService) fail(span trace.Span, op string, err error) error {
	code := errorCode(err)
	observability.Current().ObserveRegistryOp(op, code)
	span.RecordError(err)
	if code == "internal" {
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("Developer registry operation failed", "op", op, "error", err)
	} else {
		s.log.Warn("Developer registry operation rejected", "op", op, "code", code, "error", err)
	}
	return err
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return observability.Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}
