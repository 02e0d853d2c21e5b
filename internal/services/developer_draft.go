package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	types "github.com/yungbote/devroster-backend/internal/domain"
	"github.com/yungbote/devroster-backend/internal/observability"
)

type EditorMode string

const (
	EditorModeCreate EditorMode = "create"
	EditorModeEdit   EditorMode = "edit"
)

// Editor is the add/edit form state derived from the draft.
type Editor struct {
	Open        bool            `json:"open"`
	Mode        EditorMode      `json:"mode"`
	Title       string          `json:"title"`
	SubmitLabel string          `json:"submitLabel"`
	Draft       types.Developer `json:"draft"`
}

// DraftPatch sets the scalar draft fields. Nil fields are left alone.
type DraftPatch struct {
	Name     *string `json:"name"`
	IsJunior *bool   `json:"isJunior"`
}

func (s *developerService) Editor(ctx context.Context) Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editorLocked()
}

// OpenNewDraft resets the draft and opens the form in create mode.
func (s *developerService) OpenNewDraft(ctx context.Context) Editor {
	ctx, span := startSpan(ctx, "DeveloperService.OpenNewDraft")
	defer span.End()

	s.mu.Lock()
	s.resetDraftLocked()
	s.editorOpen = true
	editor := s.editorLocked()
	s.mu.Unlock()

	observability.Current().ObserveRegistryOp("open_draft", "ok")
	s.publishDraft(ctx, editor)
	return editor
}

func (s *developerService) UpdateDraft(ctx context.Context, patch DraftPatch) Editor {
	ctx, span := startSpan(ctx, "DeveloperService.UpdateDraft")
	defer span.End()

	s.mu.Lock()
	if patch.Name != nil {
		s.draft.Name = *patch.Name
	}
	if patch.IsJunior != nil {
		s.draft.IsJunior = *patch.IsJunior
	}
	editor := s.editorLocked()
	s.mu.Unlock()

	observability.Current().ObserveRegistryOp("update_draft", "ok")
	s.publishDraft(ctx, editor)
	return editor
}

// AddFrameworkToDraft appends the trimmed name unless it is blank or already
// present ignoring case. Either of those is a no-op, not an error.
func (s *developerService) AddFrameworkToDraft(ctx context.Context, name string) Editor {
	ctx, span := startSpan(ctx, "DeveloperService.AddFrameworkToDraft", attribute.String("framework.name", name))
	defer span.End()

	trimmed := strings.TrimSpace(name)

	s.mu.Lock()
	changed := false
	if trimmed != "" && !s.draft.HasFramework(trimmed) {
		s.draft.Frameworks = append(s.draft.Frameworks, types.Framework{Name: trimmed})
		changed = true
	}
	editor := s.editorLocked()
	s.mu.Unlock()

	if !changed {
		observability.Current().ObserveRegistryOp("add_framework", "noop")
		s.log.Debug("Framework not added to draft", "framework", trimmed)
		return editor
	}
	observability.Current().ObserveRegistryOp("add_framework", "ok")
	s.publishDraft(ctx, editor)
	return editor
}

func (s *developerService) RemoveFrameworkFromDraft(ctx context.Context, index int) (Editor, error) {
	ctx, span := startSpan(ctx, "DeveloperService.RemoveFrameworkFromDraft", attribute.Int("framework.index", index))
	defer span.End()

	s.mu.Lock()
	n := len(s.draft.Frameworks)
	if index < 0 || index >= n {
		editor := s.editorLocked()
		s.mu.Unlock()
		return editor, s.fail(span, "remove_framework", &IndexError{Index: index, Len: n})
	}
	next := make([]types.Framework, 0, n-1)
	next = append(next, s.draft.Frameworks[:index]...)
	next = append(next, s.draft.Frameworks[index+1:]...)
	s.draft.Frameworks = next
	editor := s.editorLocked()
	s.mu.Unlock()

	observability.Current().ObserveRegistryOp("remove_framework", "ok")
	s.publishDraft(ctx, editor)
	return editor, nil
}

// ClearDraft resets the draft to empty defaults and closes the form.
func (s *developerService) ClearDraft(ctx context.Context) Editor {
	ctx, span := startSpan(ctx, "DeveloperService.ClearDraft")
	defer span.End()

	s.mu.Lock()
	s.resetDraftLocked()
	editor := s.editorLocked()
	s.mu.Unlock()

	observability.Current().ObserveRegistryOp("clear_draft", "ok")
	s.publishDraft(ctx, editor)
	return editor
}

func (s *developerService) resetDraftLocked() {
	s.draft = types.Developer{Frameworks: []types.Framework{}}
	s.editorOpen = false
}

func (s *developerService) editorLocked() Editor {
	e := Editor{
		Open:        s.editorOpen,
		Mode:        EditorModeCreate,
		Title:       "Add New Developer",
		SubmitLabel: "Add Developer",
		Draft:       s.draft.Clone(),
	}
	if s.draft.ID != "" {
		e.Mode = EditorModeEdit
		e.Title = "Edit Developer"
		e.SubmitLabel = "Update Developer"
	}
	return e
}
