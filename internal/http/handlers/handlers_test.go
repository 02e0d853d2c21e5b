package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	devrepo "github.com/yungbote/devroster-backend/internal/data/repos/developer"
	types "github.com/yungbote/devroster-backend/internal/domain"
	"github.com/yungbote/devroster-backend/internal/platform/logger"
	"github.com/yungbote/devroster-backend/internal/services"
)

type editorBody struct {
	Editor services.Editor `json:"editor"`
}

type developerBody struct {
	Developer types.Developer `json:"developer"`
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func newTestEngine(t *testing.T, seed ...types.Developer) (*gin.Engine, services.DeveloperService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	svc, err := services.NewDeveloperService(context.Background(), log, devrepo.NewMemoryRepo(log), seed)
	require.NoError(t, err)

	dev := NewDeveloperHandler(svc)
	draft := NewDraftHandler(svc)

	r := gin.New()
	r.GET("/healthcheck", NewHealthHandler().HealthCheck)
	api := r.Group("/api")
	api.GET("/developers", dev.List)
	api.POST("/developers", dev.Save)
	api.GET("/developers/:id", dev.Get)
	api.PUT("/developers/:id", dev.Update)
	api.DELETE("/developers/:id", dev.Remove)
	api.POST("/developers/:id/edit", dev.StageForEdit)
	api.GET("/draft", draft.Get)
	api.POST("/draft", draft.Open)
	api.PATCH("/draft", draft.Update)
	api.DELETE("/draft", draft.Clear)
	api.POST("/draft/frameworks", draft.AddFramework)
	api.DELETE("/draft/frameworks/:index", draft.RemoveFramework)
	api.POST("/draft/save", draft.Save)
	return r, svc
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestEngine(t)
	rec := doJSON(t, r, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHealthCheckReportsFailedProbe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler(
		HealthProbe{Name: "store", Check: func(context.Context) error { return nil }},
		HealthProbe{Name: "bus", Check: func(context.Context) error { return errors.New("connection refused") }},
	)
	r := gin.New()
	r.GET("/healthcheck", h.HealthCheck)

	rec := doJSON(t, r, http.MethodGet, "/healthcheck", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode[struct {
		Status string            `json:"status"`
		Failed map[string]string `json:"failed"`
	}](t, rec)
	assert.Equal(t, "unavailable", body.Status)
	assert.Equal(t, map[string]string{"bus": "connection refused"}, body.Failed)
}

func TestListDevelopers(t *testing.T) {
	r, _ := newTestEngine(t,
		types.Developer{ID: "1", Name: "Ada"},
		types.Developer{ID: "2", Name: "Bob", IsJunior: true},
	)
	rec := doJSON(t, r, http.MethodGet, "/api/developers", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Developers []types.Developer `json:"developers"`
	}](t, rec)
	require.Len(t, body.Developers, 2)
	assert.Equal(t, "Ada", body.Developers[0].Name)
	assert.True(t, body.Developers[1].IsJunior)
	assert.NotNil(t, body.Developers[0].Frameworks)
}

func TestCreateDeveloper(t *testing.T) {
	r, svc := newTestEngine(t)
	rec := doJSON(t, r, http.MethodPost, "/api/developers", map[string]any{
		"name":       "Ada",
		"isJunior":   false,
		"frameworks": []map[string]string{{"name": "Vue"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode[developerBody](t, rec)
	assert.NotEmpty(t, body.Developer.ID)
	assert.Equal(t, []string{"Vue"}, body.Developer.FrameworkNames())

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateDeveloperErrors(t *testing.T) {
	cases := []struct {
		name       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{name: "duplicate name", body: map[string]any{"name": "Bob"}, wantStatus: http.StatusConflict, wantCode: "duplicate_name"},
		{name: "empty name", body: map[string]any{"name": ""}, wantStatus: http.StatusBadRequest, wantCode: "validation_failed"},
		{name: "malformed body", body: `{"name":`, wantStatus: http.StatusBadRequest, wantCode: "invalid_request"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := newTestEngine(t, types.Developer{ID: "b", Name: "Bob"})
			rec := doJSON(t, r, http.MethodPost, "/api/developers", tc.body)
			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tc.wantCode, decode[errorBody](t, rec).Error.Code)
		})
	}
}

func TestDuplicateNameMessage(t *testing.T) {
	r, _ := newTestEngine(t, types.Developer{ID: "b", Name: "Bob"})
	rec := doJSON(t, r, http.MethodPost, "/api/developers", map[string]any{"name": "Bob"})
	assert.Equal(t, "developer with name Bob already exists", decode[errorBody](t, rec).Error.Message)
}

func TestUpdateDeveloperInPlace(t *testing.T) {
	r, svc := newTestEngine(t,
		types.Developer{ID: "1", Name: "Ada"},
		types.Developer{ID: "2", Name: "Bob"},
	)
	rec := doJSON(t, r, http.MethodPut, "/api/developers/1", map[string]any{
		"id":         "ignored",
		"name":       "Ada L.",
		"isJunior":   true,
		"frameworks": []map[string]string{{"name": "Go"}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, types.Developer{ID: "1", Name: "Ada L.", IsJunior: true, Frameworks: []types.Framework{{Name: "Go"}}}, list[0])
	assert.Equal(t, "2", list[1].ID)
}

func TestGetDeveloper(t *testing.T) {
	r, _ := newTestEngine(t, types.Developer{ID: "1", Name: "Ada"})

	rec := doJSON(t, r, http.MethodGet, "/api/developers/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ada", decode[developerBody](t, rec).Developer.Name)

	rec = doJSON(t, r, http.MethodGet, "/api/developers/404", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[errorBody](t, rec).Error.Code)
}

func TestRemoveDeveloper(t *testing.T) {
	r, svc := newTestEngine(t, types.Developer{ID: "1", Name: "Ada"}, types.Developer{ID: "2", Name: "Bob"})

	rec := doJSON(t, r, http.MethodDelete, "/api/developers/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/api/developers/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[errorBody](t, rec).Error.Code)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bob", list[0].Name)
}

func TestStageForEditOpensEditor(t *testing.T) {
	r, _ := newTestEngine(t, types.Developer{ID: "1", Name: "Ada", Frameworks: []types.Framework{{Name: "Go"}}})

	rec := doJSON(t, r, http.MethodPost, "/api/developers/1/edit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ed := decode[editorBody](t, rec).Editor
	assert.True(t, ed.Open)
	assert.Equal(t, services.EditorModeEdit, ed.Mode)
	assert.Equal(t, "Edit Developer", ed.Title)
	assert.Equal(t, "Update Developer", ed.SubmitLabel)
	assert.Equal(t, "Ada", ed.Draft.Name)

	rec = doJSON(t, r, http.MethodPost, "/api/developers/missing/edit", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDraftFlowCreatesDeveloper(t *testing.T) {
	r, svc := newTestEngine(t)

	rec := doJSON(t, r, http.MethodPost, "/api/draft", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ed := decode[editorBody](t, rec).Editor
	assert.Equal(t, "Add New Developer", ed.Title)
	assert.Equal(t, "Add Developer", ed.SubmitLabel)

	rec = doJSON(t, r, http.MethodPatch, "/api/draft", map[string]any{"name": "Ada", "isJunior": true})
	require.Equal(t, http.StatusOK, rec.Code)

	for _, fw := range []string{"React", "react", "  Vue "} {
		rec = doJSON(t, r, http.MethodPost, "/api/draft/frameworks", map[string]any{"name": fw})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	ed = decode[editorBody](t, rec).Editor
	assert.Equal(t, []string{"React", "Vue"}, ed.Draft.FrameworkNames())

	rec = doJSON(t, r, http.MethodDelete, "/api/draft/frameworks/0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Vue"}, decode[editorBody](t, rec).Editor.Draft.FrameworkNames())

	rec = doJSON(t, r, http.MethodPost, "/api/draft/save", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decode[struct {
		Developer types.Developer `json:"developer"`
		Editor    services.Editor `json:"editor"`
	}](t, rec)
	assert.Equal(t, "Ada", saved.Developer.Name)
	assert.True(t, saved.Developer.IsJunior)
	assert.False(t, saved.Editor.Open)
	assert.Empty(t, saved.Editor.Draft.Name)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRemoveFrameworkBadIndex(t *testing.T) {
	r, _ := newTestEngine(t)
	doJSON(t, r, http.MethodPost, "/api/draft/frameworks", map[string]any{"name": "Go"})

	rec := doJSON(t, r, http.MethodDelete, "/api/draft/frameworks/3", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "index_out_of_range", decode[errorBody](t, rec).Error.Code)

	rec = doJSON(t, r, http.MethodDelete, "/api/draft/frameworks/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decode[errorBody](t, rec).Error.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/draft", nil)
	assert.Equal(t, []string{"Go"}, decode[editorBody](t, rec).Editor.Draft.FrameworkNames())
}

func TestClearDraft(t *testing.T) {
	r, _ := newTestEngine(t, types.Developer{ID: "1", Name: "Ada"})
	doJSON(t, r, http.MethodPost, "/api/developers/1/edit", nil)

	rec := doJSON(t, r, http.MethodDelete, "/api/draft", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ed := decode[editorBody](t, rec).Editor
	assert.False(t, ed.Open)
	assert.Equal(t, services.EditorModeCreate, ed.Mode)
	assert.Empty(t, ed.Draft.ID)
}

func TestSaveDraftDuplicateKeepsDraft(t *testing.T) {
	r, _ := newTestEngine(t, types.Developer{ID: "b", Name: "Bob"})
	doJSON(t, r, http.MethodPost, "/api/draft", nil)
	doJSON(t, r, http.MethodPatch, "/api/draft", map[string]any{"name": "Bob"})

	rec := doJSON(t, r, http.MethodPost, "/api/draft/save", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/draft", nil)
	ed := decode[editorBody](t, rec).Editor
	assert.True(t, ed.Open)
	assert.Equal(t, "Bob", ed.Draft.Name)
}
