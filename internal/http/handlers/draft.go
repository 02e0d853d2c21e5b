package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/devroster-backend/internal/http/response"
	"github.com/yungbote/devroster-backend/internal/services"
)

// DraftHandler exposes the single add/edit form draft.
type DraftHandler struct {
	developers services.DeveloperService
}

func NewDraftHandler(developers services.DeveloperService) *DraftHandler {
	return &DraftHandler{developers: developers}
}

// GET /api/draft
func (h *DraftHandler) Get(c *gin.Context) {
	response.RespondOK(c, gin.H{"editor": h.developers.Editor(c.Request.Context())})
}

// POST /api/draft
func (h *DraftHandler) Open(c *gin.Context) {
	response.RespondOK(c, gin.H{"editor": h.developers.OpenNewDraft(c.Request.Context())})
}

// PATCH /api/draft
// body: { "name": "Ada", "isJunior": true } (either field optional)
func (h *DraftHandler) Update(c *gin.Context) {
	var req services.DraftPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	response.RespondOK(c, gin.H{"editor": h.developers.UpdateDraft(c.Request.Context(), req)})
}

// DELETE /api/draft
func (h *DraftHandler) Clear(c *gin.Context) {
	response.RespondOK(c, gin.H{"editor": h.developers.ClearDraft(c.Request.Context())})
}

// POST /api/draft/frameworks
// body: { "name": "Vue" }
func (h *DraftHandler) AddFramework(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	response.RespondOK(c, gin.H{"editor": h.developers.AddFrameworkToDraft(c.Request.Context(), req.Name)})
}

// DELETE /api/draft/frameworks/:index
func (h *DraftHandler) RemoveFramework(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid framework index %q", c.Param("index")))
		return
	}
	editor, err := h.developers.RemoveFrameworkFromDraft(c.Request.Context(), index)
	if err != nil {
		response.RespondAPIError(c, apiError(err))
		return
	}
	response.RespondOK(c, gin.H{"editor": editor})
}

// POST /api/draft/save
func (h *DraftHandler) Save(c *gin.Context) {
	saved, err := h.developers.SaveDraft(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, apiError(err))
		return
	}
	response.RespondOK(c, gin.H{
		"developer": saved,
		"editor":    h.developers.Editor(c.Request.Context()),
	})
}
