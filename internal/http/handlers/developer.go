package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/devroster-backend/internal/domain"
	"github.com/yungbote/devroster-backend/internal/http/response"
	"github.com/yungbote/devroster-backend/internal/services"
)

type DeveloperHandler struct {
	developers services.DeveloperService
}

func NewDeveloperHandler(developers services.DeveloperService) *DeveloperHandler {
	return &DeveloperHandler{developers: developers}
}

type developerRequest struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	IsJunior   bool              `json:"isJunior"`
	Frameworks []types.Framework `json:"frameworks"`
}

func (r developerRequest) developer() types.Developer {
	fw := r.Frameworks
	if fw == nil {
		fw = []types.Framework{}
	}
	return types.Developer{ID: r.ID, Name: r.Name, IsJunior: r.IsJunior, Frameworks: fw}
}

// GET /api/developers
func (h *DeveloperHandler) List(c *gin.Context) {
	list, err := h.developers.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, apiError(err))
		return
	}
	response.RespondOK(c, gin.H{"developers": list})
}

// GET /api/developers/:id
func (h *DeveloperHandler) Get(c *gin.Context) {
	dev, err := h.developers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, apiError(err))
		return
	}
	response.RespondOK(c, gin.H{"developer": dev})
}

// POST /api/developers
// body: { "id": "", "name": "Ada", "isJunior": false, "frameworks": [{"name": "Vue"}] }
func (h *DeveloperHandler) Save(c *gin.Context) {
	var req developerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	h.save(c, req.developer())
}

// PUT /api/developers/:id
func (h *DeveloperHandler) Update(c *gin.Context) {
	var req developerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	req.ID = c.Param("id")
	h.save(c, req.developer())
}

func (h *DeveloperHandler) save(c *gin.Context, draft types.Developer) {
	saved, err := h.developers.SaveOrCreate(c.Request.Context(), draft)
	if err != nil {
		response.RespondAPIError(c, apiError(err))
		return
	}
	// An unknown draft id is treated as new and gets a fresh id.
	if draft.ID != "" && saved.ID == draft.ID {
		response.RespondOK(c, gin.H{"developer": saved})
		return
	}
	response.RespondCreated(c, gin.H{"developer": saved})
}

// DELETE /api/developers/:id
func (h *DeveloperHandler) Remove(c *gin.Context) {
	if err := h.developers.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondAPIError(c, apiError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/developers/:id/edit
func (h *DeveloperHandler) StageForEdit(c *gin.Context) {
	dev, err := h.developers.StageForEdit(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, apiError(err))
		return
	}
	response.RespondOK(c, gin.H{
		"developer": dev,
		"editor":    h.developers.Editor(c.Request.Context()),
	})
}
