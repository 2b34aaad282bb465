package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mpetrov/inkpad/internal/server/models"
)

type FoldersHandler struct {
	folders FolderService
}

func NewFoldersHandler(svc FolderService) *FoldersHandler {
	return &FoldersHandler{folders: svc}
}

func (h *FoldersHandler) List(c *gin.Context) {
	list, err := h.folders.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	result := make([]folderDTO, 0, len(list))
	for _, f := range list {
		result = append(result, toFolderDTO(f))
	}
	c.JSON(http.StatusOK, gin.H{"folders": result})
}

type createFolderRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

func (h *FoldersHandler) Create(c *gin.Context) {
	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	folder, err := h.folders.Create(c.Request.Context(), currentUserID(c), &models.Folder{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFolderDTO(folder))
}

type patchFolderRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (h *FoldersHandler) Update(c *gin.Context) {
	var req patchFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	folder, err := h.folders.Update(c.Request.Context(), currentUserID(c), c.Param("id"), &models.FolderPatch{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFolderDTO(folder))
}

// Delete removes the folder; its notes stay, detached from the folder.
func (h *FoldersHandler) Delete(c *gin.Context) {
	if err := h.folders.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
