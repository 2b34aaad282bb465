package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mpetrov/inkpad/internal/server/models"
	"github.com/mpetrov/inkpad/internal/server/repositories/notes"
)

type NotesHandler struct {
	notes NoteService
}

func NewNotesHandler(svc NoteService) *NotesHandler {
	return &NotesHandler{notes: svc}
}

func sortParams(c *gin.Context) (string, bool) {
	sortKey := c.DefaultQuery("sort", notes.SortUpdatedAt)
	if sortKey != notes.SortTitle {
		sortKey = notes.SortUpdatedAt
	}
	ascending := c.DefaultQuery("order", "desc") == "asc"
	return sortKey, ascending
}

func (h *NotesHandler) List(c *gin.Context) {
	sortKey, ascending := sortParams(c)
	list, err := h.notes.List(c.Request.Context(), currentUserID(c), sortKey, ascending)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": toNoteDTOs(list)})
}

func (h *NotesHandler) Get(c *gin.Context) {
	note, err := h.notes.Get(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNoteDTO(note))
}

type createNoteRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	IsFavorite bool     `json:"isFavorite"`
	FolderID   *string  `json:"folderId"`
}

func (h *NotesHandler) Create(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	note, err := h.notes.Create(c.Request.Context(), currentUserID(c), &models.Note{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		IsFavorite: req.IsFavorite,
		FolderID:   req.FolderID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toNoteDTO(note))
}

type patchNoteRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags"`
	IsFavorite *bool     `json:"isFavorite"`
	FolderID   *string   `json:"folderId"`
}

func (h *NotesHandler) Update(c *gin.Context) {
	var req patchNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	note, err := h.notes.Update(c.Request.Context(), currentUserID(c), c.Param("id"), &models.NotePatch{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		IsFavorite: req.IsFavorite,
		FolderID:   req.FolderID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNoteDTO(note))
}

func (h *NotesHandler) Delete(c *gin.Context) {
	if err := h.notes.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
