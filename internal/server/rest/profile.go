package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mpetrov/inkpad/internal/server/models"
)

type ProfileHandler struct {
	profiles ProfileService
	avatars  AvatarService
}

func NewProfileHandler(profiles ProfileService, avatars AvatarService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, avatars: avatars}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileDTO(profile))
}

type saveProfileRequest struct {
	DisplayName      string `json:"displayName"`
	AvatarKey        string `json:"avatarKey"`
	Theme            string `json:"theme"`
	AutosaveInterval int    `json:"autosaveInterval"`
}

// Save replaces all editable profile fields in one call.
func (h *ProfileHandler) Save(c *gin.Context) {
	var req saveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := h.profiles.Save(c.Request.Context(), currentUserID(c), &models.Profile{
		DisplayName:      req.DisplayName,
		AvatarKey:        req.AvatarKey,
		Theme:            req.Theme,
		AutosaveInterval: req.AutosaveInterval,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileDTO(profile))
}

// AvatarUploadURL hands the client a presigned PUT URL plus the storage
// key it should save back to the profile after uploading.
func (h *ProfileHandler) AvatarUploadURL(c *gin.Context) {
	key, url, err := h.avatars.UploadURL(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "url": url})
}

func (h *ProfileHandler) AvatarDownloadURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}
	url, err := h.avatars.DownloadURL(c.Request.Context(), key)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
