package rest

import (
	"time"

	"github.com/mpetrov/inkpad/internal/server/models"
)

// Wire representations. Field names are camelCase; timestamps are RFC 3339.

type noteDTO struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	IsFavorite bool      `json:"isFavorite"`
	FolderID   *string   `json:"folderId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toNoteDTO(n *models.Note) noteDTO {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteDTO{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		Tags:       tags,
		IsFavorite: n.IsFavorite,
		FolderID:   n.FolderID,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func toNoteDTOs(list []*models.Note) []noteDTO {
	result := make([]noteDTO, 0, len(list))
	for _, n := range list {
		result = append(result, toNoteDTO(n))
	}
	return result
}

type folderDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

func toFolderDTO(f *models.Folder) folderDTO {
	return folderDTO{ID: f.ID, Name: f.Name, Color: f.Color, CreatedAt: f.CreatedAt}
}

type profileDTO struct {
	DisplayName      string `json:"displayName"`
	UserName         string `json:"userName"`
	AvatarKey        string `json:"avatarKey,omitempty"`
	Theme            string `json:"theme"`
	AutosaveInterval int    `json:"autosaveInterval"`
}

func toProfileDTO(p *models.Profile) profileDTO {
	return profileDTO{
		DisplayName:      p.DisplayName,
		UserName:         p.UserName,
		AvatarKey:        p.AvatarKey,
		Theme:            p.Theme,
		AutosaveInterval: p.AutosaveInterval,
	}
}

type tokenPairDTO struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
