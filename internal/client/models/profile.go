package models

// Profile is the per-user settings record. Saving writes every editable
// field in one request.
type Profile struct {
	DisplayName      string `json:"displayName"`
	UserName         string `json:"userName"`
	AvatarKey        string `json:"avatarKey,omitempty"`
	Theme            string `json:"theme"`
	AutosaveInterval int    `json:"autosaveInterval"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
