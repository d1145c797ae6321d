package apiclient

import "time"

type Folder struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ThumbnailURL string    `json:"thumbnailURL"`
	ParentID     *string   `json:"parentID,omitempty"`
	FileCount    int64     `json:"fileCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type File struct {
	ID           string    `json:"id"`
	FolderID     string    `json:"folderID"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Type         string    `json:"type"`
	UploadedAt   time.Time `json:"uploadedAt"`
	Size         int64     `json:"size"`
	Resolution   *string   `json:"resolution,omitempty"`
	ThumbnailURL string    `json:"thumbnailURL"`
	Channels     []string  `json:"channels"`
}

type AccessRule struct {
	ID       string   `json:"id"`
	FolderID *string  `json:"folderID,omitempty"`
	FileID   *string  `json:"fileID,omitempty"`
	Position int      `json:"position"`
	Criteria string   `json:"criteria"`
	Operator string   `json:"operator"`
	Values   []string `json:"values"`
}

type EffectiveAccess struct {
	Source        string       `json:"source"`
	Inherited     bool         `json:"inherited"`
	ActiveRules   []AccessRule `json:"activeRules"`
	ShadowedRules []AccessRule `json:"shadowedRules"`
}

type GuardDecision struct {
	GuardState string      `json:"guardState"`
	Committed  *AccessRule `json:"committed,omitempty"`
	Pending    *AccessRule `json:"pending,omitempty"`
}

type FolderRules struct {
	Rules      []AccessRule `json:"rules"`
	GuardState string       `json:"guardState"`
}

type Scenario struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

type ScenarioList struct {
	Scenarios []Scenario `json:"scenarios"`
	Current   string     `json:"current"`
}

type DownloadLink struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}
