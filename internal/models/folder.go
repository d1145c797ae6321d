package models

import "github.com/google/uuid"

// DefaultFolderThumbnailURL is applied when a folder is created without a
// thumbnail.
const DefaultFolderThumbnailURL = "https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?w=400&h=300&fit=crop"

type Folder struct {
	BaseModel
	Name         string     `json:"name" gorm:"type:varchar(255);not null"`
	ThumbnailURL string     `json:"thumbnailURL" gorm:"type:text;not null"`
	ParentID     *uuid.UUID `json:"parentID,omitempty" gorm:"type:uuid;index"`
	FileCount    int64      `json:"fileCount" gorm:"not null;default:0"`

	Parent   *Folder      `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children []Folder     `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Files    []File       `json:"-" gorm:"foreignKey:FolderID"`
	Rules    []AccessRule `json:"rules,omitempty" gorm:"foreignKey:FolderID"`
}

func (Folder) TableName() string {
	return "folders"
}
