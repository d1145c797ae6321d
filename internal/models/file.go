package models

import (
	"time"

	"github.com/google/uuid"
)

// FileType is the asset format shown as a badge in the panel.
type FileType string

const (
	FileTypeCSV  FileType = "CSV"
	FileTypePNG  FileType = "PNG"
	FileTypePDF  FileType = "PDF"
	FileTypeJPG  FileType = "JPG"
	FileTypeDOCX FileType = "DOCX"
	FileTypeXLS  FileType = "XLS"
)

func (t FileType) Valid() bool {
	switch t {
	case FileTypeCSV, FileTypePNG, FileTypePDF, FileTypeJPG, FileTypeDOCX, FileTypeXLS:
		return true
	default:
		return false
	}
}

// UsageChannel marks where an asset is intended to be used.
type UsageChannel string

const (
	ChannelInStore      UsageChannel = "in-store"
	ChannelPrint        UsageChannel = "print"
	ChannelWebsite      UsageChannel = "website"
	ChannelMarketplaces UsageChannel = "marketplaces"
	ChannelEcommerce    UsageChannel = "ecommerce"
	ChannelSocial       UsageChannel = "social"
	ChannelNewsletter   UsageChannel = "newsletter"
)

func (ch UsageChannel) Valid() bool {
	switch ch {
	case ChannelInStore, ChannelPrint, ChannelWebsite, ChannelMarketplaces,
		ChannelEcommerce, ChannelSocial, ChannelNewsletter:
		return true
	default:
		return false
	}
}

// File is one downloadable asset. Files always live inside a folder and are
// deleted with it.
type File struct {
	BaseModel
	FolderID          uuid.UUID  `json:"folderID" gorm:"type:uuid;not null;index"`
	Name              string     `json:"name" gorm:"type:varchar(255);not null"`
	Description       string     `json:"description" gorm:"type:text;not null;default:''"`
	Type              FileType   `json:"type" gorm:"type:varchar(10);not null"`
	UploadedAt        time.Time  `json:"uploadedAt" gorm:"not null"`
	Size              int64      `json:"size" gorm:"not null;default:0"`
	Resolution        *string    `json:"resolution,omitempty" gorm:"type:varchar(20)"`
	ThumbnailURL      string     `json:"thumbnailURL" gorm:"type:text;not null;default:''"`
	Channels          StringList `json:"channels" gorm:"type:text;not null"`
	AvailabilityStart *time.Time `json:"availabilityStart,omitempty"`
	AvailabilityEnd   *time.Time `json:"availabilityEnd,omitempty"`

	Folder *Folder      `json:"folder,omitempty" gorm:"foreignKey:FolderID"`
	Rules  []AccessRule `json:"rules,omitempty" gorm:"foreignKey:FileID"`
}

func (File) TableName() string {
	return "files"
}
