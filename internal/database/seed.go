package database

import (
	"time"

	"github.com/assetdeck/backend/internal/models"
	"gorm.io/gorm"
)

var seedUserCollections = []string{
	"Pre-order 2024 TEST ABACUS",
	"Igor - Demo Colect APP",
	"Nishanth - Demo Colect APP",
	"Demo Colect WEB - DEV",
	"Demo Colect WEB - DEV - RETURNS",
	"Demo Colect WEB - TEST",
	"Demo Colect WEB - TEST2",
	"Demo Colect WEB - TEST - PAYMENT",
	"Demo Colect WEB - TEST - RETURNS",
	"TEST XML LIGHT NISHANT",
	"Demo/Aron",
	"Beheim cart test",
	"CUSTOMER CHUNK TEST",
	"Richard Fashion - Pre order",
	"ClusterC TEST",
	"Aron_01",
	"BEHEIM_CART",
}

var seedUserRoles = []string{
	"COMPANY_SALESREP",
	"SALES_AGENT",
	"SALES_AGENT_WEB",
	"ADMIN",
	"VIEWER",
	"CONTENT_EDITOR",
}

// Seed fills an empty database with the demo catalogs and a small folder
// tree so the panel has something to show. Seeding a non-empty database is
// a no-op.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.UserCollection{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i, name := range seedUserCollections {
			if err := tx.Create(&models.UserCollection{Name: name, Position: i}).Error; err != nil {
				return err
			}
		}
		for i, name := range seedUserRoles {
			if err := tx.Create(&models.UserRoleOption{Name: name, Position: i}).Error; err != nil {
				return err
			}
		}
		return seedAssets(tx)
	})
}

func seedAssets(tx *gorm.DB) error {
	resolution := func(s string) *string { return &s }

	folders := []struct {
		folder models.Folder
		files  []models.File
	}{
		{
			folder: models.Folder{
				Name:         "Product Photography",
				ThumbnailURL: models.DefaultFolderThumbnailURL,
			},
			files: []models.File{
				{
					Name:         "spring-lookbook-cover.jpg",
					Description:  "Hero shot for the spring lookbook",
					Type:         models.FileTypeJPG,
					Size:         4_812_390,
					Resolution:   resolution("4096x2730"),
					ThumbnailURL: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400",
					Channels:     models.StringList{string(models.ChannelWebsite), string(models.ChannelSocial)},
				},
				{
					Name:         "product-grid-q3.png",
					Description:  "Transparent grid render for web banners",
					Type:         models.FileTypePNG,
					Size:         2_158_044,
					Resolution:   resolution("1920x1080"),
					ThumbnailURL: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400",
					Channels:     models.StringList{string(models.ChannelEcommerce)},
				},
			},
		},
		{
			folder: models.Folder{
				Name:         "Price Lists",
				ThumbnailURL: models.DefaultFolderThumbnailURL,
			},
			files: []models.File{
				{
					Name:        "wholesale-prices-2024.xls",
					Description: "Wholesale price list, EU region",
					Type:        models.FileTypeXLS,
					Size:        348_772,
					Channels:    models.StringList{string(models.ChannelInStore), string(models.ChannelPrint)},
				},
				{
					Name:        "retail-prices-2024.csv",
					Description: "Retail price export for marketplace feeds",
					Type:        models.FileTypeCSV,
					Size:        92_311,
					Channels:    models.StringList{string(models.ChannelMarketplaces)},
				},
			},
		},
		{
			folder: models.Folder{
				Name:         "Brand Guidelines",
				ThumbnailURL: models.DefaultFolderThumbnailURL,
			},
			files: []models.File{
				{
					Name:        "brand-manual-v3.pdf",
					Description: "Full brand manual, third revision",
					Type:        models.FileTypePDF,
					Size:        18_263_001,
					Channels:    models.StringList{string(models.ChannelPrint), string(models.ChannelNewsletter)},
				},
			},
		},
	}

	now := time.Now()
	for _, entry := range folders {
		folder := entry.folder
		folder.FileCount = int64(len(entry.files))
		if err := tx.Create(&folder).Error; err != nil {
			return err
		}

		for i, file := range entry.files {
			file.FolderID = folder.ID
			file.UploadedAt = now.Add(-time.Duration(i) * 24 * time.Hour)
			if file.Channels == nil {
				file.Channels = models.StringList{}
			}
			if err := tx.Create(&file).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
