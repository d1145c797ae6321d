package services

import (
	"context"

	"github.com/assetdeck/backend/internal/access"
	"github.com/assetdeck/backend/internal/models"
	"gorm.io/gorm"
)

// CatalogService backs the rule editor's value catalogs with the seeded
// user-collection and user-role tables.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (s *CatalogService) ValuesFor(ctx context.Context, criteria models.RuleCriteria) ([]string, error) {
	switch criteria {
	case models.RuleCriteriaCollectionAccess:
		var names []string
		err := s.DB.WithContext(ctx).
			Model(&models.UserCollection{}).
			Order("position").
			Pluck("name", &names).Error
		return names, err
	case models.RuleCriteriaUserRole:
		var names []string
		err := s.DB.WithContext(ctx).
			Model(&models.UserRoleOption{}).
			Order("position").
			Pluck("name", &names).Error
		return names, err
	default:
		return nil, access.ErrUnknownCriteria
	}
}
