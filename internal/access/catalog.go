package access

import (
	"context"

	"github.com/assetdeck/backend/internal/models"
)

// Catalog supplies the selectable values for a rule criteria. The two
// criteria draw from disjoint catalogs (user collections and user roles), so
// switching criteria always invalidates previously selected values.
type Catalog interface {
	ValuesFor(ctx context.Context, criteria models.RuleCriteria) ([]string, error)
}
