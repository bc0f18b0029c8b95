package categories

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetCategory owns the depreciation policy: LifeTime in years and
// DepreciationRate as a percentage of cost per year.
type AssetCategory struct {
	ID               uuid.UUID       `json:"category_id"`
	Code             string          `json:"category_code"`
	Name             string          `json:"category_name"`
	ShortName        string          `json:"category_short_name,omitempty"`
	LifeTime         int             `json:"life_time"`
	DepreciationRate decimal.Decimal `json:"depreciation_rate"`
	Description      string          `json:"description,omitempty"`
	IsActive         bool            `json:"is_active"`
	CreatedDate      time.Time       `json:"created_date"`
	CreatedBy        string          `json:"created_by,omitempty"`
	ModifiedDate     time.Time       `json:"modified_date"`
	ModifiedBy       string          `json:"modified_by,omitempty"`
}
