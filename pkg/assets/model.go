package assets

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asset is the persisted fixed-asset record. Department and category
// fields are snapshots taken at write time; they do not track later
// renames of the referenced records.
type Asset struct {
	ID                uuid.UUID       `json:"asset_id"`
	Code              string          `json:"asset_code"`
	Name              string          `json:"asset_name"`
	DepartmentID      uuid.UUID       `json:"department_id"`
	DepartmentCode    string          `json:"department_code"`
	DepartmentName    string          `json:"department_name"`
	CategoryID        uuid.UUID       `json:"category_id"`
	CategoryCode      string          `json:"category_code"`
	CategoryName      string          `json:"category_name"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	ProductionYear    int             `json:"production_year"`
	TrackedYear       int             `json:"tracked_year"`
	LifeTime          int             `json:"life_time"`
	DepreciationRate  decimal.Decimal `json:"depreciation_rate"`
	Quantity          int             `json:"quantity"`
	Cost              decimal.Decimal `json:"cost"`
	DepreciationValue decimal.Decimal `json:"depreciation_value"`
	Description       string          `json:"description,omitempty"`
	IsActive          bool            `json:"is_active"`
	CreatedDate       time.Time       `json:"created_date"`
	CreatedBy         string          `json:"created_by,omitempty"`
	ModifiedDate      time.Time       `json:"modified_date"`
	ModifiedBy        string          `json:"modified_by,omitempty"`
}

// AssetInput is the caller-supplied payload for create and update.
type AssetInput struct {
	Code              string
	Name              string
	DepartmentCode    string
	CategoryCode      string
	PurchaseDate      time.Time
	LifeTime          int
	DepreciationRate  decimal.Decimal
	Quantity          int
	Cost              decimal.Decimal
	DepreciationValue decimal.Decimal
	Description       string
	ActionBy          string
}

// AssetFilter narrows the paged listing. Keyword matches code and name
// case-insensitively; the code filters are exact.
type AssetFilter struct {
	Keyword        string
	DepartmentCode string
	CategoryCode   string
	PageNumber     int
	PageSize       int
}

// AssetListItem is a listing row. AccumulatedDepreciation mirrors the
// stored annual depreciation value; lifetime accumulation is not
// tracked separately.
type AssetListItem struct {
	ID                      uuid.UUID       `json:"asset_id"`
	Code                    string          `json:"asset_code"`
	Name                    string          `json:"asset_name"`
	DepartmentCode          string          `json:"department_code"`
	DepartmentName          string          `json:"department_name"`
	CategoryCode            string          `json:"category_code"`
	CategoryName            string          `json:"category_name"`
	Quantity                int             `json:"quantity"`
	Cost                    decimal.Decimal `json:"cost"`
	DepreciationValue       decimal.Decimal `json:"depreciation_value"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	RemainingValue          decimal.Decimal `json:"remaining_value"`
	PurchaseDate            time.Time       `json:"purchase_date"`
	ProductionYear          int             `json:"production_year"`
	TrackedYear             int             `json:"tracked_year"`
	LifeTime                int             `json:"life_time"`
	DepreciationRate        decimal.Decimal `json:"depreciation_rate"`
}

type AssetPage struct {
	Items        []AssetListItem `json:"items"`
	TotalRecords int64           `json:"total_records"`
	Page         int             `json:"page"`
	PageSize     int             `json:"page_size"`
	TotalPages   int             `json:"total_pages"`
}
