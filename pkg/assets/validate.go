package assets

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"assetledger/pkg/apperr"
)

// rateTolerance bounds the allowed deviation between the supplied rate
// (normalized to a fraction) and round(1/lifeTime, 5). The tolerance is
// deliberately tight; see DESIGN.md on the corrected consistency check.
var rateTolerance = decimal.RequireFromString("0.0001")

var one = decimal.NewFromInt(1)
var oneHundred = decimal.NewFromInt(100)

// validateAsset runs the full rule set and aggregates every violation
// so one request reports all problems at once. Create additionally
// requires a non-blank code; update treats the code as immutable.
func validateAsset(input AssetInput, isCreate bool) error {
	var violations []string

	if isCreate && strings.TrimSpace(input.Code) == "" {
		violations = append(violations, "Asset code must not be blank")
	}
	if strings.TrimSpace(input.Name) == "" {
		violations = append(violations, "Asset name must not be blank")
	}
	if strings.TrimSpace(input.DepartmentCode) == "" {
		violations = append(violations, "Department code must not be blank")
	}
	if strings.TrimSpace(input.CategoryCode) == "" {
		violations = append(violations, "Category code must not be blank")
	}
	if input.Quantity <= 0 {
		violations = append(violations, "Quantity must be greater than 0")
	}
	if !input.Cost.IsPositive() {
		violations = append(violations, "Cost must be greater than 0")
	}
	if input.PurchaseDate.After(time.Now()) {
		violations = append(violations, "Purchase date must not be in the future")
	}

	if input.LifeTime > 0 && input.DepreciationRate.IsPositive() {
		rate := input.DepreciationRate
		if rate.GreaterThan(one) {
			// Given as a percentage; normalize to a fraction.
			rate = rate.Div(oneHundred)
		}
		expected := one.Div(decimal.NewFromInt(int64(input.LifeTime))).Round(5)
		if rate.Sub(expected).Abs().GreaterThan(rateTolerance) {
			violations = append(violations, "Depreciation rate must equal 1 / useful life")
		}
	}

	if input.DepreciationValue.GreaterThan(input.Cost) {
		violations = append(violations, "Annual depreciation must not exceed cost")
	}

	if len(violations) > 0 {
		return apperr.Validate(strings.Join(violations, "; "))
	}
	return nil
}
