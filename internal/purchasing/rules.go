package purchasing

import (
	"github.com/shopspring/decimal"

	"stockdesk-backend/internal/models"
)

// CanDecide reports whether an indent may still be approved or rejected.
// Only pending indents are decidable; every other status is terminal or
// already past the decision point.
func CanDecide(status models.IndentStatus) bool {
	return status == models.IndentStatusPending
}

// CanRaisePO reports whether a purchase order may be created from an indent
// in the given status.
func CanRaisePO(status models.IndentStatus) bool {
	return status == models.IndentStatusApproved || status == models.IndentStatusPOPending
}

// POLineTotal is qty*unitPrice + tax.
func POLineTotal(quantity int, unitPrice, tax decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Add(tax)
}
