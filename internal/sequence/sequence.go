package sequence

import (
	"fmt"

	"gorm.io/gorm"
)

// Counter names. One row per entity type in the sequences table.
const (
	CounterCustomer      = "customer"
	CounterIndent        = "purchase_indent"
	CounterPurchaseOrder = "purchase_order"
	CounterSalesOrder    = "sales_order"
)

// Next atomically increments the named counter and returns the new value.
// The whole allocation is a single statement, so two concurrent creations
// can never observe the same value.
func Next(tx *gorm.DB, name string) (int64, error) {
	var value int64
	err := tx.Raw(`
		INSERT INTO sequences (name, value) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value
	`, name).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("sequence %s: %w", name, err)
	}
	return value, nil
}

// NextCode allocates the next value of the named counter and formats it as a
// zero-padded business code, e.g. NextCode(tx, CounterIndent, "IND", 3) ->
// "IND-001".
func NextCode(tx *gorm.DB, name, prefix string, width int) (string, error) {
	n, err := Next(tx, name)
	if err != nil {
		return "", err
	}
	return FormatCode(prefix, n, width), nil
}

// FormatCode zero-pads n to width digits behind the prefix. Values wider than
// width keep all their digits.
func FormatCode(prefix string, n int64, width int) string {
	return fmt.Sprintf("%s-%0*d", prefix, width, n)
}
