package sales

import (
	"github.com/shopspring/decimal"

	"stockdesk-backend/internal/models"
)

// transitions is the adjacency map of the sales order lifecycle. The
// dispatched status is reachable only through the dispatch endpoint, never by
// a plain status change.
var transitions = map[models.SalesOrderStatus][]models.SalesOrderStatus{
	models.SOStatusDraft:           {models.SOStatusConfirmed, models.SOStatusCancelled},
	models.SOStatusConfirmed:       {models.SOStatusProcessing, models.SOStatusCancelled},
	models.SOStatusProcessing:      {models.SOStatusPendingDispatch, models.SOStatusCancelled},
	models.SOStatusPendingDispatch: {models.SOStatusCancelled},
	models.SOStatusDispatched:      {models.SOStatusShipped},
	models.SOStatusShipped:         {models.SOStatusOutForDelivery, models.SOStatusReturned},
	models.SOStatusOutForDelivery:  {models.SOStatusDelivered, models.SOStatusReturned},
	models.SOStatusDelivered:       {models.SOStatusReturned},
	models.SOStatusCancelled:       {},
	models.SOStatusReturned:        {},
}

// CanTransition reports whether a direct status change from -> to is allowed.
func CanTransition(from, to models.SalesOrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsEditable reports whether items/customer/dates may still be mutated.
func IsEditable(status models.SalesOrderStatus) bool {
	return status == models.SOStatusDraft
}

// ReleasesReservation reports whether leaving this status for cancelled must
// hand reserved stock back.
func ReleasesReservation(status models.SalesOrderStatus) bool {
	return status == models.SOStatusConfirmed ||
		status == models.SOStatusProcessing ||
		status == models.SOStatusPendingDispatch
}

// LineTotal is qty*unitPrice - discount + tax.
func LineTotal(quantity int, unitPrice, discount, tax decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Sub(discount).Add(tax)
}

// OrderTotals sums the already-computed lines: subtotal is the undiscounted,
// untaxed goods value; the grand total is subtotal - discounts + taxes.
type OrderTotals struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal
	TotalAmount   decimal.Decimal
	TotalQuantity int
}

func ComputeOrderTotals(items []models.SalesOrderItem) OrderTotals {
	t := OrderTotals{
		Subtotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		TotalTax:      decimal.Zero,
	}
	for _, item := range items {
		t.Subtotal = t.Subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		t.TotalDiscount = t.TotalDiscount.Add(item.Discount)
		t.TotalTax = t.TotalTax.Add(item.Tax)
		t.TotalQuantity += item.Quantity
	}
	t.TotalAmount = t.Subtotal.Sub(t.TotalDiscount).Add(t.TotalTax)
	return t
}
