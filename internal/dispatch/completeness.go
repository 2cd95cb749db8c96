package dispatch

import "stockdesk-backend/internal/models"

// Completeness compares dispatched quantities against the ordered lines.
// The result is full only when every ordered line is covered at or above its
// ordered quantity and the dispatch set has exactly as many lines as the
// order. Anything else, a short line, a missing line or an extra line, is
// partially.
func Completeness(orderItems []models.SalesOrderItem, dispatched map[uint]int) models.DispatchLogStatus {
	if len(dispatched) != len(orderItems) {
		return models.DispatchLogPartially
	}
	for _, item := range orderItems {
		qty, ok := dispatched[item.SKUID]
		if !ok || qty < item.Quantity {
			return models.DispatchLogPartially
		}
	}
	return models.DispatchLogFull
}

// ReleaseAmount is the quantity to hand back from the SKU's reserved counter
// when the given allocations are closed: the sum of the unreleased rows.
// Decrementing by exactly this amount keeps the counter equal to the
// unreleased ledger sum, dispatched quantity notwithstanding.
func ReleaseAmount(allocations []models.StockAllocation) int {
	total := 0
	for _, a := range allocations {
		if a.ReleasedAt == nil {
			total += a.Quantity
		}
	}
	return total
}
