package dispatch

import (
	"testing"
	"time"

	"stockdesk-backend/internal/models"
)

func orderLines(pairs ...[2]int) []models.SalesOrderItem {
	items := make([]models.SalesOrderItem, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, models.SalesOrderItem{SKUID: uint(p[0]), Quantity: p[1]})
	}
	return items
}

func TestCompleteness(t *testing.T) {
	cases := []struct {
		name       string
		order      []models.SalesOrderItem
		dispatched map[uint]int
		want       models.DispatchLogStatus
	}{
		{
			"exact match",
			orderLines([2]int{1, 4}),
			map[uint]int{1: 4},
			models.DispatchLogFull,
		},
		{
			"over-dispatch still counts as full",
			orderLines([2]int{1, 4}),
			map[uint]int{1: 5},
			models.DispatchLogFull,
		},
		{
			"one line short",
			orderLines([2]int{1, 4}, [2]int{2, 2}),
			map[uint]int{1: 4, 2: 1},
			models.DispatchLogPartially,
		},
		{
			"ordered line missing entirely",
			orderLines([2]int{1, 4}, [2]int{2, 2}),
			map[uint]int{1: 4},
			models.DispatchLogPartially,
		},
		{
			"extra unordered line breaks the exact-count rule",
			orderLines([2]int{1, 4}),
			map[uint]int{1: 4, 9: 1},
			models.DispatchLogPartially,
		},
		{
			"multi-line full",
			orderLines([2]int{1, 4}, [2]int{2, 2}, [2]int{3, 1}),
			map[uint]int{1: 4, 2: 2, 3: 1},
			models.DispatchLogFull,
		},
	}

	for _, c := range cases {
		if got := Completeness(c.order, c.dispatched); got != c.want {
			t.Errorf("%s: Completeness = %s, want %s", c.name, got, c.want)
		}
	}
}

func TestReleaseAmount(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name        string
		allocations []models.StockAllocation
		want        int
	}{
		{
			"no allocations",
			nil,
			0,
		},
		{
			"single open allocation",
			[]models.StockAllocation{{Quantity: 4}},
			4,
		},
		{
			"already-released rows are skipped",
			[]models.StockAllocation{
				{Quantity: 4, ReleasedAt: &now},
				{Quantity: 3},
			},
			3,
		},
		{
			"multiple open rows sum",
			[]models.StockAllocation{{Quantity: 2}, {Quantity: 5}},
			7,
		},
	}

	for _, c := range cases {
		if got := ReleaseAmount(c.allocations); got != c.want {
			t.Errorf("%s: ReleaseAmount = %d, want %d", c.name, got, c.want)
		}
	}
}

// A short-shipped line must hand back its whole reservation when its
// allocation rows close, so the reserved counter stays equal to the
// unreleased ledger sum.
func TestReleaseAmountCoversShortShippedLine(t *testing.T) {
	allocations := []models.StockAllocation{{SKUID: 1, Quantity: 4}}
	dispatched := 2

	release := ReleaseAmount(allocations)
	if release != 4 {
		t.Fatalf("ReleaseAmount = %d, want the full allocated 4", release)
	}
	if release == dispatched {
		t.Fatal("release must follow the ledger, not the dispatched quantity")
	}

	// after the close-out every row is released; the counter, decremented by
	// the release amount, must match the unreleased sum (zero)
	reserved := 4 - release
	now := time.Now()
	for i := range allocations {
		allocations[i].ReleasedAt = &now
	}
	if remaining := ReleaseAmount(allocations); reserved != remaining {
		t.Errorf("reserved counter %d diverges from unreleased ledger sum %d", reserved, remaining)
	}
}
