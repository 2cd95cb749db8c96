package sales

import (
	"testing"

	"github.com/shopspring/decimal"

	"stockdesk-backend/internal/models"
)

func TestLineTotal(t *testing.T) {
	// the reference line: qty 2 x 100 - 10 + 5 = 205
	got := LineTotal(2, decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.NewFromInt(5))
	if !got.Equal(decimal.NewFromInt(205)) {
		t.Errorf("LineTotal(2, 100, 10, 5) = %s, want 205", got)
	}

	got = LineTotal(1, decimal.RequireFromString("99.99"), decimal.Zero, decimal.RequireFromString("0.01"))
	if !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("LineTotal(1, 99.99, 0, 0.01) = %s, want 100", got)
	}
}

func TestComputeOrderTotals(t *testing.T) {
	items := []models.SalesOrderItem{
		{Quantity: 2, UnitPrice: decimal.NewFromInt(100), Discount: decimal.NewFromInt(10), Tax: decimal.NewFromInt(5)},
		{Quantity: 3, UnitPrice: decimal.NewFromInt(50), Discount: decimal.Zero, Tax: decimal.NewFromInt(9)},
	}
	totals := ComputeOrderTotals(items)

	if !totals.Subtotal.Equal(decimal.NewFromInt(350)) {
		t.Errorf("Subtotal = %s, want 350", totals.Subtotal)
	}
	if !totals.TotalDiscount.Equal(decimal.NewFromInt(10)) {
		t.Errorf("TotalDiscount = %s, want 10", totals.TotalDiscount)
	}
	if !totals.TotalTax.Equal(decimal.NewFromInt(14)) {
		t.Errorf("TotalTax = %s, want 14", totals.TotalTax)
	}
	if !totals.TotalAmount.Equal(decimal.NewFromInt(354)) {
		t.Errorf("TotalAmount = %s, want 354", totals.TotalAmount)
	}
	if totals.TotalQuantity != 5 {
		t.Errorf("TotalQuantity = %d, want 5", totals.TotalQuantity)
	}
}

func TestComputeOrderTotalsSingleLineMatchesLineTotal(t *testing.T) {
	item := models.SalesOrderItem{
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(100),
		Discount:  decimal.NewFromInt(10),
		Tax:       decimal.NewFromInt(5),
	}
	totals := ComputeOrderTotals([]models.SalesOrderItem{item})
	if !totals.TotalAmount.Equal(decimal.NewFromInt(205)) {
		t.Errorf("order TotalAmount = %s, want 205", totals.TotalAmount)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, to models.SalesOrderStatus
	}{
		{models.SOStatusDraft, models.SOStatusConfirmed},
		{models.SOStatusConfirmed, models.SOStatusProcessing},
		{models.SOStatusProcessing, models.SOStatusPendingDispatch},
		{models.SOStatusDispatched, models.SOStatusShipped},
		{models.SOStatusShipped, models.SOStatusOutForDelivery},
		{models.SOStatusOutForDelivery, models.SOStatusDelivered},
		{models.SOStatusConfirmed, models.SOStatusCancelled},
		{models.SOStatusPendingDispatch, models.SOStatusCancelled},
	}
	for _, c := range allowed {
		if !CanTransition(c.from, c.to) {
			t.Errorf("expected %s -> %s to be allowed", c.from, c.to)
		}
	}

	denied := []struct {
		from, to models.SalesOrderStatus
	}{
		{models.SOStatusConfirmed, models.SOStatusDraft}, // no path back
		{models.SOStatusDraft, models.SOStatusPendingDispatch},
		{models.SOStatusCancelled, models.SOStatusConfirmed}, // terminal
		{models.SOStatusReturned, models.SOStatusDraft},      // terminal
		{models.SOStatusDraft, models.SOStatusDispatched},    // dispatch endpoint only
		{models.SOStatusDelivered, models.SOStatusDelivered},
	}
	for _, c := range denied {
		if CanTransition(c.from, c.to) {
			t.Errorf("expected %s -> %s to be rejected", c.from, c.to)
		}
	}
}

func TestIsEditable(t *testing.T) {
	if !IsEditable(models.SOStatusDraft) {
		t.Error("draft orders must be editable")
	}
	for _, status := range []models.SalesOrderStatus{
		models.SOStatusConfirmed, models.SOStatusPendingDispatch,
		models.SOStatusDispatched, models.SOStatusCancelled,
	} {
		if IsEditable(status) {
			t.Errorf("%s orders must not be editable", status)
		}
	}
}

func TestReleasesReservation(t *testing.T) {
	for _, status := range []models.SalesOrderStatus{
		models.SOStatusConfirmed, models.SOStatusProcessing, models.SOStatusPendingDispatch,
	} {
		if !ReleasesReservation(status) {
			t.Errorf("cancelling a %s order must release its reservation", status)
		}
	}
	if ReleasesReservation(models.SOStatusDraft) {
		t.Error("a draft holds no reservation to release")
	}
	if ReleasesReservation(models.SOStatusDispatched) {
		t.Error("a dispatched order's reservation is already consumed")
	}
}
