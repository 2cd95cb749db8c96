package purchasing

import (
	"testing"

	"github.com/shopspring/decimal"

	"stockdesk-backend/internal/models"
)

func TestCanDecide(t *testing.T) {
	decidable := map[models.IndentStatus]bool{
		models.IndentStatusPending:   true,
		models.IndentStatusApproved:  false,
		models.IndentStatusRejected:  false,
		models.IndentStatusPOPending: false,
		models.IndentStatusPOCreated: false,
		models.IndentStatusDeleted:   false,
	}
	for status, want := range decidable {
		if got := CanDecide(status); got != want {
			t.Errorf("CanDecide(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestCanRaisePO(t *testing.T) {
	if CanRaisePO(models.IndentStatusPending) {
		t.Error("pending indent must not produce a PO")
	}
	if !CanRaisePO(models.IndentStatusApproved) {
		t.Error("approved indent must produce a PO")
	}
	if CanRaisePO(models.IndentStatusPOCreated) {
		t.Error("an indent already consumed by a PO must not produce another")
	}
	if CanRaisePO(models.IndentStatusRejected) {
		t.Error("rejected indent must not produce a PO")
	}
}

func TestPOLineTotal(t *testing.T) {
	price := decimal.NewFromInt(250)
	tax := decimal.NewFromInt(45)
	got := POLineTotal(3, price, tax)
	want := decimal.NewFromInt(795) // 3*250 + 45
	if !got.Equal(want) {
		t.Errorf("POLineTotal(3, 250, 45) = %s, want %s", got, want)
	}
}
