package customers

import (
	"testing"

	"stockdesk-backend/internal/models"
)

func TestDefaultAddresses(t *testing.T) {
	general := models.Address{Street: "12 Main Rd", City: "Pune", State: "MH", Pincode: "411001", Country: "IN"}
	other := models.Address{Street: "Warehouse Gate 3", City: "Mumbai", State: "MH", Pincode: "400001", Country: "IN"}

	t.Run("both omitted fall back to general", func(t *testing.T) {
		b, s := defaultAddresses(general, nil, nil)
		if b != general || s != general {
			t.Errorf("expected general address for both, got billing=%+v shipping=%+v", b, s)
		}
	})

	t.Run("empty structs also fall back", func(t *testing.T) {
		empty := models.Address{}
		b, s := defaultAddresses(general, &empty, &empty)
		if b != general || s != general {
			t.Error("zero-value addresses must default to the general address")
		}
	})

	t.Run("explicit addresses are kept", func(t *testing.T) {
		b, s := defaultAddresses(general, &other, &other)
		if b != other || s != other {
			t.Error("explicit billing/shipping must not be overwritten")
		}
	})

	t.Run("mixed", func(t *testing.T) {
		b, s := defaultAddresses(general, &other, nil)
		if b != other {
			t.Error("billing should keep its explicit value")
		}
		if s != general {
			t.Error("shipping should default to general")
		}
	})
}
