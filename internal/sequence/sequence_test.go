package sequence

import (
	"fmt"
	"testing"
)

func TestFormatCode(t *testing.T) {
	cases := []struct {
		prefix string
		n      int64
		width  int
		want   string
	}{
		{"IND", 1, 3, "IND-001"},
		{"IND", 42, 3, "IND-042"},
		{"IND", 1000, 3, "IND-1000"},
		{"CUST", 1, 4, "CUST-0001"},
		{"PO", 17, 4, "PO-0017"},
		{"SO", 9999, 4, "SO-9999"},
		{"SO", 10000, 4, "SO-10000"},
	}
	for _, c := range cases {
		if got := FormatCode(c.prefix, c.n, c.width); got != c.want {
			t.Errorf("FormatCode(%q, %d, %d) = %q, want %q", c.prefix, c.n, c.width, got, c.want)
		}
	}
}

func TestFormatCodeSerialRun(t *testing.T) {
	// N serial allocations must yield IND-001 .. IND-00N with no gaps.
	for i := int64(1); i <= 12; i++ {
		want := fmt.Sprintf("IND-%03d", i)
		if got := FormatCode("IND", i, 3); got != want {
			t.Fatalf("allocation %d = %q, want %q", i, got, want)
		}
	}
}
