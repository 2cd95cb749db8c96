package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeProfitMargin(t *testing.T) {
	cases := []struct {
		name    string
		cost    string
		selling string
		want    string
	}{
		{"half margin", "50", "100", "50"},
		{"quarter margin", "75", "100", "25"},
		{"rounded to two places", "1", "3", "66.67"},
		{"zero selling price", "10", "0", "0"},
		{"selling below cost goes negative", "120", "100", "-20"},
		{"free item", "0", "100", "100"},
	}
	for _, c := range cases {
		cost, _ := decimal.NewFromString(c.cost)
		selling, _ := decimal.NewFromString(c.selling)
		want, _ := decimal.NewFromString(c.want)
		got := ComputeProfitMargin(cost, selling)
		if !got.Equal(want) {
			t.Errorf("%s: ComputeProfitMargin(%s, %s) = %s, want %s", c.name, c.cost, c.selling, got, c.want)
		}
	}
}
