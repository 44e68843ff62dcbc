package calculator

import (
	"math"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "¥0"},
		{150, "¥150"},
		{1500, "¥1,500"},
		{1234567, "¥1,234,567"},
		{-300, "-¥300"},
		{math.MaxInt64, "¥9,223,372,036,854,775,807"},
		{math.MinInt64, "-¥9,223,372,036,854,775,808"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatCurrency(tt.amount); got != tt.want {
				t.Errorf("FormatCurrency(%d) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	settled := SettlementStatus{}
	if got := Summary(settled); got != "Settled up!" {
		t.Errorf("Summary(settled) = %q", got)
	}

	one := SettlementStatus{
		NeedsSettlement:        true,
		SettlementTransactions: []SettlementTransaction{{Amount: 150}},
	}
	if got, want := Summary(one), "1 transfer to settle (total ¥150)"; got != want {
		t.Errorf("Summary(one) = %q, want %q", got, want)
	}

	many := SettlementStatus{
		NeedsSettlement:        true,
		SettlementTransactions: []SettlementTransaction{{Amount: 1000}, {Amount: 500}},
	}
	if got, want := Summary(many), "2 transfers to settle (total ¥1,500)"; got != want {
		t.Errorf("Summary(many) = %q, want %q", got, want)
	}
}
