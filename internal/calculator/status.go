package calculator

import "sort"

// Ledger is a consistent snapshot of one wallet's members and payments.
type Ledger struct {
	Members  []Member
	Payments []PaymentInput

	// Offsets move balances like payments but are not counted as expenses.
	// See SettlementOffsets.
	Offsets []PaymentInput
}

// MemberStat is a member balance enriched with activity counts.
type MemberStat struct {
	MemberBalance
	ParticipationCount int `json:"participationCount"` // Payments this member has a share in
	PaymentCount       int `json:"paymentCount"`       // Payments this member paid for
}

// SettlementStatus is the full settlement picture of a wallet.
type SettlementStatus struct {
	MemberBalances         []MemberStat            `json:"memberBalances"`
	SettlementTransactions []SettlementTransaction `json:"settlementTransactions"`
	NeedsSettlement        bool                    `json:"needsSettlement"`
	TotalExpenses          int64                   `json:"totalExpenses"`
	TotalMembers           int                     `json:"totalMembers"`
	TotalPayments          int                     `json:"totalPayments"`
}

// GetSettlementStatus runs the balance calculator and the optimizer over a ledger
// and aggregates the results. TotalMembers and TotalPayments count the raw input;
// offsets only affect balances and transactions.
func GetSettlementStatus(ledger Ledger) SettlementStatus {
	flows := ledger.Payments
	if len(ledger.Offsets) > 0 {
		flows = append(append([]PaymentInput(nil), ledger.Payments...), ledger.Offsets...)
	}
	balances := CalculateMemberBalances(ledger.Members, flows)
	transactions := CalculateOptimalSettlement(balances)

	var totalExpenses int64
	paid := make(map[string]int)
	participated := make(map[string]int)
	for _, p := range ledger.Payments {
		totalExpenses += p.Amount
		paid[p.PayerID]++

		seen := make(map[string]bool, len(p.Participants))
		for _, part := range p.Participants {
			if !seen[part.UserID] {
				seen[part.UserID] = true
				participated[part.UserID]++
			}
		}
	}

	stats := make([]MemberStat, len(balances))
	for i, b := range balances {
		stats[i] = MemberStat{
			MemberBalance:      b,
			ParticipationCount: participated[b.UserID],
			PaymentCount:       paid[b.UserID],
		}
	}

	if transactions == nil {
		transactions = []SettlementTransaction{}
	}

	return SettlementStatus{
		MemberBalances:         stats,
		SettlementTransactions: transactions,
		NeedsSettlement:        len(transactions) > 0,
		TotalExpenses:          totalExpenses,
		TotalMembers:           len(ledger.Members),
		TotalPayments:          len(ledger.Payments),
	}
}

// SortByBalance orders member stats by descending balance, ties by name.
func SortByBalance(stats []MemberStat) {
	sort.SliceStable(stats, func(a, b int) bool {
		if stats[a].Balance != stats[b].Balance {
			return stats[a].Balance > stats[b].Balance
		}
		return stats[a].Name < stats[b].Name
	})
}
