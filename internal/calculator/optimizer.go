package calculator

import (
	"math"
	"sort"
)

// Party identifies one side of a transfer.
type Party struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Image  string `json:"image,omitempty"`
}

// SettlementTransaction is a proposed transfer from a debtor to a creditor.
type SettlementTransaction struct {
	From   Party `json:"from"`
	To     Party `json:"to"`
	Amount int64 `json:"amount"`
}

// CalculateOptimalSettlement proposes transfers that bring every balance to zero.
//
// Greedy matching: creditors sorted by descending balance, debtors by ascending
// balance (most negative first). Each step moves min(credit, debt) from the
// current debtor to the current creditor and advances whichever side is within
// Epsilon of zero. Amounts are rounded to whole currency units per transfer.
//
// The input is not modified.
func CalculateOptimalSettlement(balances []MemberBalance) []SettlementTransaction {
	var creditors, debtors []MemberBalance
	for _, b := range balances {
		if b.Balance > Epsilon {
			creditors = append(creditors, b)
		} else if b.Balance < -Epsilon {
			debtors = append(debtors, b)
		}
	}

	sort.SliceStable(creditors, func(a, b int) bool {
		if creditors[a].Balance != creditors[b].Balance {
			return creditors[a].Balance > creditors[b].Balance
		}
		return creditors[a].UserID < creditors[b].UserID
	})
	sort.SliceStable(debtors, func(a, b int) bool {
		if debtors[a].Balance != debtors[b].Balance {
			return debtors[a].Balance < debtors[b].Balance
		}
		return debtors[a].UserID < debtors[b].UserID
	})

	var transactions []SettlementTransaction
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := math.Min(creditor.Balance, math.Abs(debtor.Balance))

		// Fractions under half a unit round to nothing and are not emitted.
		if rounded := math.Round(amount); rounded >= 1 {
			transactions = append(transactions, SettlementTransaction{
				From:   partyOf(debtor),
				To:     partyOf(creditor),
				Amount: int64(rounded),
			})
		}

		creditor.Balance -= amount
		debtor.Balance += amount

		if math.Abs(creditor.Balance) < Epsilon {
			i++
		}
		if math.Abs(debtor.Balance) < Epsilon {
			j++
		}
	}

	return transactions
}

func partyOf(b *MemberBalance) Party {
	return Party{UserID: b.UserID, Name: b.Name, Image: b.Image}
}
