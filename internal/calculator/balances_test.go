package calculator

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func threeMembers() []Member {
	return []Member{
		{UserID: "A", Name: "Alice"},
		{UserID: "B", Name: "Bob"},
		{UserID: "C", Name: "Charlie"},
	}
}

func TestCalculateMemberBalances(t *testing.T) {
	tests := []struct {
		name         string
		members      []Member
		payments     []PaymentInput
		validateFunc func(t *testing.T, balances []MemberBalance)
	}{
		{
			name:     "no payments - all zero",
			members:  threeMembers(),
			payments: nil,
			validateFunc: func(t *testing.T, balances []MemberBalance) {
				if len(balances) != 3 {
					t.Fatalf("got %d balances, want 3", len(balances))
				}
				for _, b := range balances {
					if b.TotalPaid != 0 || b.TotalOwed != 0 || b.Balance != 0 {
						t.Errorf("%s = %+v, want all zero", b.UserID, b)
					}
				}
			},
		},
		{
			name:    "two payments split three ways",
			members: threeMembers(),
			payments: []PaymentInput{
				{PayerID: "A", Amount: 300, Participants: []Participant{{"A", 100}, {"B", 100}, {"C", 100}}},
				{PayerID: "B", Amount: 150, Participants: []Participant{{"A", 50}, {"B", 50}, {"C", 50}}},
			},
			validateFunc: func(t *testing.T, balances []MemberBalance) {
				want := map[string][3]float64{
					"A": {300, 150, 150},
					"B": {150, 150, 0},
					"C": {0, 150, -150},
				}
				for _, b := range balances {
					w := want[b.UserID]
					if b.TotalPaid != w[0] || b.TotalOwed != w[1] || b.Balance != w[2] {
						t.Errorf("%s = (%v, %v, %v), want %v", b.UserID, b.TotalPaid, b.TotalOwed, b.Balance, w)
					}
				}
			},
		},
		{
			name:    "self payment nets to zero",
			members: []Member{{UserID: "A", Name: "Alice"}},
			payments: []PaymentInput{
				{PayerID: "A", Amount: 100, Participants: []Participant{{"A", 100}}},
			},
			validateFunc: func(t *testing.T, balances []MemberBalance) {
				if balances[0].Balance != 0 {
					t.Errorf("balance = %v, want 0", balances[0].Balance)
				}
				if balances[0].TotalPaid != 100 {
					t.Errorf("totalPaid = %v, want 100", balances[0].TotalPaid)
				}
			},
		},
		{
			name:    "unknown payer and participant are ignored",
			members: []Member{{UserID: "A", Name: "Alice"}, {UserID: "B", Name: "Bob"}},
			payments: []PaymentInput{
				{PayerID: "GONE", Amount: 100, Participants: []Participant{{"A", 50}, {"GONE", 50}}},
				{PayerID: "B", Amount: 80, Participants: []Participant{{"A", 40}, {"LEFT", 40}}},
			},
			validateFunc: func(t *testing.T, balances []MemberBalance) {
				if balances[0].TotalOwed != 90 || balances[0].TotalPaid != 0 {
					t.Errorf("Alice = %+v, want owed 90 paid 0", balances[0])
				}
				if balances[1].TotalPaid != 80 || balances[1].TotalOwed != 0 {
					t.Errorf("Bob = %+v, want paid 80 owed 0", balances[1])
				}
			},
		},
		{
			name:    "missing name falls back",
			members: []Member{{UserID: "A", Image: "https://img/a.png"}},
			validateFunc: func(t *testing.T, balances []MemberBalance) {
				if balances[0].Name != UnknownName {
					t.Errorf("name = %q, want %q", balances[0].Name, UnknownName)
				}
				if balances[0].Image != "https://img/a.png" {
					t.Errorf("image = %q", balances[0].Image)
				}
			},
		},
		{
			name:    "duplicate member collapsed",
			members: []Member{{UserID: "A", Name: "Alice"}, {UserID: "A", Name: "Alias"}},
			validateFunc: func(t *testing.T, balances []MemberBalance) {
				if len(balances) != 1 || balances[0].Name != "Alice" {
					t.Errorf("balances = %+v, want single Alice", balances)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, CalculateMemberBalances(tt.members, tt.payments))
		})
	}
}

// randomLedger builds payments whose participant shares always sum to the amount.
func randomLedger(r *rand.Rand, members []Member, n int) []PaymentInput {
	payments := make([]PaymentInput, n)
	for i := range payments {
		payer := members[r.Intn(len(members))].UserID
		amount := int64(r.Intn(10000) + 1)

		var ids []string
		for _, m := range members {
			if r.Intn(2) == 0 {
				ids = append(ids, m.UserID)
			}
		}
		if len(ids) == 0 {
			ids = []string{payer}
		}
		shares, _ := SplitEvenly(amount, ids)
		payments[i] = PaymentInput{PayerID: payer, Amount: amount, Participants: shares}
	}
	return payments
}

func TestCalculateMemberBalances_ZeroSum(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	members := []Member{{UserID: "A"}, {UserID: "B"}, {UserID: "C"}, {UserID: "D"}, {UserID: "E"}}

	for round := 0; round < 50; round++ {
		payments := randomLedger(r, members, r.Intn(20))
		var sum float64
		for _, b := range CalculateMemberBalances(members, payments) {
			sum += b.Balance
		}
		if math.Abs(sum) > Epsilon {
			t.Fatalf("round %d: sum of balances = %v, want 0", round, sum)
		}
	}
}

func TestCalculateMemberBalances_OrderIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	members := threeMembers()
	payments := randomLedger(r, members, 12)

	first := CalculateMemberBalances(members, payments)
	again := CalculateMemberBalances(members, payments)
	if !reflect.DeepEqual(first, again) {
		t.Errorf("repeated calculation differs: %+v vs %+v", first, again)
	}

	reversed := make([]PaymentInput, len(payments))
	for i, p := range payments {
		reversed[len(payments)-1-i] = p
	}
	if got := CalculateMemberBalances(members, reversed); !reflect.DeepEqual(first, got) {
		t.Errorf("payment order changed result: %+v vs %+v", first, got)
	}
}

func TestSettlementOffsets(t *testing.T) {
	members := threeMembers()
	payments := []PaymentInput{
		{PayerID: "A", Amount: 300, Participants: []Participant{{"A", 100}, {"B", 100}, {"C", 100}}},
	}
	offsets := SettlementOffsets([]SettlementForBalance{
		{FromUserID: "B", ToUserID: "A", Amount: 100},
		{FromUserID: "C", ToUserID: "C", Amount: 100}, // self transfer dropped
		{FromUserID: "C", ToUserID: "A", Amount: 0},   // empty dropped
	})
	if len(offsets) != 1 {
		t.Fatalf("got %d offsets, want 1", len(offsets))
	}

	balances := CalculateMemberBalances(members, append(payments, offsets...))
	want := map[string]float64{"A": 100, "B": 0, "C": -100}
	for _, b := range balances {
		if b.Balance != want[b.UserID] {
			t.Errorf("%s balance = %v, want %v", b.UserID, b.Balance, want[b.UserID])
		}
	}
}
