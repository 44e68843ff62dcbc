package calculator

// Epsilon is the tolerance under which a balance counts as settled.
const Epsilon = 0.01

// UnknownName is shown for members without a display name.
const UnknownName = "Unknown User"

// Member is a wallet member as seen by the calculator.
type Member struct {
	UserID string
	Name   string
	Image  string
}

// Participant is one member's share of a payment.
type Participant struct {
	UserID string
	Amount int64
}

// PaymentInput represents a payment with the minimal information needed for balance calculations.
// Participant amounts are expected to sum to Amount; this is checked before the
// payment is stored, not here.
type PaymentInput struct {
	PayerID      string
	Amount       int64
	Participants []Participant
}

// MemberBalance represents the balance information for one wallet member.
type MemberBalance struct {
	UserID    string  `json:"userId"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	TotalPaid float64 `json:"totalPaid"` // Sum of payments made as payer
	TotalOwed float64 `json:"totalOwed"` // Sum of participant shares
	Balance   float64 `json:"balance"`   // Positive = is owed money, Negative = owes money
}

// SettlementForBalance represents a settlement with the minimal information needed to
// offset balances.
type SettlementForBalance struct {
	FromUserID string // Who paid (debtor settling up)
	ToUserID   string // Who received (creditor being paid)
	Amount     int64
}

// CalculateMemberBalances computes one balance per member from the wallet's payments.
//
// Algorithm:
//   - Every member starts at zero
//   - For each payment: payer's total_paid += amount, each participant's total_owed += share
//   - balance = total_paid - total_owed
//
// Payers or participants that are not in members are ignored. The result follows
// the order of members; duplicate member IDs are collapsed into the first entry.
func CalculateMemberBalances(members []Member, payments []PaymentInput) []MemberBalance {
	balances := make([]MemberBalance, 0, len(members))
	index := make(map[string]int, len(members))

	for _, m := range members {
		if _, exists := index[m.UserID]; exists {
			continue
		}
		name := m.Name
		if name == "" {
			name = UnknownName
		}
		index[m.UserID] = len(balances)
		balances = append(balances, MemberBalance{
			UserID: m.UserID,
			Name:   name,
			Image:  m.Image,
		})
	}

	for _, p := range payments {
		if i, ok := index[p.PayerID]; ok {
			balances[i].TotalPaid += float64(p.Amount)
		}
		for _, part := range p.Participants {
			if i, ok := index[part.UserID]; ok {
				balances[i].TotalOwed += float64(part.Amount)
			}
		}
	}

	for i := range balances {
		balances[i].Balance = balances[i].TotalPaid - balances[i].TotalOwed
	}

	return balances
}

// SettlementOffsets turns completed settlements into synthetic payments: the
// debtor is recorded as having paid the amount with the creditor as the sole
// participant. Appending the result to a wallet's payments makes confirmed
// transfers reduce the outstanding balances.
func SettlementOffsets(settlements []SettlementForBalance) []PaymentInput {
	offsets := make([]PaymentInput, 0, len(settlements))
	for _, s := range settlements {
		if s.Amount <= 0 || s.FromUserID == s.ToUserID {
			continue
		}
		offsets = append(offsets, PaymentInput{
			PayerID:      s.FromUserID,
			Amount:       s.Amount,
			Participants: []Participant{{UserID: s.ToUserID, Amount: s.Amount}},
		})
	}
	return offsets
}
