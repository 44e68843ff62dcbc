package calculator

import (
	"fmt"
)

// SplitEvenly divides amount between participants in whole currency units.
// Every participant gets amount / n; the remainder is handed out one unit at a
// time to the first participants so the shares always sum to amount.
func SplitEvenly(amount int64, participantIDs []string) ([]Participant, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if len(participantIDs) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	n := int64(len(participantIDs))
	share := amount / n
	remainder := amount % n

	shares := make([]Participant, len(participantIDs))
	for i, id := range participantIDs {
		shares[i] = Participant{UserID: id, Amount: share}
		if int64(i) < remainder {
			shares[i].Amount++
		}
	}

	return shares, nil
}
