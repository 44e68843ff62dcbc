package calculator

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Japanese)

// FormatCurrency renders a yen amount with digit grouping, e.g. ¥1,500.
func FormatCurrency(amount int64) string {
	if amount < 0 {
		// Negate in uint64 so math.MinInt64 does not overflow.
		return "-¥" + printer.Sprintf("%d", uint64(-(amount+1))+1)
	}
	return "¥" + printer.Sprintf("%d", amount)
}

// Summary returns a one-line description of what it takes to settle the wallet.
func Summary(status SettlementStatus) string {
	if !status.NeedsSettlement {
		return "Settled up!"
	}

	var total int64
	for _, t := range status.SettlementTransactions {
		total += t.Amount
	}

	count := len(status.SettlementTransactions)
	noun := "transfers"
	if count == 1 {
		noun = "transfer"
	}
	return fmt.Sprintf("%d %s to settle (total %s)", count, noun, FormatCurrency(total))
}
