// Package format holds the pure display helpers shared by every screen.
package format

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// Currency renders an amount as a localized two-decimal dollar string.
func Currency(amount float64) string {
	return currencyPrinter.Sprintf("$%v",
		number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// DueDateLabel maps a due date to a relative label: Today, Tomorrow,
// "In N days" for N in [2,7], and an absolute date beyond that. Day distance
// is ceil((target-now)/24h), so a target earlier today still reads Today.
func DueDateLabel(target, now time.Time) string {
	days := int(math.Ceil(target.Sub(now).Hours() / 24))

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days <= 7:
		return fmt.Sprintf("In %d days", days)
	default:
		return target.Format("Jan 2, 2006")
	}
}
