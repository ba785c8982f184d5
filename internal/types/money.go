// README: Common money value object used across modules.
package types

import "fmt"

// Money carries an amount in cents. All guest-facing totals are EUR.
type Money struct {
	Amount   int64
	Currency string
}

func EUR(cents int64) Money {
	return Money{Amount: cents, Currency: "EUR"}
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}
}

// String renders the amount with two decimals, e.g. "6.00 EUR".
func (m Money) String() string {
	sign := ""
	a := m.Amount
	if a < 0 {
		sign = "-"
		a = -a
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, a/100, a%100, m.Currency)
}
