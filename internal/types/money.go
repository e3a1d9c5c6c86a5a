// README: Money value object shared by the trip context and budget figures.
package types

import "strconv"

// Money is a whole amount in the unit named by Currency, which holds a
// display symbol or code ("$", "€", "IDR").
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// String renders the amount prefixed with its currency, e.g. "$1000".
func (m Money) String() string {
	return m.Currency + strconv.FormatInt(m.Amount, 10)
}
