// README: Fixed destination gazetteer (aliases -> canonical name + native currency).
package assistant

import "strings"

// Place is one gazetteer row. Aliases are lowercase substrings.
type Place struct {
	Name     string   `json:"name"`
	Aliases  []string `json:"aliases"`
	Currency string   `json:"currency"`
}

// Table order is the tie-break when several rows match one message.
var gazetteer = []Place{
	{Name: "Paris", Aliases: []string{"paris", "france"}, Currency: "€"},
	{Name: "Tokyo", Aliases: []string{"tokyo", "japan"}, Currency: "¥"},
	{Name: "Bali", Aliases: []string{"bali", "indonesia"}, Currency: "IDR"},
	{Name: "New York", Aliases: []string{"new york", "nyc", "manhattan"}, Currency: "$"},
	{Name: "London", Aliases: []string{"london", "england"}, Currency: "£"},
	{Name: "Barcelona", Aliases: []string{"barcelona", "spain"}, Currency: "€"},
	{Name: "Rome", Aliases: []string{"rome", "italy"}, Currency: "€"},
	{Name: "Dubai", Aliases: []string{"dubai", "uae", "emirates"}, Currency: "AED"},
	{Name: "Bangkok", Aliases: []string{"bangkok", "thailand"}, Currency: "฿"},
	{Name: "Cape Town", Aliases: []string{"cape town", "south africa"}, Currency: "R"},
	{Name: "Vienna", Aliases: []string{"vienna", "austria"}, Currency: "€"},
	{Name: "Lagos", Aliases: []string{"lagos", "nigeria"}, Currency: "₦"},
}

const (
	santoriniAlias    = "santorini"
	santoriniName     = "Santorini"
	santoriniCurrency = "€"
)

// Places returns a copy of the gazetteer in table order.
func Places() []Place {
	out := make([]Place, len(gazetteer))
	for i, p := range gazetteer {
		p.Aliases = append([]string(nil), p.Aliases...)
		out[i] = p
	}
	return out
}

// CurrencyFor returns the native currency of a known destination, matched
// case-insensitively on the canonical name. ok is false for unknown names.
func CurrencyFor(name string) (string, bool) {
	if strings.EqualFold(name, santoriniName) {
		return santoriniCurrency, true
	}
	for _, p := range gazetteer {
		if strings.EqualFold(name, p.Name) {
			return p.Currency, true
		}
	}
	return "", false
}
