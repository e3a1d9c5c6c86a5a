// README: Entity extractors (duration, travelers, dates, budget, destination) as ordered rule chains.
package assistant

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultBudgetAmount is used when a budget expression carries no digits.
const DefaultBudgetAmount = 5000

// messageGuessMaxLen bounds the whole-message destination fallback.
const messageGuessMaxLen = 50

// rule pairs a pattern with the renderer for its submatches. Rules in a
// chain are tried in order and the first match wins.
type rule[T any] struct {
	pattern *regexp.Regexp
	render  func(m []string) T
}

func firstMatch[T any](text string, rules []rule[T]) (T, bool) {
	for _, r := range rules {
		if m := r.pattern.FindStringSubmatch(text); m != nil {
			return r.render(m), true
		}
	}
	var zero T
	return zero, false
}

const (
	monthPattern   = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`
	dayPattern     = `(\d{1,2})(?:st|nd|rd|th)?`
	amountPattern  = `(\d+(?:,\d{3})*)(k)?`
	currencyWords  = `(dollars|usd|euros|eur|pounds|gbp|yen|jpy|naira|ngn)`
	currencySymbol = `([$€£¥₦])`
)

var (
	durationPattern = regexp.MustCompile(`(\d+)\s*-?\s*days?\b`)
	travelerCount   = regexp.MustCompile(`\b(\d+)\s*(?:people|travelers|pax)\b`)
	travelerWord    = regexp.MustCompile(`\b(couple|family|solo)\b`)
	tripPhrase      = regexp.MustCompile(`\b(?:trip|headed)\s+to\s+(.+?)(?:\s+(?:starting|for|with)\b|$)`)
	greetingWord    = regexp.MustCompile(`\b(?:hello|hi|hey)\b`)
)

// trimChars are stripped from the ends of phrase and message guesses.
const trimChars = ".,!?;:'\""

var dateRules = []rule[string]{
	{
		pattern: regexp.MustCompile(`\b` + monthPattern + `\s+` + dayPattern + `\s*(?:-|–|to)\s*` + dayPattern + `\b`),
		render: func(m []string) string {
			return shortMonth(m[1]) + " " + m[2] + "-" + m[3]
		},
	},
	{
		pattern: regexp.MustCompile(`\b(?:starting|from|on)\s+` + monthPattern + `\s+` + dayPattern + `\b`),
		render: func(m []string) string {
			return "Starting " + shortMonth(m[1]) + " " + m[2]
		},
	},
	{
		pattern: regexp.MustCompile(`\bin\s+` + monthPattern + `\b`),
		render: func(m []string) string {
			return "in " + capitalize(m[1])
		},
	},
}

var wordCurrency = map[string]string{
	"dollars": "$",
	"usd":     "$",
	"euros":   "€",
	"eur":     "€",
	"pounds":  "£",
	"gbp":     "£",
	"yen":     "¥",
	"jpy":     "¥",
	"naira":   "₦",
	"ngn":     "₦",
}

var (
	symbolBudget     = regexp.MustCompile(currencySymbol + `\s*` + amountPattern)
	wordBudget       = regexp.MustCompile(`\b` + amountPattern + `\s*` + currencyWords + `\b`)
	contextualBudget = regexp.MustCompile(`\bbudget\s+(?:of\s+)?` + amountPattern)
)

// budgetRules builds the budget chain. The contextual rule falls back to
// the destination's native currency, so destination extraction must run first.
func budgetRules(dest *Destination) []rule[Budget] {
	contextSymbol := "$"
	if dest != nil && dest.CurrencyHint != "" {
		contextSymbol = dest.CurrencyHint
	}
	return []rule[Budget]{
		{
			pattern: symbolBudget,
			render: func(m []string) Budget {
				return Budget{Symbol: m[1], Amount: m[2] + m[3]}
			},
		},
		{
			pattern: wordBudget,
			render: func(m []string) Budget {
				return Budget{Symbol: wordCurrency[m[3]], Amount: m[1] + m[2]}
			},
		},
		{
			pattern: contextualBudget,
			render: func(m []string) Budget {
				return Budget{Symbol: contextSymbol, Amount: m[1] + m[2]}
			},
		},
	}
}

// Extract runs every extractor over the message. Destination runs before
// budget because the contextual budget rule depends on it.
func Extract(message string) ExtractedParameters {
	dest := ExtractDestination(message)
	return ExtractedParameters{
		Destination: dest,
		Duration:    ExtractDuration(message),
		Travelers:   ExtractTravelers(message),
		Dates:       ExtractDates(message),
		Budget:      ExtractBudget(message, dest),
	}
}

// ExtractDuration matches "<n> day(s)". A bare "weekend" yields a Duration
// with Weekend set so the caller can choose its own fallback.
func ExtractDuration(message string) *Duration {
	text := strings.ToLower(message)
	if m := durationPattern.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			n = math.MaxInt32
		}
		return &Duration{Days: n}
	}
	if strings.Contains(text, "weekend") {
		return &Duration{Weekend: true}
	}
	return nil
}

// ExtractTravelers returns a display label: a count, "2" for couple, "1"
// for solo, and the literal "family" which has no canonical headcount.
func ExtractTravelers(message string) *Travelers {
	text := strings.ToLower(message)
	if m := travelerCount.FindStringSubmatch(text); m != nil {
		return &Travelers{Label: m[1]}
	}
	if m := travelerWord.FindStringSubmatch(text); m != nil {
		switch m[1] {
		case "couple":
			return &Travelers{Label: "2"}
		case "solo":
			return &Travelers{Label: "1"}
		default:
			return &Travelers{Label: m[1]}
		}
	}
	return nil
}

// ExtractDates renders the first matching date expression: a range
// ("Aug 6-12"), a start ("Starting Aug 6") or a month ("in August").
func ExtractDates(message string) *string {
	if s, ok := firstMatch(strings.ToLower(message), dateRules); ok {
		return &s
	}
	return nil
}

// ExtractBudget returns the first budget expression in precedence order:
// symbol-prefixed, word-suffixed, then contextual.
func ExtractBudget(message string, dest *Destination) *Budget {
	if b, ok := firstMatch(strings.ToLower(message), budgetRules(dest)); ok {
		return &b
	}
	return nil
}

// ExtractDestination resolves a destination candidate through the special
// case, the gazetteer, the "trip to" phrase and finally the whole message.
func ExtractDestination(message string) *Destination {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return nil
	}
	if strings.Contains(text, santoriniAlias) {
		return &Destination{Name: santoriniName, CurrencyHint: santoriniCurrency, Source: SourceSpecial}
	}
	for _, p := range gazetteer {
		for _, alias := range p.Aliases {
			if strings.Contains(text, alias) {
				return &Destination{Name: p.Name, CurrencyHint: p.Currency, Source: SourceGazetteer}
			}
		}
	}
	if m := tripPhrase.FindStringSubmatch(text); m != nil {
		if name := titleCase(strings.Trim(m[1], trimChars)); name != "" {
			return &Destination{Name: name, Source: SourcePhrase}
		}
	}
	if utf8.RuneCountInString(text) < messageGuessMaxLen &&
		!strings.Contains(text, "help") &&
		!strings.Contains(text, "hello") &&
		!greetingWord.MatchString(text) {
		if name := titleCase(strings.Trim(text, trimChars)); name != "" {
			return &Destination{Name: name, Source: SourceMessage}
		}
	}
	return nil
}

// Value parses the amount. Non-digits are stripped, a trailing "k" scales
// by a thousand, and anything unparseable yields DefaultBudgetAmount.
func (b Budget) Value() int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, b.Amount)
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return DefaultBudgetAmount
	}
	if strings.HasSuffix(strings.ToLower(b.Amount), "k") && n <= math.MaxInt64/1000 {
		n *= 1000
	}
	return n
}

func (b Budget) String() string {
	return b.Symbol + b.Amount
}

func shortMonth(month string) string {
	if len(month) > 3 {
		month = month[:3]
	}
	return capitalize(month)
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}

func titleCase(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
