// README: Intent classifier; first-match priority cascade over text, prior context and extracted parameters.
package assistant

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	defaultItineraryDays = 3
	minItineraryDays     = 1
	maxItineraryDays     = 7
)

var (
	planningWord = regexp.MustCompile(`\b(?:plan|trip|itinerary|guide)`)
	leadingCount = regexp.MustCompile(`\d+`)
	editWords    = []string{"cheap", "stay", "hotel"}
)

// Decision is the classifier's verdict for one turn.
type Decision struct {
	Type ResponseType
	// Days is the clamped day count, set for ITINERARY only.
	Days int
}

// Classify selects the response shape. Rules are evaluated in order and
// the first one that matches wins.
func Classify(message string, prior *TripContext, actionID string, params ExtractedParameters) Decision {
	text := strings.ToLower(message)

	if strings.Contains(text, "itinerary") || actionID == ActionCreateItinerary {
		return Decision{Type: TypeItinerary, Days: ItineraryDays(params.Duration, prior)}
	}
	if hasContext(prior) && containsAny(text, editWords) {
		return Decision{Type: TypeTripEdit}
	}
	if params.Destination != nil {
		if params.Destination.Source == SourceSpecial ||
			planningWord.MatchString(text) ||
			params.HasTripDetail() {
			return Decision{Type: TypeTripPlan}
		}
		return Decision{Type: TypeDestinationInfo}
	}
	if !greetingWord.MatchString(text) {
		return Decision{Type: TypeGeneralAssist}
	}
	return Decision{Type: TypeGreeting}
}

// ItineraryDays resolves the itinerary length from this turn's duration,
// then the prior context's duration, then a default of 3, clamped to [1,7].
func ItineraryDays(d *Duration, prior *TripContext) int {
	days := defaultItineraryDays
	switch {
	case d != nil && !d.Weekend:
		days = d.Days
	case prior != nil && prior.Duration != nil:
		if n, ok := leadingInt(*prior.Duration); ok {
			days = n
		}
	}
	return clamp(days, minItineraryDays, maxItineraryDays)
}

// hasContext reports whether a prior context carries any known field.
func hasContext(c *TripContext) bool {
	if c == nil {
		return false
	}
	return c.Destination != nil || c.Duration != nil || c.Budget != nil ||
		c.TravelStyle != nil || c.Dates.Start != nil || c.Dates.End != nil
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func leadingInt(s string) (int, bool) {
	m := leadingCount.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		// Too many digits to fit an int; it clamps to the maximum anyway.
		return maxItineraryDays, true
	}
	return n, true
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
