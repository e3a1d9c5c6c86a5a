// README: Response synthesizers, one per response type, and the Respond entry point.
package assistant

import (
	"fmt"
	"strings"

	"tripmate/internal/types"
)

const (
	defaultCurrency     = "$"
	defaultTripDuration = "5 days"
	fallbackDestination = "Your Destination"
	weekendLabel        = "Weekend"
)

const (
	greetingReply = "Hi! I'm your travel assistant. Tell me where you'd like to go and I'll start planning."
	assistReply   = "I can plan trips, compare places to stay and build day-by-day itineraries. Where would you like to go?"
)

type synthInput struct {
	text   string
	params ExtractedParameters
	prior  *TripContext
	days   int
}

type synthesis struct {
	reply    string
	snapshot *TripContext
	payload  ResponsePayload
}

type synthesizer func(in synthInput) synthesis

var synthesizers = map[ResponseType]synthesizer{
	TypeTripPlan:        synthTripPlan,
	TypeDestinationInfo: synthDestinationInfo,
	TypeTripEdit:        synthTripEdit,
	TypeItinerary:       synthItinerary,
	TypeGeneralAssist:   synthGeneralAssist,
	TypeGreeting:        synthGreeting,
}

// Respond runs one turn through extraction, classification and synthesis.
// It is total: every non-empty message yields a reply and a payload.
func Respond(turn Turn) TurnResult {
	var prior *TripContext
	if turn.TripSnapshot != nil {
		c := turn.TripSnapshot.Normalize()
		prior = &c
	}
	params := Extract(turn.Message)
	d := Classify(turn.Message, prior, turn.ActionID, params)

	s := synthesizers[d.Type](synthInput{
		text:   strings.ToLower(turn.Message),
		params: params,
		prior:  prior,
		days:   d.Days,
	})
	payload := s.payload
	return TurnResult{
		Reply: s.reply,
		Data: &TurnData{
			TripSnapshot:  s.snapshot,
			ResponseBlock: &payload,
		},
	}
}

func synthTripPlan(in synthInput) synthesis {
	p := in.params
	dest := p.Destination.Name

	currency := defaultCurrency
	switch {
	case p.Budget != nil && p.Budget.Symbol != "":
		currency = p.Budget.Symbol
	case p.Destination.CurrencyHint != "":
		currency = p.Destination.CurrencyHint
	}

	duration := durationLabel(p.Duration)
	meta := &TripMeta{
		Destination:    dest,
		Duration:       duration,
		Currency:       currency,
		BudgetEstimate: strPtr(""),
	}
	if p.Budget != nil {
		meta.BudgetEstimate = strPtr(p.Budget.String())
	}
	if p.Travelers != nil {
		meta.Travelers = p.Travelers.Label
	}
	if p.Dates != nil {
		meta.Dates = *p.Dates
	}

	sections := renderAll(planSections, dest, currency)
	var style *string
	if p.Destination.Source == SourceSpecial {
		sections = renderAll(santoriniSections, dest, currency)
		meta.BudgetEstimate = strPtr(santoriniBudget)
		style = strPtr("luxury")
	}

	snapshot := &TripContext{
		Destination: strPtr(dest),
		Duration:    strPtr(duration),
		TravelStyle: style,
	}
	if p.Budget != nil {
		snapshot.Budget = &types.Money{Amount: p.Budget.Value(), Currency: currency}
	}

	return synthesis{
		reply:    fmt.Sprintf("Here's a starting plan for %s. I've pulled together flights, places to stay and things to do.", dest),
		snapshot: snapshot,
		payload: ResponsePayload{
			Type:     TypeTripPlan,
			Summary:  fmt.Sprintf("%s trip for %s", duration, dest),
			TripMeta: meta,
			Sections: sections,
			Actions: []Action{{
				Label:    "Build a day-by-day itinerary",
				ActionID: ActionCreateItinerary,
				Style:    StyleSecondary,
				Payload:  map[string]string{"destination": dest, "duration": duration},
			}},
		},
	}
}

func synthDestinationInfo(in synthInput) synthesis {
	dest := in.params.Destination.Name
	currency := in.params.Destination.CurrencyHint
	if currency == "" {
		currency = defaultCurrency
	}
	return synthesis{
		reply:    fmt.Sprintf("Here's a quick look at %s. Want me to turn it into a full trip plan?", dest),
		snapshot: &TripContext{Destination: strPtr(dest)},
		payload: ResponsePayload{
			Type:     TypeDestinationInfo,
			Summary:  fmt.Sprintf("Highlights and food in %s", dest),
			TripMeta: &TripMeta{Destination: dest, Currency: currency},
			Sections: renderAll(infoSections, dest, currency),
			Actions: []Action{{
				Label:    "Plan a trip to " + dest,
				ActionID: ActionPlanTrip,
				Style:    StylePrimary,
				Payload:  map[string]string{"destination": dest},
			}},
		},
	}
}

// synthTripEdit builds a partial payload: a replacement lodging section and
// a trip metadata patch. Callers merge it onto the previously rendered block.
func synthTripEdit(in synthInput) synthesis {
	snapshot := cloneContext(in.prior)
	dest := fallbackDestination
	if snapshot.Destination != nil {
		dest = *snapshot.Destination
	}
	currency := defaultCurrency
	if snapshot.Budget != nil && snapshot.Budget.Currency != "" {
		currency = snapshot.Budget.Currency
	}

	cheap := strings.Contains(in.text, "cheap")
	lodging, amount, style := comfortLodging, int64(comfortEditBudget), "comfort"
	if cheap {
		lodging, amount, style = cheapLodging, cheapEditBudget, "budget"
	}
	budget := types.Money{Amount: amount, Currency: currency}
	snapshot.Budget = &budget
	snapshot.TravelStyle = strPtr(style)

	meta := &TripMeta{
		Destination:    dest,
		Currency:       currency,
		BudgetEstimate: strPtr(budget.String()),
	}
	if snapshot.Duration != nil {
		meta.Duration = *snapshot.Duration
	}
	if snapshot.Dates.Start != nil {
		meta.StartDate = *snapshot.Dates.Start
	}

	reply := fmt.Sprintf("I've updated the places to stay in %s.", dest)
	if cheap {
		reply = fmt.Sprintf("I've swapped in cheaper places to stay in %s.", dest)
	}
	return synthesis{
		reply:    reply,
		snapshot: snapshot,
		payload: ResponsePayload{
			Type:     TypeTripEdit,
			Summary:  fmt.Sprintf("Updated stays in %s (%s budget)", dest, style),
			TripMeta: meta,
			Sections: []Section{lodging.render(dest, currency)},
		},
	}
}

func synthItinerary(in synthInput) synthesis {
	snapshot := cloneContext(in.prior)

	// A whole-message guess never beats a destination already in context.
	dest := fallbackDestination
	switch {
	case in.params.Destination != nil && !in.params.Destination.Guessed():
		dest = in.params.Destination.Name
	case snapshot.Destination != nil:
		dest = *snapshot.Destination
	}

	currency := defaultCurrency
	if c, ok := CurrencyFor(dest); ok {
		currency = c
	}
	if snapshot.Budget != nil && snapshot.Budget.Currency != "" {
		currency = snapshot.Budget.Currency
	}

	estimate := types.Money{Amount: defaultItineraryBudget, Currency: currency}
	if snapshot.Budget != nil {
		estimate = types.Money{Amount: snapshot.Budget.Amount, Currency: currency}
	}

	days := make([]ItineraryDay, in.days)
	for i := range days {
		days[i] = itineraryDay(i+1, dest, currency)
	}

	duration := fmt.Sprintf("%d days", in.days)
	if in.days == 1 {
		duration = "1 day"
	}
	meta := &TripMeta{
		Destination:    dest,
		Duration:       duration,
		Currency:       currency,
		BudgetEstimate: strPtr(estimate.String()),
	}
	if snapshot.Dates.Start != nil {
		meta.StartDate = *snapshot.Dates.Start
	}

	if dest != fallbackDestination {
		snapshot.Destination = strPtr(dest)
	}
	snapshot.Duration = strPtr(duration)

	return synthesis{
		reply:    fmt.Sprintf("Here's a %d-day itinerary for %s.", in.days, dest),
		snapshot: snapshot,
		payload: ResponsePayload{
			Type:     TypeItinerary,
			Summary:  fmt.Sprintf("%s in %s, day by day", duration, dest),
			TripMeta: meta,
			Days:     days,
		},
	}
}

func synthGeneralAssist(synthInput) synthesis {
	return synthesis{
		reply: assistReply,
		payload: ResponsePayload{
			Type:    TypeGeneralAssist,
			Summary: "Here's what I can help with",
			Actions: starterActions(),
		},
	}
}

func synthGreeting(synthInput) synthesis {
	return synthesis{
		reply: greetingReply,
		payload: ResponsePayload{
			Type:    TypeGreeting,
			Summary: "Welcome",
			Actions: starterActions(),
		},
	}
}

func starterActions() []Action {
	return []Action{
		{Label: "Start planning", ActionID: ActionStartPlanning, Style: StylePrimary},
		{Label: "Explore destinations", ActionID: ActionExplore, Style: StyleSecondary},
	}
}

func durationLabel(d *Duration) string {
	switch {
	case d == nil:
		return defaultTripDuration
	case d.Weekend:
		return weekendLabel
	case d.Days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", d.Days)
	}
}

// cloneContext copies c so a synthesizer can patch it without aliasing the
// caller's snapshot. A nil context yields an empty one.
func cloneContext(c *TripContext) *TripContext {
	if c == nil {
		return &TripContext{}
	}
	out := *c
	if c.Budget != nil {
		b := *c.Budget
		out.Budget = &b
	}
	return &out
}
