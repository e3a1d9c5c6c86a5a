// README: Turn contract types (trip context, extracted parameters, response payload).
package assistant

import (
	"strings"

	"tripmate/internal/types"
)

// ResponseType is the classified shape of a turn's structured payload.
type ResponseType string

const (
	TypeTripPlan        ResponseType = "TRIP_PLAN"
	TypeDestinationInfo ResponseType = "DESTINATION_INFO"
	TypeTripEdit        ResponseType = "TRIP_EDIT"
	TypeItinerary       ResponseType = "ITINERARY"
	TypeGeneralAssist   ResponseType = "GENERAL_ASSIST"
	TypeGreeting        ResponseType = "GREETING"
)

type SectionType string

const (
	SectionFlight    SectionType = "FLIGHT"
	SectionLodging   SectionType = "LODGING"
	SectionFood      SectionType = "FOOD"
	SectionActivity  SectionType = "ACTIVITY"
	SectionHighlight SectionType = "HIGHLIGHT"
	SectionGeneric   SectionType = "GENERIC"
)

type ActionStyle string

const (
	StylePrimary   ActionStyle = "PRIMARY"
	StyleSecondary ActionStyle = "SECONDARY"
)

// Action ids understood by the classifier or the UI.
const (
	ActionCreateItinerary = "create_itinerary"
	ActionPlanTrip        = "plan_trip"
	ActionStartPlanning   = "start_planning"
	ActionExplore         = "explore_destinations"
)

// DateRange holds ISO-like date strings. They are not validated.
type DateRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// TripContext is carried between turns by the caller. A nil field means
// "not yet known"; empty strings are never stored.
type TripContext struct {
	Destination *string      `json:"destination"`
	Dates       DateRange    `json:"dates"`
	Duration    *string      `json:"duration"`
	Budget      *types.Money `json:"budget"`
	TravelStyle *string      `json:"travelStyle"`
}

// Normalize turns empty or blank strings into absent values.
func (c TripContext) Normalize() TripContext {
	c.Destination = nonBlank(c.Destination)
	c.Dates.Start = nonBlank(c.Dates.Start)
	c.Dates.End = nonBlank(c.Dates.End)
	c.Duration = nonBlank(c.Duration)
	c.TravelStyle = nonBlank(c.TravelStyle)
	if c.Budget != nil && c.Budget.Currency == "" && c.Budget.Amount == 0 {
		c.Budget = nil
	}
	return c
}

// DestinationSource records which rule produced a destination candidate.
type DestinationSource string

const (
	SourceSpecial   DestinationSource = "special"
	SourceGazetteer DestinationSource = "gazetteer"
	SourcePhrase    DestinationSource = "phrase"
	SourceMessage   DestinationSource = "message"
)

type Destination struct {
	Name         string
	CurrencyHint string
	Source       DestinationSource
}

// Guessed reports whether the destination came from the whole-message fallback.
func (d *Destination) Guessed() bool {
	return d != nil && d.Source == SourceMessage
}

// Duration is a matched duration phrase. Weekend is set when the text only
// said "weekend"; Days is meaningless then.
type Duration struct {
	Days    int
	Weekend bool
}

type Travelers struct {
	Label string
}

// Budget is a budget expression such as "$3000" or "€2k".
type Budget struct {
	Symbol string
	Amount string
}

// ExtractedParameters is produced fresh for every turn and never persisted.
type ExtractedParameters struct {
	Destination *Destination
	Duration    *Duration
	Travelers   *Travelers
	Dates       *string
	Budget      *Budget
}

// HasTripDetail reports whether any concrete trip parameter was extracted.
func (p ExtractedParameters) HasTripDetail() bool {
	return p.Duration != nil || p.Budget != nil || p.Dates != nil || p.Travelers != nil
}

type TripMeta struct {
	Destination    string  `json:"destination"`
	StartDate      string  `json:"startDate,omitempty"`
	Duration       string  `json:"duration,omitempty"`
	Currency       string  `json:"currency"`
	BudgetEstimate *string `json:"budgetEstimate,omitempty"`
	Travelers      string  `json:"travelers,omitempty"`
	Dates          string  `json:"dates,omitempty"`
}

type Item struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	ImageURL  string   `json:"imageUrl"`
	Meta      []string `json:"meta"`
	PriceChip string   `json:"priceChip,omitempty"`
	Subtext   string   `json:"subtext,omitempty"`
}

// Section ids are unique within a payload and act as the merge key.
type Section struct {
	ID      string      `json:"id"`
	Type    SectionType `json:"type"`
	Title   string      `json:"title"`
	Items   []Item      `json:"items"`
	Sources []string    `json:"sources"`
}

type BlockKind string

const (
	BlockPlan  BlockKind = "plan"
	BlockTip   BlockKind = "tip"
	BlockSpend BlockKind = "spend"
)

// DayBlock is a tagged union: plan and tip use Content, spend uses
// Amount, Note and DateLabel.
type DayBlock struct {
	Kind      BlockKind `json:"kind"`
	Content   string    `json:"content,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	Note      string    `json:"note,omitempty"`
	DateLabel string    `json:"dateLabel,omitempty"`
}

type ItineraryDay struct {
	DayIndex int        `json:"dayIndex"`
	Title    string     `json:"title"`
	Overview string     `json:"overview"`
	Blocks   []DayBlock `json:"blocks"`
}

type Action struct {
	Label    string            `json:"label"`
	ActionID string            `json:"actionId"`
	Style    ActionStyle       `json:"style"`
	Payload  map[string]string `json:"payload,omitempty"`
}

// ResponsePayload is the structured, UI-renderable output of a turn.
type ResponsePayload struct {
	Type     ResponseType   `json:"type"`
	Summary  string         `json:"summary"`
	TripMeta *TripMeta      `json:"tripMeta"`
	Sections []Section      `json:"sections,omitempty"`
	Days     []ItineraryDay `json:"days,omitempty"`
	Actions  []Action       `json:"actions,omitempty"`
}

// PartialPayload is an incremental update applied with Merge. Nil fields
// leave the current payload untouched.
type PartialPayload struct {
	Summary  *string
	TripMeta *TripMeta
	Sections []Section
	Days     []ItineraryDay
	Actions  []Action
}

// Partial converts a payload into the update it represents when merged
// on top of an earlier one.
func (p ResponsePayload) Partial() PartialPayload {
	out := PartialPayload{
		TripMeta: p.TripMeta,
		Sections: p.Sections,
		Days:     p.Days,
		Actions:  p.Actions,
	}
	if p.Summary != "" {
		s := p.Summary
		out.Summary = &s
	}
	return out
}

// Turn is one inbound request to the core.
type Turn struct {
	Message      string
	TurnCount    int
	TripSnapshot *TripContext
	ActionID     string
}

// TurnData is omitted entirely when a response type carries neither field.
type TurnData struct {
	TripSnapshot  *TripContext     `json:"tripSnapshot,omitempty"`
	ResponseBlock *ResponsePayload `json:"responseBlock,omitempty"`
}

// TurnResult is the outbound reply of the core.
type TurnResult struct {
	Reply string    `json:"reply"`
	Data  *TurnData `json:"data,omitempty"`
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	if strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func strPtr(s string) *string {
	return &s
}
