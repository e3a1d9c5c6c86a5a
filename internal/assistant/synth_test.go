// README: Scenario tests for Respond across every response type.
package assistant_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/internal/assistant"
	"tripmate/internal/types"
)

func respond(t *testing.T, turn assistant.Turn) (assistant.TurnResult, *assistant.ResponsePayload) {
	t.Helper()
	res := assistant.Respond(turn)
	require.NotEmpty(t, res.Reply)
	require.NotNil(t, res.Data)
	require.NotNil(t, res.Data.ResponseBlock)
	return res, res.Data.ResponseBlock
}

func sectionTypes(p *assistant.ResponsePayload) []assistant.SectionType {
	var out []assistant.SectionType
	for _, s := range p.Sections {
		out = append(out, s.Type)
	}
	return out
}

func TestRespond_TripPlan(t *testing.T) {
	res, p := respond(t, assistant.Turn{Message: "Trip to Tokyo for 5 days"})

	assert.Equal(t, assistant.TypeTripPlan, p.Type)
	require.NotNil(t, p.TripMeta)
	assert.Equal(t, "Tokyo", p.TripMeta.Destination)
	assert.Equal(t, "5 days", p.TripMeta.Duration)
	assert.Equal(t, "¥", p.TripMeta.Currency)
	require.NotNil(t, p.TripMeta.BudgetEstimate)
	assert.Empty(t, *p.TripMeta.BudgetEstimate)
	assert.Empty(t, p.TripMeta.Travelers)

	assert.Equal(t, []assistant.SectionType{
		assistant.SectionFlight, assistant.SectionLodging, assistant.SectionActivity, assistant.SectionGeneric,
	}, sectionTypes(p))
	for _, s := range p.Sections {
		assert.NotEmpty(t, s.Items, s.ID)
		assert.Contains(t, s.Title, "Tokyo")
	}

	require.Len(t, p.Actions, 1)
	assert.Equal(t, assistant.ActionCreateItinerary, p.Actions[0].ActionID)
	assert.Equal(t, assistant.StyleSecondary, p.Actions[0].Style)

	snap := res.Data.TripSnapshot
	require.NotNil(t, snap)
	assert.Equal(t, "Tokyo", *snap.Destination)
	assert.Equal(t, "5 days", *snap.Duration)
	assert.Nil(t, snap.Budget)
}

func TestRespond_TripPlanWithDetails(t *testing.T) {
	res, p := respond(t, assistant.Turn{Message: "Plan a couple trip to Paris for 4 days, Aug 6th-12th, $3,000"})

	assert.Equal(t, assistant.TypeTripPlan, p.Type)
	assert.Equal(t, "$", p.TripMeta.Currency, "budget symbol beats destination currency")
	assert.Equal(t, "$3,000", *p.TripMeta.BudgetEstimate)
	assert.Equal(t, "2", p.TripMeta.Travelers)
	assert.Equal(t, "Aug 6-12", p.TripMeta.Dates)
	assert.Equal(t, "4 days", p.TripMeta.Duration)

	snap := res.Data.TripSnapshot
	require.NotNil(t, snap.Budget)
	assert.Equal(t, types.Money{Amount: 3000, Currency: "$"}, *snap.Budget)
	assert.Nil(t, snap.Dates.Start, "display renderings stay out of dates.start")
	assert.Nil(t, snap.Dates.End)
}

func TestRespond_ZeroDaysIsNotWeekend(t *testing.T) {
	res, p := respond(t, assistant.Turn{Message: "Trip to Tokyo for 0 days"})
	assert.Equal(t, "0 days", p.TripMeta.Duration)
	assert.Equal(t, "0 days", *res.Data.TripSnapshot.Duration)

	_, p = respond(t, assistant.Turn{Message: "Trip to Tokyo for the weekend"})
	assert.Equal(t, "Weekend", p.TripMeta.Duration)

	_, p = respond(t, assistant.Turn{Message: "itinerary for 0 days"})
	assert.Equal(t, assistant.TypeItinerary, p.Type)
	assert.Len(t, p.Days, 1)
	assert.Equal(t, "1 day", p.TripMeta.Duration)
}

func TestRespond_MonthOnlyDatesStayDisplay(t *testing.T) {
	res, p := respond(t, assistant.Turn{Message: "Trip to Tokyo in August"})
	assert.Equal(t, "in August", p.TripMeta.Dates)
	assert.Nil(t, res.Data.TripSnapshot.Dates.Start)
}

func TestRespond_TripPlanDefaults(t *testing.T) {
	_, p := respond(t, assistant.Turn{Message: "trip to lisbon"})
	assert.Equal(t, "Lisbon", p.TripMeta.Destination)
	assert.Equal(t, "5 days", p.TripMeta.Duration)
	assert.Equal(t, "$", p.TripMeta.Currency)
}

func TestRespond_Santorini(t *testing.T) {
	res, p := respond(t, assistant.Turn{Message: "Santorini getaway"})

	assert.Equal(t, assistant.TypeTripPlan, p.Type)
	assert.Equal(t, "€", p.TripMeta.Currency)
	assert.Equal(t, "€8500", *p.TripMeta.BudgetEstimate)
	require.Len(t, p.Sections, 4)
	assert.Equal(t, "Canaves Oia Suites", p.Sections[1].Items[0].Title)
	assert.Equal(t, "luxury", *res.Data.TripSnapshot.TravelStyle)
}

func TestRespond_DestinationInfo(t *testing.T) {
	res, p := respond(t, assistant.Turn{Message: "Tell me about Paris"})

	assert.Equal(t, assistant.TypeDestinationInfo, p.Type)
	assert.Equal(t, "Paris", p.TripMeta.Destination)
	assert.Equal(t, "€", p.TripMeta.Currency)
	assert.Nil(t, p.TripMeta.BudgetEstimate)
	assert.Empty(t, p.TripMeta.Dates)
	assert.Equal(t, []assistant.SectionType{assistant.SectionHighlight, assistant.SectionFood}, sectionTypes(p))

	require.Len(t, p.Actions, 1)
	assert.Equal(t, assistant.ActionPlanTrip, p.Actions[0].ActionID)
	assert.Equal(t, assistant.StylePrimary, p.Actions[0].Style)
	assert.Equal(t, "Paris", p.Actions[0].Payload["destination"])

	assert.Equal(t, "Paris", *res.Data.TripSnapshot.Destination)
}

func TestRespond_TripEditMergesOntoPlan(t *testing.T) {
	plan, planBlock := respond(t, assistant.Turn{Message: "Trip to Tokyo for 5 days"})
	edit, editBlock := respond(t, assistant.Turn{
		Message:      "Show cheaper stays",
		TripSnapshot: plan.Data.TripSnapshot,
	})

	assert.Equal(t, assistant.TypeTripEdit, editBlock.Type)
	require.Len(t, editBlock.Sections, 1)
	assert.Equal(t, assistant.SectionLodging, editBlock.Sections[0].Type)
	assert.Empty(t, editBlock.Actions)

	merged := assistant.Merge(*planBlock, editBlock.Partial())
	assert.Equal(t, assistant.TypeTripPlan, merged.Type)
	assert.Equal(t, "$1000", *merged.TripMeta.BudgetEstimate)
	require.Len(t, merged.Sections, len(planBlock.Sections))
	assert.Equal(t, editBlock.Sections[0], merged.Sections[1])
	assert.NotEqual(t, planBlock.Sections[1], merged.Sections[1])
	assert.Equal(t, planBlock.Sections[0], merged.Sections[0])
	assert.Equal(t, planBlock.Actions, merged.Actions)

	snap := edit.Data.TripSnapshot
	assert.Equal(t, "Tokyo", *snap.Destination)
	assert.Equal(t, "budget", *snap.TravelStyle)
	assert.Equal(t, int64(1000), snap.Budget.Amount)

	// The caller's snapshot is not mutated.
	assert.Nil(t, plan.Data.TripSnapshot.Budget)
}

func TestRespond_TripEditComfort(t *testing.T) {
	prior := &assistant.TripContext{
		Destination: ptr("Rome"),
		Budget:      &types.Money{Amount: 4000, Currency: "€"},
	}
	res, p := respond(t, assistant.Turn{Message: "Find a nicer hotel", TripSnapshot: prior})

	assert.Equal(t, assistant.TypeTripEdit, p.Type)
	assert.Equal(t, "€2500", *p.TripMeta.BudgetEstimate)
	assert.Equal(t, "comfort", *res.Data.TripSnapshot.TravelStyle)
	assert.Equal(t, int64(4000), prior.Budget.Amount)
}

func TestRespond_ItineraryFromAction(t *testing.T) {
	res, p := respond(t, assistant.Turn{
		Message:      "create_itinerary",
		ActionID:     assistant.ActionCreateItinerary,
		TripSnapshot: &assistant.TripContext{Duration: ptr("9 days")},
	})

	assert.Equal(t, assistant.TypeItinerary, p.Type)
	require.Len(t, p.Days, 7)
	for i, d := range p.Days {
		assert.Equal(t, i+1, d.DayIndex)
		require.Len(t, d.Blocks, 4)
		assert.Equal(t, []assistant.BlockKind{
			assistant.BlockPlan, assistant.BlockPlan, assistant.BlockTip, assistant.BlockSpend,
		}, []assistant.BlockKind{d.Blocks[0].Kind, d.Blocks[1].Kind, d.Blocks[2].Kind, d.Blocks[3].Kind})
		assert.NotEmpty(t, d.Blocks[3].Amount)
	}
	assert.Equal(t, "Your Destination", p.TripMeta.Destination)
	assert.Equal(t, "$", p.TripMeta.Currency)
	assert.Equal(t, "$2000", *p.TripMeta.BudgetEstimate)
	assert.Equal(t, "7 days", *res.Data.TripSnapshot.Duration)
	assert.Nil(t, res.Data.TripSnapshot.Destination)
}

func TestRespond_ItineraryUsesPriorContext(t *testing.T) {
	_, p := respond(t, assistant.Turn{
		Message:      "make me an itinerary",
		TripSnapshot: &assistant.TripContext{Destination: ptr("Paris"), Duration: ptr("2 days")},
	})
	assert.Equal(t, "Paris", p.TripMeta.Destination)
	assert.Equal(t, "€", p.TripMeta.Currency)
	assert.Len(t, p.Days, 2)

	_, p = respond(t, assistant.Turn{
		Message: "itinerary",
		TripSnapshot: &assistant.TripContext{
			Destination: ptr("Tokyo"),
			Budget:      &types.Money{Amount: 3000, Currency: "$"},
		},
	})
	assert.Equal(t, "$", p.TripMeta.Currency, "prior budget currency overrides lookup")
	assert.Equal(t, "$3000", *p.TripMeta.BudgetEstimate)
	assert.Len(t, p.Days, 3)
}

func TestRespond_Greeting(t *testing.T) {
	res, p := respond(t, assistant.Turn{Message: "Hello there"})

	assert.Equal(t, assistant.TypeGreeting, p.Type)
	assert.Nil(t, res.Data.TripSnapshot)
	assert.Empty(t, p.Sections)
	assert.Nil(t, p.TripMeta)
	require.Len(t, p.Actions, 2)
	assert.Equal(t, assistant.ActionStartPlanning, p.Actions[0].ActionID)
	assert.Equal(t, assistant.ActionExplore, p.Actions[1].ActionID)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "tripSnapshot")
	assert.NotContains(t, string(raw), "sections")
}

func TestRespond_GeneralAssist(t *testing.T) {
	res, p := respond(t, assistant.Turn{Message: "Can you help me?"})
	assert.Equal(t, assistant.TypeGeneralAssist, p.Type)
	assert.Nil(t, res.Data.TripSnapshot)
	assert.Nil(t, p.TripMeta)
	assert.Len(t, p.Actions, 2)

	greet, _ := respond(t, assistant.Turn{Message: "hi"})
	assert.NotEqual(t, greet.Reply, res.Reply)
}

func TestRespond_Deterministic(t *testing.T) {
	turns := []assistant.Turn{
		{Message: "Trip to Tokyo for 5 days"},
		{Message: "Tell me about Paris"},
		{Message: "Show cheaper stays", TripSnapshot: &assistant.TripContext{Destination: ptr("Tokyo")}},
		{Message: "itinerary", TripSnapshot: &assistant.TripContext{Duration: ptr("4 days")}},
		{Message: "Hello there"},
	}
	for _, turn := range turns {
		assert.Equal(t, assistant.Respond(turn), assistant.Respond(turn), turn.Message)
	}
}

func TestEngine(t *testing.T) {
	var r assistant.Responder = assistant.Engine{}

	res, err := r.Respond(context.Background(), assistant.Turn{Message: "Tell me about Paris"})
	require.NoError(t, err)
	assert.Equal(t, assistant.TypeDestinationInfo, res.Data.ResponseBlock.Type)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Respond(ctx, assistant.Turn{Message: "Tell me about Paris"})
	assert.ErrorIs(t, err, context.Canceled)
}
