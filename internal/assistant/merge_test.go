// README: Tests for section-keyed payload merging.
package assistant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/internal/assistant"
)

func section(id, title string, items ...string) assistant.Section {
	s := assistant.Section{ID: id, Type: assistant.SectionGeneric, Title: title, Sources: []string{title + " source"}}
	for _, it := range items {
		s.Items = append(s.Items, assistant.Item{ID: id + "-" + it, Title: it, Meta: []string{}})
	}
	return s
}

func ids(sections []assistant.Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.ID
	}
	return out
}

func TestMerge_DisjointAppends(t *testing.T) {
	a := assistant.ResponsePayload{
		Type:     assistant.TypeTripPlan,
		Sections: []assistant.Section{section("a", "A", "x"), section("b", "B", "y")},
	}
	b := assistant.PartialPayload{
		Sections: []assistant.Section{section("d", "D"), section("c", "C")},
	}

	got := assistant.Merge(a, b)
	require.Len(t, got.Sections, len(a.Sections)+len(b.Sections))
	assert.Equal(t, []string{"a", "b", "d", "c"}, ids(got.Sections))
	assert.Equal(t, a.Sections[0], got.Sections[0])
	assert.Equal(t, a.Sections[1], got.Sections[1])
}

func TestMerge_ReplacesWholeSection(t *testing.T) {
	a := assistant.ResponsePayload{
		Sections: []assistant.Section{
			section("a", "A"),
			section("b", "Old B", "one", "two", "three"),
			section("c", "C"),
		},
	}
	replacement := section("b", "New B", "only")
	replacement.Sources = nil

	got := assistant.Merge(a, assistant.PartialPayload{Sections: []assistant.Section{replacement}})
	assert.Equal(t, []string{"a", "b", "c"}, ids(got.Sections))
	assert.Equal(t, replacement, got.Sections[1])
	assert.Nil(t, got.Sections[1].Sources, "no field-level union")
	assert.Len(t, got.Sections[1].Items, 1)
}

func TestMerge_MixedKeepsOrder(t *testing.T) {
	a := assistant.ResponsePayload{
		Sections: []assistant.Section{section("a", "A"), section("b", "B")},
	}
	b := assistant.PartialPayload{
		Sections: []assistant.Section{section("new", "New"), section("a", "A2")},
	}
	got := assistant.Merge(a, b)
	assert.Equal(t, []string{"a", "b", "new"}, ids(got.Sections))
	assert.Equal(t, "A2", got.Sections[0].Title)
}

func TestMerge_DuplicateIncomingIDs(t *testing.T) {
	a := assistant.ResponsePayload{Sections: []assistant.Section{section("a", "A")}}
	b := assistant.PartialPayload{
		Sections: []assistant.Section{section("a", "first"), section("a", "second"), section("z", "Z"), section("z", "Z2")},
	}
	got := assistant.Merge(a, b)
	assert.Equal(t, []string{"a", "z"}, ids(got.Sections))
	assert.Equal(t, "first", got.Sections[0].Title)
	assert.Equal(t, "Z", got.Sections[1].Title)
}

func TestMerge_Scalars(t *testing.T) {
	budget := "$1000"
	a := assistant.ResponsePayload{
		Type:     assistant.TypeDestinationInfo,
		Summary:  "old",
		TripMeta: &assistant.TripMeta{Destination: "Paris", Currency: "€"},
		Actions:  []assistant.Action{{Label: "Plan", ActionID: assistant.ActionPlanTrip, Style: assistant.StylePrimary}},
	}

	got := assistant.Merge(a, assistant.PartialPayload{})
	assert.Equal(t, a, got)

	summary := "new"
	got = assistant.Merge(a, assistant.PartialPayload{
		Summary:  &summary,
		TripMeta: &assistant.TripMeta{Destination: "Paris", Currency: "$", BudgetEstimate: &budget},
	})
	assert.Equal(t, assistant.TypeDestinationInfo, got.Type)
	assert.Equal(t, "new", got.Summary)
	assert.Equal(t, "$", got.TripMeta.Currency)
	assert.Equal(t, "€", a.TripMeta.Currency)
	assert.Equal(t, a.Actions, got.Actions)
}

func TestMerge_DoesNotMutateCurrent(t *testing.T) {
	a := assistant.ResponsePayload{
		Sections: []assistant.Section{section("a", "A"), section("b", "B")},
	}
	before := append([]assistant.Section(nil), a.Sections...)

	got := assistant.Merge(a, assistant.PartialPayload{Sections: []assistant.Section{section("a", "A2")}})
	got.Sections[1].Title = "changed"

	assert.Equal(t, before, a.Sections)
}
