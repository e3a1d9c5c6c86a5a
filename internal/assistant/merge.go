// README: Merge engine applying a partial payload (e.g. a TRIP_EDIT) on top of a rendered payload.
package assistant

// Merge overlays incoming on current and returns a new payload. Summary and
// TripMeta are overwritten when present. Sections are keyed by id: a match
// replaces the current section in place, wholesale; unmatched current
// sections keep their order; unmatched incoming sections are appended in
// incoming order. The payload type of current is kept.
func Merge(current ResponsePayload, incoming PartialPayload) ResponsePayload {
	out := current
	if incoming.Summary != nil {
		out.Summary = *incoming.Summary
	}
	if incoming.TripMeta != nil {
		meta := *incoming.TripMeta
		out.TripMeta = &meta
	}
	if incoming.Days != nil {
		out.Days = append([]ItineraryDay(nil), incoming.Days...)
	}
	if incoming.Actions != nil {
		out.Actions = append([]Action(nil), incoming.Actions...)
	}
	out.Sections = mergeSections(current.Sections, incoming.Sections)
	return out
}

func mergeSections(current, incoming []Section) []Section {
	if len(incoming) == 0 {
		if current == nil {
			return nil
		}
		return append([]Section(nil), current...)
	}

	// First occurrence wins when incoming repeats an id.
	byID := make(map[string]int, len(incoming))
	for i, s := range incoming {
		if _, dup := byID[s.ID]; !dup {
			byID[s.ID] = i
		}
	}

	out := make([]Section, 0, len(current)+len(incoming))
	used := make(map[string]bool, len(incoming))
	for _, s := range current {
		if i, ok := byID[s.ID]; ok && !used[s.ID] {
			out = append(out, incoming[i])
			used[s.ID] = true
			continue
		}
		out = append(out, s)
	}
	for _, s := range incoming {
		if used[s.ID] {
			continue
		}
		out = append(out, s)
		used[s.ID] = true
	}
	return out
}
