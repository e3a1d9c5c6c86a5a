// README: Static content templates for sections, items and itinerary days.
package assistant

import (
	"fmt"
	"net/url"
	"strings"
)

// Placeholders substituted by fill.
const (
	phDest     = "{dest}"
	phCurrency = "{cur}"
)

type itemSpec struct {
	title   string
	topic   string
	meta    []string
	price   string
	subtext string
}

type sectionSpec struct {
	id      string
	kind    SectionType
	sources []string
	items   []itemSpec
}

// sectionTitles formats a section heading from its type.
var sectionTitles = map[SectionType]func(dest string) string{
	SectionFlight:    func(dest string) string { return "Flights to " + dest },
	SectionLodging:   func(dest string) string { return "Where to stay in " + dest },
	SectionActivity:  func(dest string) string { return "Things to do in " + dest },
	SectionHighlight: func(dest string) string { return "Highlights of " + dest },
	SectionFood:      func(dest string) string { return "What to eat in " + dest },
	SectionGeneric:   func(dest string) string { return "Entry requirements for " + dest },
}

func fill(tmpl, dest, currency string) string {
	return strings.NewReplacer(phDest, dest, phCurrency, currency).Replace(tmpl)
}

func imageURL(dest, topic string, n int) string {
	q := url.QueryEscape(strings.ToLower(dest) + "," + topic)
	return fmt.Sprintf("https://source.unsplash.com/featured/800x600/?%s&sig=%d", q, n)
}

// render fills a section template for one destination. Item ids are
// derived from the section id and position.
func (s sectionSpec) render(dest, currency string) Section {
	items := make([]Item, len(s.items))
	for i, it := range s.items {
		meta := make([]string, len(it.meta))
		for j, m := range it.meta {
			meta[j] = fill(m, dest, currency)
		}
		items[i] = Item{
			ID:        fmt.Sprintf("%s-%d", s.id, i+1),
			Title:     fill(it.title, dest, currency),
			ImageURL:  imageURL(dest, it.topic, i+1),
			Meta:      meta,
			PriceChip: fill(it.price, dest, currency),
			Subtext:   fill(it.subtext, dest, currency),
		}
	}
	return Section{
		ID:      s.id,
		Type:    s.kind,
		Title:   sectionTitles[s.kind](dest),
		Items:   items,
		Sources: append([]string(nil), s.sources...),
	}
}

func renderAll(specs []sectionSpec, dest, currency string) []Section {
	out := make([]Section, len(specs))
	for i, s := range specs {
		out[i] = s.render(dest, currency)
	}
	return out
}

// Section ids shared across payloads; TRIP_EDIT relies on lodgingID.
const (
	flightsID    = "flights"
	lodgingID    = "lodging"
	activitiesID = "activities"
	entryID      = "entry"
	highlightsID = "highlights"
	foodID       = "food"
)

// Flight meta slots: origin, destination, trip type, stops.
var planFlights = sectionSpec{
	id:      flightsID,
	kind:    SectionFlight,
	sources: []string{"Google Flights", "Skyscanner"},
	items: []itemSpec{
		{title: "Nonstop round trip to {dest}", topic: "airplane", meta: []string{"Your city", "{dest}", "Round trip", "Nonstop"}, price: "from {cur}850", subtext: "Best balance of price and time"},
		{title: "Saver fare to {dest}", topic: "airport", meta: []string{"Your city", "{dest}", "Round trip", "1 stop"}, price: "from {cur}620", subtext: "Cheapest option found"},
	},
}

var planLodging = sectionSpec{
	id:      lodgingID,
	kind:    SectionLodging,
	sources: []string{"Booking.com", "Airbnb"},
	items: []itemSpec{
		{title: "Boutique hotel in central {dest}", topic: "hotel", meta: []string{"4.6 ★", "City center", "Free cancellation"}, price: "{cur}180/night"},
		{title: "Design apartment near {dest} old town", topic: "apartment", meta: []string{"4.5 ★", "Old town", "Kitchen"}, price: "{cur}140/night"},
		{title: "Riverside stay in {dest}", topic: "riverside", meta: []string{"4.4 ★", "Quiet area", "Breakfast included"}, price: "{cur}120/night"},
	},
}

var planActivities = sectionSpec{
	id:      activitiesID,
	kind:    SectionActivity,
	sources: []string{"Tripadvisor", "GetYourGuide"},
	items: []itemSpec{
		{title: "Guided walking tour of {dest}", topic: "street", meta: []string{"3 hours", "Small group"}, price: "{cur}45"},
		{title: "{dest} food market tasting", topic: "market", meta: []string{"2 hours", "Local guide"}, price: "{cur}60"},
		{title: "Sunset viewpoint over {dest}", topic: "sunset", meta: []string{"Evening", "Self-guided"}, price: "Free"},
	},
}

var planEntry = sectionSpec{
	id:      entryID,
	kind:    SectionGeneric,
	sources: []string{"IATA Travel Centre"},
	items: []itemSpec{
		{title: "Passport validity", topic: "passport", meta: []string{"Required"}, subtext: "Your passport should be valid for at least six months beyond your stay in {dest}."},
		{title: "Visa and entry rules", topic: "travel", meta: []string{"Check before booking"}, subtext: "Confirm visa requirements for {dest} with the official embassy or consulate."},
	},
}

var planSections = []sectionSpec{planFlights, planLodging, planActivities, planEntry}

// Santorini is a standing exception with its own content and a fixed budget.
const santoriniBudget = "€8500"

var santoriniSections = []sectionSpec{
	{
		id:      flightsID,
		kind:    SectionFlight,
		sources: []string{"Aegean Airlines", "Sky Express"},
		items: []itemSpec{
			{title: "Aegean Airlines via Athens", topic: "airplane", meta: []string{"Your city", "Santorini (JTR)", "Round trip", "1 stop"}, price: "from €420", subtext: "Connect in Athens (ATH)"},
			{title: "Sky Express island hop", topic: "aegean", meta: []string{"Athens (ATH)", "Santorini (JTR)", "One way", "Nonstop"}, price: "from €95", subtext: "45 minute flight"},
		},
	},
	{
		id:      lodgingID,
		kind:    SectionLodging,
		sources: []string{"Booking.com", "Mr & Mrs Smith"},
		items: []itemSpec{
			{title: "Canaves Oia Suites", topic: "oia", meta: []string{"4.9 ★", "Oia", "Caldera view"}, price: "€950/night"},
			{title: "Grace Hotel, Imerovigli", topic: "imerovigli", meta: []string{"4.8 ★", "Imerovigli", "Infinity pool"}, price: "€780/night"},
			{title: "Katikies Kirini", topic: "caldera", meta: []string{"4.8 ★", "Oia", "Spa"}, price: "€690/night"},
		},
	},
	{
		id:      activitiesID,
		kind:    SectionActivity,
		sources: []string{"GetYourGuide", "Viator"},
		items: []itemSpec{
			{title: "Caldera sunset catamaran cruise", topic: "catamaran", meta: []string{"5 hours", "Dinner on board"}, price: "€160"},
			{title: "Wine tasting at Santo Wines", topic: "vineyard", meta: []string{"2 hours", "Pyrgos"}, price: "€45"},
			{title: "Fira to Oia clifftop hike", topic: "hike", meta: []string{"3 hours", "Self-guided"}, price: "Free"},
		},
	},
	planEntry,
}

var infoSections = []sectionSpec{
	{
		id:      highlightsID,
		kind:    SectionHighlight,
		sources: []string{"Lonely Planet", "Wikivoyage"},
		items: []itemSpec{
			{title: "Historic center of {dest}", topic: "landmark", meta: []string{"Must see"}},
			{title: "Best neighborhoods in {dest}", topic: "neighborhood", meta: []string{"Local favorite"}},
			{title: "Day trips from {dest}", topic: "countryside", meta: []string{"Half day"}},
		},
	},
	{
		id:      foodID,
		kind:    SectionFood,
		sources: []string{"Eater", "Michelin Guide"},
		items: []itemSpec{
			{title: "Street food in {dest}", topic: "street-food", meta: []string{"Budget friendly"}, price: "{cur}"},
			{title: "Classic dishes of {dest}", topic: "cuisine", meta: []string{"Traditional"}, price: "{cur}{cur}"},
			{title: "Top-rated restaurants in {dest}", topic: "restaurant", meta: []string{"Reserve ahead"}, price: "{cur}{cur}{cur}"},
		},
	},
}

// Lodging replacements produced by TRIP_EDIT. Both reuse lodgingID.
var (
	cheapLodging = sectionSpec{
		id:      lodgingID,
		kind:    SectionLodging,
		sources: []string{"Hostelworld", "Booking.com"},
		items: []itemSpec{
			{title: "Budget guesthouse in {dest}", topic: "guesthouse", meta: []string{"4.3 ★", "Near transit", "Shared lounge"}, price: "{cur}55/night"},
			{title: "Capsule stay in central {dest}", topic: "capsule", meta: []string{"4.2 ★", "City center", "Lockers"}, price: "{cur}40/night"},
			{title: "Private room in a {dest} hostel", topic: "hostel", meta: []string{"4.4 ★", "Social", "Free breakfast"}, price: "{cur}35/night"},
		},
	}
	comfortLodging = sectionSpec{
		id:      lodgingID,
		kind:    SectionLodging,
		sources: []string{"Booking.com", "Hotels.com"},
		items: []itemSpec{
			{title: "Four-star hotel in central {dest}", topic: "hotel", meta: []string{"4.7 ★", "City center", "Gym"}, price: "{cur}240/night"},
			{title: "Serviced suite in {dest}", topic: "suite", meta: []string{"4.6 ★", "Business district", "Kitchenette"}, price: "{cur}210/night"},
		},
	}
)

// Fixed budget figures used by TRIP_EDIT.
const (
	cheapEditBudget   = 1000
	comfortEditBudget = 2500
)

// Itinerary copy rotates through these lists by day index.
var (
	dayThemes = []string{
		"Arrival and first impressions",
		"Landmarks and history",
		"Markets and local food",
		"Neighborhood wandering",
		"Day trip out of town",
		"Art and culture",
		"Slow morning and farewell",
	}
	morningPlans = []string{
		"Check in and take an easy walk around central {dest}.",
		"Start early at the most famous landmark in {dest} before the crowds.",
		"Browse the morning market and try breakfast like a local.",
		"Explore a residential quarter of {dest} on foot.",
		"Catch a morning train for a day trip outside {dest}.",
		"Visit the main museum in {dest}.",
		"Enjoy a slow breakfast and pick up souvenirs.",
	}
	afternoonPlans = []string{
		"Have dinner at a neighborhood restaurant near your stay.",
		"Join a guided history walk through the old town of {dest}.",
		"Take a cooking class featuring dishes from {dest}.",
		"Relax in a park, then find a rooftop for sunset.",
		"Return to {dest} in time for a late dinner.",
		"See a gallery or a live performance in {dest}.",
		"Head to the airport with time to spare.",
	}
	dayTips = []string{
		"Buy a transit card on arrival to save on single fares.",
		"Book timed-entry tickets online to skip queues.",
		"Carry some cash for small market vendors.",
		"Wear comfortable shoes; the best streets are cobbled.",
		"Check the return schedule before you leave {dest}.",
		"Many museums offer a free or discounted evening slot.",
		"Keep your last afternoon light in case of delays.",
	}
)

const (
	dailySpendAmount       = 150
	defaultItineraryBudget = 2000
)

func itineraryDay(index int, dest, currency string) ItineraryDay {
	i := (index - 1) % len(dayThemes)
	return ItineraryDay{
		DayIndex: index,
		Title:    fmt.Sprintf("Day %d: %s", index, dayThemes[i]),
		Overview: fmt.Sprintf("%s in %s.", dayThemes[i], dest),
		Blocks: []DayBlock{
			{Kind: BlockPlan, Content: "Morning: " + fill(morningPlans[i], dest, currency)},
			{Kind: BlockPlan, Content: "Afternoon: " + fill(afternoonPlans[i], dest, currency)},
			{Kind: BlockTip, Content: fill(dayTips[i], dest, currency)},
			{Kind: BlockSpend, Amount: fmt.Sprintf("%s%d", currency, dailySpendAmount), Note: "Estimated daily spend per person", DateLabel: fmt.Sprintf("Day %d", index)},
		},
	}
}
