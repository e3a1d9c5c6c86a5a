// README: Offline demo; runs turns through the assistant core and prints the reply and JSON payload.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"tripmate/internal/assistant"
)

func main() {
	message := flag.String("message", "Trip to Tokyo for 5 days", "user message")
	action := flag.String("action", "", "action id, e.g. create_itinerary")
	snapshotFile := flag.String("snapshot", "", "JSON file holding a prior tripSnapshot")
	follow := flag.String("then", "", "optional follow-up message sent with the first turn's snapshot")
	flag.Parse()

	turn := assistant.Turn{Message: *message, ActionID: *action}
	if *snapshotFile != "" {
		b, err := os.ReadFile(*snapshotFile)
		if err != nil {
			log.Fatalf("read snapshot: %v", err)
		}
		var snap assistant.TripContext
		if err := json.Unmarshal(b, &snap); err != nil {
			log.Fatalf("parse snapshot: %v", err)
		}
		turn.TripSnapshot = &snap
	}

	res := printTurn(turn)
	if *follow == "" {
		return
	}

	next := assistant.Turn{Message: *follow, TurnCount: 1, TripSnapshot: turn.TripSnapshot}
	if res.Data != nil && res.Data.TripSnapshot != nil {
		next.TripSnapshot = res.Data.TripSnapshot
	}
	edit := printTurn(next)
	if res.Data == nil || res.Data.ResponseBlock == nil || edit.Data == nil || edit.Data.ResponseBlock == nil {
		return
	}
	if edit.Data.ResponseBlock.Type == assistant.TypeTripEdit {
		merged := assistant.Merge(*res.Data.ResponseBlock, edit.Data.ResponseBlock.Partial())
		fmt.Println("Merged:")
		printJSON(merged)
	}
}

func printTurn(turn assistant.Turn) assistant.TurnResult {
	fmt.Printf("User: %s\n", turn.Message)
	res := assistant.Respond(turn)
	fmt.Printf("Reply: %s\n", res.Reply)
	printJSON(res)
	return res
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	fmt.Println(string(b))
}
