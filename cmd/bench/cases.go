// README: Bench cases: environment checks, chat scenarios, session/transcript checks and chat throughput.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"tripmate/internal/assistant"
	"tripmate/internal/service"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	return []TestCase{
		{Name: "Env: Postgres connect", Run: checkPostgres},
		{Name: "Env: Redis connect", Run: checkRedis},
		{Name: "Migration: apply (optional)", Run: applyMigration},
		{Name: "Migration: tables exist", Run: tablesExist},
		{Name: "API: health", Run: checkHealth},

		{Name: "Scenario: Tokyo trip plan", Run: scenarioTripPlan},
		{Name: "Scenario: Paris destination info", Run: scenarioDestinationInfo},
		{Name: "Scenario: cheaper stays edit + merge", Run: scenarioTripEdit},
		{Name: "Scenario: itinerary clamps 9 days to 7", Run: scenarioItinerary},
		{Name: "Scenario: greeting", Run: scenarioGreeting},
		{Name: "Validation: blank message -> 400", Run: blankMessage},

		{Name: "Session: conversation lookup", Run: sessionLookup},
		{Name: "Transcript: turns recorded", Run: transcriptRecorded},

		{Name: "Perf: chat throughput", Run: chatThroughput},
	}
}

func fail(format string, args ...any) Result {
	return Result{Status: statusFail, Note: fmt.Sprintf(format, args...)}
}

// postJSON posts body and decodes a 2xx response into out.
func (r *Runner) postJSON(ctx context.Context, path string, body, out any) (int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	return resp.StatusCode, json.NewDecoder(resp.Body).Decode(out)
}

func (r *Runner) chat(ctx context.Context, body map[string]any) (service.ChatResponse, time.Duration, error) {
	var out service.ChatResponse
	start := time.Now()
	status, err := r.postJSON(ctx, "/api/chat", body, &out)
	latency := time.Since(start)
	if err != nil {
		return out, latency, err
	}
	if status != http.StatusOK {
		return out, latency, fmt.Errorf("status=%d", status)
	}
	if out.Data == nil || out.Data.ResponseBlock == nil {
		return out, latency, fmt.Errorf("no responseBlock")
	}
	return out, latency, nil
}

func checkPostgres(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: statusSkip, Note: "dsn not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.db.Ping(ctx); err != nil {
		return fail("%v", err)
	}
	return Result{Status: statusPass}
}

func checkRedis(ctx context.Context, r *Runner) Result {
	if r.redis == nil {
		return Result{Status: statusSkip, Note: "redis not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return fail("%v", err)
	}
	return Result{Status: statusPass}
}

func applyMigration(ctx context.Context, r *Runner) Result {
	if !r.cfg.ApplyMigration {
		return Result{Status: statusSkip, Note: "apply-migration=false"}
	}
	if r.db == nil {
		return fail("db not configured")
	}
	sql, err := os.ReadFile(r.cfg.MigrationPath)
	if err != nil {
		return fail("%v", err)
	}
	for _, s := range splitSQL(string(sql)) {
		if _, err := r.db.Exec(ctx, s); err != nil {
			return fail("%v", err)
		}
	}
	return Result{Status: statusPass}
}

func tablesExist(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: statusSkip, Note: "dsn not configured"}
	}
	tables, err := extractTables(r.cfg.MigrationPath)
	if err != nil {
		return fail("%v", err)
	}
	for _, t := range tables {
		var exists bool
		err := r.db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
			t,
		).Scan(&exists)
		if err != nil {
			return fail("%v", err)
		}
		if !exists {
			return fail("missing table: %s", t)
		}
	}
	return Result{Status: statusPass}
}

func checkHealth(ctx context.Context, r *Runner) Result {
	start := time.Now()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"/health", nil)
	resp, err := r.httpc.Do(req)
	if err != nil {
		return fail("%v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(b) != "OK" {
		return fail("status=%d body=%q", resp.StatusCode, b)
	}
	return Result{Status: statusPass, Latency: time.Since(start)}
}

func hasSectionType(p *assistant.ResponsePayload, t assistant.SectionType) bool {
	for _, s := range p.Sections {
		if s.Type == t {
			return true
		}
	}
	return false
}

func findSection(p assistant.ResponsePayload, id string) *assistant.Section {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return &p.Sections[i]
		}
	}
	return nil
}

func scenarioTripPlan(ctx context.Context, r *Runner) Result {
	resp, latency, err := r.chat(ctx, map[string]any{"message": "Trip to Tokyo for 5 days"})
	if err != nil {
		return fail("%v", err)
	}
	block := resp.Data.ResponseBlock
	switch {
	case block.Type != assistant.TypeTripPlan:
		return fail("type=%s", block.Type)
	case block.TripMeta == nil || block.TripMeta.Destination != "Tokyo":
		return fail("destination mismatch")
	case block.TripMeta.Duration != "5 days":
		return fail("duration=%q", block.TripMeta.Duration)
	case !hasSectionType(block, assistant.SectionFlight) || !hasSectionType(block, assistant.SectionLodging):
		return fail("missing FLIGHT or LODGING section")
	}
	return Result{Status: statusPass, Latency: latency}
}

func scenarioDestinationInfo(ctx context.Context, r *Runner) Result {
	resp, latency, err := r.chat(ctx, map[string]any{"message": "Tell me about Paris"})
	if err != nil {
		return fail("%v", err)
	}
	block := resp.Data.ResponseBlock
	if block.Type != assistant.TypeDestinationInfo || block.TripMeta == nil ||
		block.TripMeta.Destination != "Paris" || block.TripMeta.Currency != "€" {
		return fail("got type=%s meta=%+v", block.Type, block.TripMeta)
	}
	return Result{Status: statusPass, Latency: latency}
}

func scenarioTripEdit(ctx context.Context, r *Runner) Result {
	plan, _, err := r.chat(ctx, map[string]any{"message": "Trip to Tokyo for 5 days"})
	if err != nil {
		return fail("plan: %v", err)
	}
	edit, latency, err := r.chat(ctx, map[string]any{
		"message":      "Show cheaper stays",
		"tripSnapshot": plan.Data.TripSnapshot,
	})
	if err != nil {
		return fail("edit: %v", err)
	}
	if edit.Data.ResponseBlock.Type != assistant.TypeTripEdit {
		return fail("type=%s", edit.Data.ResponseBlock.Type)
	}

	var merged assistant.ResponsePayload
	status, err := r.postJSON(ctx, "/api/chat/merge", map[string]any{
		"current":  plan.Data.ResponseBlock,
		"incoming": edit.Data.ResponseBlock,
	}, &merged)
	if err != nil || status != http.StatusOK {
		return fail("merge: status=%d err=%v", status, err)
	}
	before := findSection(*plan.Data.ResponseBlock, "lodging")
	after := findSection(merged, "lodging")
	switch {
	case before == nil || after == nil:
		return fail("lodging section missing")
	case len(after.Items) == 0 || len(before.Items) == 0 || after.Items[0].Title == before.Items[0].Title:
		return fail("lodging section not replaced")
	case merged.TripMeta == nil || merged.TripMeta.BudgetEstimate == nil || *merged.TripMeta.BudgetEstimate != "$1000":
		return fail("budgetEstimate not $1000")
	}
	return Result{Status: statusPass, Latency: latency}
}

func scenarioItinerary(ctx context.Context, r *Runner) Result {
	resp, latency, err := r.chat(ctx, map[string]any{
		"message":      "Create itinerary",
		"actionId":     assistant.ActionCreateItinerary,
		"tripSnapshot": map[string]any{"destination": "Tokyo", "duration": "9 days"},
	})
	if err != nil {
		return fail("%v", err)
	}
	block := resp.Data.ResponseBlock
	if block.Type != assistant.TypeItinerary || len(block.Days) != 7 {
		return fail("type=%s days=%d", block.Type, len(block.Days))
	}
	return Result{Status: statusPass, Latency: latency}
}

func scenarioGreeting(ctx context.Context, r *Runner) Result {
	resp, latency, err := r.chat(ctx, map[string]any{"message": "Hello there"})
	if err != nil {
		return fail("%v", err)
	}
	if resp.Data.ResponseBlock.Type != assistant.TypeGreeting || len(resp.Data.ResponseBlock.Sections) != 0 {
		return fail("type=%s sections=%d", resp.Data.ResponseBlock.Type, len(resp.Data.ResponseBlock.Sections))
	}
	if resp.Data.TripSnapshot != nil {
		return fail("greeting carried a tripSnapshot")
	}
	return Result{Status: statusPass, Latency: latency}
}

func blankMessage(ctx context.Context, r *Runner) Result {
	status, err := r.postJSON(ctx, "/api/chat", map[string]any{"message": "   "}, nil)
	if err != nil {
		return fail("%v", err)
	}
	if status != http.StatusBadRequest {
		return fail("status=%d", status)
	}
	return Result{Status: statusPass}
}

func sessionLookup(ctx context.Context, r *Runner) Result {
	if r.redis == nil {
		return Result{Status: statusSkip, Note: "redis not configured"}
	}
	id := uuid.NewString()
	if _, _, err := r.chat(ctx, map[string]any{"message": "Trip to Rome for 3 days", "conversationId": id}); err != nil {
		return fail("%v", err)
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"/api/conversations/"+id, nil)
	resp, err := r.httpc.Do(req)
	if err != nil {
		return fail("%v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fail("status=%d (is the API configured with redis?)", resp.StatusCode)
	}
	var conv service.Conversation
	if err := json.NewDecoder(resp.Body).Decode(&conv); err != nil {
		return fail("%v", err)
	}
	if conv.TripSnapshot == nil || conv.TripSnapshot.Destination == nil || *conv.TripSnapshot.Destination != "Rome" {
		return fail("stored snapshot mismatch")
	}
	return Result{Status: statusPass}
}

func transcriptRecorded(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: statusSkip, Note: "dsn not configured"}
	}
	id := uuid.NewString()
	if _, _, err := r.chat(ctx, map[string]any{"message": "Tell me about Vienna", "conversationId": id}); err != nil {
		return fail("%v", err)
	}
	var n int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM turns WHERE conversation_id=$1", id).Scan(&n); err != nil {
		return fail("%v", err)
	}
	if n != 1 {
		return fail("rows=%d", n)
	}
	return Result{Status: statusPass}
}

func chatThroughput(ctx context.Context, r *Runner) Result {
	b, _ := json.Marshal(map[string]any{"message": "Trip to Bali for 4 days with $3000"})
	end := time.Now().Add(r.cfg.Duration)
	var count, limited, errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/api/chat", bytes.NewReader(b))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				mu.Lock()
				switch {
				case err != nil:
					errCount++
				case resp.StatusCode == http.StatusTooManyRequests:
					limited++
				default:
					count++
				}
				mu.Unlock()
				if err == nil {
					_, _ = io.Copy(io.Discard, resp.Body)
					resp.Body.Close()
				}
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return fail("no requests completed (limited=%d errors=%d)", limited, errCount)
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f limited=%d errors=%d", rps, limited, errCount)}
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
