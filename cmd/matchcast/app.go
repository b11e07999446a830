package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"matchcast/cmd/matchcast/ui"
	"matchcast/internal/debug"
	"matchcast/internal/llm"
	"matchcast/internal/logging"
	"matchcast/internal/match"
	"matchcast/internal/match/narration"
	"matchcast/internal/match/sim"
	"matchcast/internal/observability"
)

func createApp() (ui.Model, func(), error) {
	_ = godotenv.Load()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return ui.Model{}, nil, fmt.Errorf("please set OPENAI_API_KEY environment variable")
	}

	debugMode := os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true"
	debugLogger := debug.NewLogger(debugMode)

	ctx := context.Background()
	tracingConfig := observability.LoadConfigFromEnv()
	tracerProvider, err := observability.InitTracing(ctx, tracingConfig)
	if err != nil {
		debugLogger.Printf("Failed to initialize tracing: %v", err)
	} else if tracerProvider.IsEnabled() {
		debugLogger.Println("OpenTelemetry tracing initialized and enabled")
	} else {
		debugLogger.Println("OpenTelemetry tracing disabled (set OTEL_TRACES_ENABLED=true to enable)")
	}

	llmService := llm.NewService(apiKey, os.Getenv("NARRATION_MODEL"), debugLogger)

	audit, err := logging.NewGenerationLogger()
	if err != nil {
		return ui.Model{}, nil, fmt.Errorf("failed to initialize generation logger: %w", err)
	}

	home, away, venue := demoMatch()
	pipeline := narration.NewPipeline(
		llm.NewNarrationGenerator(llmService),
		home, away, venue,
		narration.Config{Language: os.Getenv("NARRATION_LANGUAGE")},
		debugLogger, audit,
	)

	seed := time.Now().UnixNano()
	if s := os.Getenv("MATCH_SEED"); s != "" {
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
			seed = parsed
		}
	}
	rng := rand.New(rand.NewSource(seed))
	actions := sim.Script(rng, sim.DefaultConfig())
	debugLogger.Printf("Simulated %d actions with seed %d", len(actions), seed)

	sessionID := uuid.NewString()
	matchCtx, cancelMatch := context.WithCancel(llm.WithSessionID(ctx, sessionID))
	seq, err := pipeline.Start(matchCtx, actions)
	if err != nil {
		cancelMatch()
		audit.Close()
		return ui.Model{}, nil, fmt.Errorf("failed to start narration pipeline: %w", err)
	}

	model := ui.NewModel(seq, home, away, debugLogger, debugMode)

	cleanup := func() {
		cancelMatch()
		audit.Close()
		if tracerProvider != nil {
			tracerProvider.Shutdown(context.Background())
		}
	}

	return model, cleanup, nil
}

// demoMatch is the fixed friendly used by the demo binary. Real callers
// build their own Team records.
func demoMatch() (match.Team, match.Team, match.Venue) {
	home, _ := match.NewTeam(match.SideA, "A.C. FORGIA",
		[4]string{"Dani", "Dario", "Dav", "Max"}, "Kien")
	away, _ := match.NewTeam(match.SideB, "F.C. PASTA CALCISTICA",
		[4]string{"Giammy", "Pit", "Stef", "Paso"}, "Gio")
	venue := match.Venue{Stadium: "Stadio San Paolo", Referee: "Sig. Mariani"}
	return home, away, venue
}
