package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"matchcast/internal/logging"
)

// runReviewMode dumps the most recent generation attempts from the audit
// database for offline inspection of the narration quality.
func runReviewMode() {
	logger, err := logging.NewGenerationLogger()
	if err != nil {
		fmt.Printf("Failed to open narration database: %v\n", err)
		return
	}
	defer logger.Close()

	attempts, err := logger.GetRecentAttempts(10)
	if err != nil {
		fmt.Printf("Failed to get attempts: %v\n", err)
		return
	}

	if len(attempts) == 0 {
		fmt.Println("No attempts found. Run a match first to generate data!")
		return
	}

	fmt.Printf("Recent generation attempts (%d):\n\n", len(attempts))

	for _, attempt := range attempts {
		fmt.Println(attemptSummary(attempt))
		fmt.Printf("Response: %s\n", attempt.Response)
		fmt.Println(strings.Repeat("-", 50))
	}
}

// attemptSummary renders the one-line header for an audit row: id, time,
// batch, duration, and the validation verdict.
func attemptSummary(attempt logging.GenerationLog) string {
	var md logging.GenerationMetadata
	if err := json.Unmarshal([]byte(attempt.Metadata), &md); err != nil {
		return fmt.Sprintf("[%d] %s", attempt.ID, attempt.Timestamp.Format("15:04:05"))
	}

	verdict := "accepted"
	if md.Error != nil {
		verdict = "rejected: " + *md.Error
	}
	return fmt.Sprintf("[%d] %s | %s | %v | %s",
		attempt.ID,
		attempt.Timestamp.Format("15:04:05"),
		md.Batch,
		md.ResponseTime,
		verdict)
}
