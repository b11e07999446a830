package logging

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type GenerationLog struct {
	ID           int       `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Actions      string    `json:"actions"`
	SystemPrompt string    `json:"system_prompt"`
	UserPrompt   string    `json:"user_prompt"`
	Response     string    `json:"response"`
	Metadata     string    `json:"metadata"`
}

type GenerationMetadata struct {
	Batch        string        `json:"batch"`
	Model        string        `json:"model,omitempty"`
	ResponseTime time.Duration `json:"response_time_ms"`
	Error        *string       `json:"error,omitempty"`
}

// GenerationLogger keeps an audit trail of every generation attempt, both
// accepted and rejected, for offline review of the narration quality.
type GenerationLogger struct {
	db *sql.DB
}

func NewGenerationLogger() (*GenerationLogger, error) {
	return openGenerationLogger("./narrations.db")
}

func openGenerationLogger(path string) (*GenerationLogger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger := &GenerationLogger{db: db}
	if err := logger.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return logger, nil
}

func (gl *GenerationLogger) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		actions TEXT NOT NULL,
		system_prompt TEXT NOT NULL,
		user_prompt TEXT NOT NULL,
		response TEXT NOT NULL,
		metadata TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_generations_timestamp ON generations(timestamp);
	`

	_, err := gl.db.Exec(schema)
	return err
}

func (gl *GenerationLogger) LogAttempt(
	actions interface{},
	systemPrompt string,
	userPrompt string,
	response string,
	metadata GenerationMetadata,
) error {
	actionsJson, err := json.Marshal(actions)
	if err != nil {
		return fmt.Errorf("failed to marshal actions: %w", err)
	}

	metadataJson, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = gl.db.Exec(`
		INSERT INTO generations (actions, system_prompt, user_prompt, response, metadata)
		VALUES (?, ?, ?, ?, ?)
	`, string(actionsJson), systemPrompt, userPrompt, response, string(metadataJson))

	return err
}

func (gl *GenerationLogger) GetRecentAttempts(limit int) ([]GenerationLog, error) {
	rows, err := gl.db.Query(`
		SELECT id, timestamp, actions, system_prompt, user_prompt, response, metadata
		FROM generations
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}
	defer rows.Close()

	var logs []GenerationLog
	for rows.Next() {
		var entry GenerationLog
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Actions, &entry.SystemPrompt, &entry.UserPrompt, &entry.Response, &entry.Metadata); err != nil {
			return nil, fmt.Errorf("failed to scan generation row: %w", err)
		}
		logs = append(logs, entry)
	}

	return logs, rows.Err()
}

func (gl *GenerationLogger) Close() error {
	return gl.db.Close()
}
