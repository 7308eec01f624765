package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/storage/models"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/pkg/logger"
)

// Client is the chat transcript store. It is best effort: a write failure is
// logged by the caller and never affects the chat response.
type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("SQLite client initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chat_history (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		message TEXT NOT NULL,
		response TEXT NOT NULL,
		intent TEXT,
		latency_ms INTEGER,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chat_session ON chat_history(session_id);
	CREATE INDEX IF NOT EXISTS idx_chat_created ON chat_history(created_at);
	`

	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

func (c *Client) InsertChatRecord(record *models.ChatRecord) error {
	query := `
		INSERT INTO chat_history (id, session_id, message, response, intent, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := c.db.Exec(
		query,
		record.ID,
		record.SessionID,
		record.Message,
		record.Response,
		record.Intent,
		record.LatencyMS,
		record.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat record: %w", err)
	}

	logger.Debug("Chat record stored",
		zap.String("id", record.ID),
		zap.String("session_id", record.SessionID),
	)
	return nil
}

// RecentChatRecords returns up to limit exchanges for a session, newest
// first.
func (c *Client) RecentChatRecords(sessionID string, limit int) ([]models.ChatRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, session_id, message, response, intent, latency_ms, created_at
		FROM chat_history
		WHERE session_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := c.db.Query(query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	var records []models.ChatRecord
	for rows.Next() {
		var record models.ChatRecord
		var createdAt int64
		err := rows.Scan(
			&record.ID,
			&record.SessionID,
			&record.Message,
			&record.Response,
			&record.Intent,
			&record.LatencyMS,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat record: %w", err)
		}
		record.CreatedAt = time.Unix(createdAt, 0)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat records: %w", err)
	}
	return records, nil
}
