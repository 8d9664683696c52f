package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// DefaultLimit is used by Recent when the caller asks for zero messages
const DefaultLimit = 50

// MaxLimit caps a single Recent call
const MaxLimit = 500

// Message is one chat message as relayed to a room
type Message struct {
	ID                string    `db:"id" json:"id"`
	Room              string    `db:"room" json:"room"`
	Username          string    `db:"username" json:"username"`
	Message           string    `db:"message" json:"message"`
	TranslatedMessage string    `db:"translated_message" json:"translated_message"`
	OriginalLang      string    `db:"original_lang" json:"original_lang"`
	TargetLang        string    `db:"target_lang" json:"target_lang"`
	Timestamp         string    `db:"timestamp" json:"timestamp"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// Store saves and loads room history
type Store interface {
	Save(ctx context.Context, msg Message) error
	Recent(ctx context.Context, room string, limit int) ([]Message, error)
	Close() error
}

// SQLStore keeps history in a SQLite database
type SQLStore struct {
	db     *sqlx.DB
	logger *zap.SugaredLogger
}

// Open opens (creating if needed) the database at path and migrates it.
// An empty path returns a store that keeps nothing.
func Open(path string, logger *zap.SugaredLogger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if path == "" {
		logger.Infow("chat history disabled")
		return NopStore{}, nil
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// go-sqlite3 serializes writers anyway and ":memory:" is per connection
	db.SetMaxOpenConns(1)

	s := &SQLStore{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Infow("chat history opened", "path", path)
	return s, nil
}

// Save stores msg. Messages with an ID that is already stored are ignored.
func (s *SQLStore) Save(ctx context.Context, msg Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	const query = `
        INSERT OR IGNORE INTO messages
            (id, room, username, message, translated_message, original_lang, target_lang, timestamp, seq, created_at)
        VALUES
            (:id, :room, :username, :message, :translated_message, :original_lang, :target_lang, :timestamp,
             (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages), :created_at);`

	if _, err := s.db.NamedExecContext(ctx, query, msg); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// Recent returns up to limit of the newest messages in room, oldest first
func (s *SQLStore) Recent(ctx context.Context, room string, limit int) ([]Message, error) {
	limit = clampLimit(limit)

	const query = `
        SELECT id, room, username, message, translated_message, original_lang, target_lang, timestamp, created_at
        FROM (
            SELECT * FROM messages WHERE room = ? ORDER BY seq DESC LIMIT ?
        ) ORDER BY seq ASC;`

	msgs := []Message{}
	if err := s.db.SelectContext(ctx, &msgs, query, room, limit); err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", room, err)
	}
	return msgs, nil
}

// Close closes the database
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// NopStore is used when history is disabled
type NopStore struct{}

// Save discards msg
func (NopStore) Save(context.Context, Message) error { return nil }

// Recent always returns an empty slice
func (NopStore) Recent(context.Context, string, int) ([]Message, error) { return []Message{}, nil }

// Close does nothing
func (NopStore) Close() error { return nil }
