package adapters

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/chat-relay/chat-relay/relay/chat"
	"github.com/chat-relay/chat-relay/relay/chat/migrations"
	ports "github.com/chat-relay/chat-relay/relay/chat/ports"
)

// LibSQLMessageStore implements MessageStore on an embedded libsql database.
// A single mutex serializes append/read/clear so a reader only ever observes
// some total order of completed operations.
type LibSQLMessageStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewLibSQLMessageStore creates a store over an already opened connection
// and ensures the schema exists. Safe to call on every process start.
func NewLibSQLMessageStore(db *sql.DB) (*LibSQLMessageStore, error) {
	if err := migrate(db); err != nil {
		return nil, &chat.StorageError{Op: "migrate", Cause: err}
	}
	return &LibSQLMessageStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

// Append persists a new turn and returns it with its assigned sequence id.
// The insert is committed before Append returns.
func (s *LibSQLMessageStore) Append(ctx context.Context, sessionID string, role ports.Role, content string) (ports.Turn, error) {
	if strings.TrimSpace(content) == "" {
		return ports.Turn{}, &chat.ValidationError{Message: "content must not be empty"}
	}
	if !role.Valid() {
		return ports.Turn{}, &chat.ValidationError{Message: "unknown role: " + string(role)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// stored as RFC3339 text so read-back does not depend on driver-side
	// time conversion
	createdAt := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (session_id, role, message, timestamp) VALUES (?, ?, ?, ?)`,
		sessionID, string(role), content, createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return ports.Turn{}, &chat.StorageError{Op: "append", Cause: err}
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return ports.Turn{}, &chat.StorageError{Op: "append", Cause: err}
	}

	return ports.Turn{
		Seq:       seq,
		Role:      role,
		Content:   content,
		CreatedAt: createdAt,
	}, nil
}

// ReadAll returns every turn for the session in ascending sequence order.
func (s *LibSQLMessageStore) ReadAll(ctx context.Context, sessionID string) ([]ports.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, role, message, timestamp FROM turns WHERE session_id = ? ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, &chat.StorageError{Op: "read", Cause: err}
	}
	defer rows.Close()

	var turns []ports.Turn
	for rows.Next() {
		var (
			turn      ports.Turn
			role      string
			createdAt string
		)
		if err := rows.Scan(&turn.Seq, &role, &turn.Content, &createdAt); err != nil {
			return nil, &chat.StorageError{Op: "read", Cause: err}
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, &chat.StorageError{Op: "read", Cause: err}
		}
		turn.Role = ports.Role(role)
		turn.CreatedAt = ts
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, &chat.StorageError{Op: "read", Cause: err}
	}

	return turns, nil
}

// Clear removes all turns for the session in a single statement.
func (s *LibSQLMessageStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM turns WHERE session_id = ?`, sessionID); err != nil {
		return &chat.StorageError{Op: "clear", Cause: err}
	}
	return nil
}

var _ ports.MessageStore = (*LibSQLMessageStore)(nil)
