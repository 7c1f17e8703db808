package chatports

import (
	"context"
	"time"
)

// Role tags who authored a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is a role the store accepts.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Turn is one immutable entry in the conversation log.
type Turn struct {
	Seq       int64     // store-assigned, ascending; defines total order
	Role      Role      // "user" | "assistant"
	Content   string    // non-empty text
	CreatedAt time.Time // server-side timestamp, non-decreasing with Seq
}

// MessageStore persists the ordered conversation log. Implementations must
// serialize Append/ReadAll/Clear against each other so a reader only ever
// observes the result of completed operations.
type MessageStore interface {
	// Append durably persists a new turn before returning. Content that is
	// empty after trimming is rejected with a ValidationError.
	Append(ctx context.Context, sessionID string, role Role, content string) (Turn, error)
	// ReadAll returns every turn for the session in ascending Seq order.
	ReadAll(ctx context.Context, sessionID string) ([]Turn, error)
	// Clear atomically removes all turns for the session.
	Clear(ctx context.Context, sessionID string) error
}
