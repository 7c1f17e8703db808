// Package relay holds application-wide defaults shared across packages.
package relay

const (
	DefaultAppName = "chat-relay"

	// DefaultConfigPath is searched after the working directory.
	DefaultConfigPath = "/etc/chat-relay"

	// DefaultDatabasePath is the embedded libsql database file.
	DefaultDatabasePath = "chat_history.db"

	// DefaultSessionID identifies the single global conversation. The store
	// is keyed by session id so multi-session support only needs callers to
	// thread their own ids; the service pins this one.
	DefaultSessionID = "default"
)
