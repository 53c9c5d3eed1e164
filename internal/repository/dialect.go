package store

import (
	"strconv"
	"strings"
)

// dialect captures the SQL differences between the supported databases.
type dialect struct {
	name         string
	driver       string
	dollarParams bool
	migrations   []string
}

func (d dialect) rebind(query string) string {
	if !d.dollarParams {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

var sqliteDialect = dialect{
	name:   "sqlite",
	driver: "sqlite3",
	migrations: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			name TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS chat_interactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			context TEXT NOT NULL DEFAULT 'DEFAULT_PROCESSING',
			message_type TEXT NOT NULL CHECK (message_type IN ('USER', 'BOT')),
			message_text TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_interactions_user ON chat_interactions(user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_interactions_context ON chat_interactions(context)`,
		`CREATE TABLE IF NOT EXISTS campaigns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			budget INTEGER,
			status TEXT NOT NULL DEFAULT 'draft',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
}

var postgresDialect = dialect{
	name:         "postgres",
	driver:       "pgx",
	dollarParams: true,
	migrations: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL UNIQUE,
			name TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS chat_interactions (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			context TEXT NOT NULL DEFAULT 'DEFAULT_PROCESSING',
			message_type TEXT NOT NULL CHECK (message_type IN ('USER', 'BOT')),
			message_text TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_interactions_user ON chat_interactions(user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_interactions_context ON chat_interactions(context)`,
		`CREATE TABLE IF NOT EXISTS campaigns (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			budget INTEGER,
			status TEXT NOT NULL DEFAULT 'draft',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
}

// isPostgresDSN reports whether dsn addresses a PostgreSQL server.
func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// sqliteDSN turns on foreign keys, a busy timeout and immediate write
// transactions unless dsn already sets them. The pragmas go in the DSN so every
// pooled connection gets them. Immediate transactions take the write lock at
// BEGIN, so concurrent writers wait on the busy timeout instead of failing a
// lock upgrade.
func sqliteDSN(dsn string) string {
	var params []string
	if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk=") {
		params = append(params, "_foreign_keys=on")
	}
	if !strings.Contains(dsn, "_busy_timeout") && !strings.Contains(dsn, "_timeout=") {
		params = append(params, "_busy_timeout=5000")
	}
	if !strings.Contains(dsn, "_txlock") {
		params = append(params, "_txlock=immediate")
	}
	if len(params) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}
