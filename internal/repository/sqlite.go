package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/xiaot623/adgenie/internal/domain"
)

// SQLStore implements Store on database/sql for SQLite and PostgreSQL.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open opens the store addressed by dsn. postgres:// and postgresql:// URLs use
// PostgreSQL; anything else is handed to SQLite.
func Open(dsn string) (*SQLStore, error) {
	if isPostgresDSN(dsn) {
		return NewPostgresStore(dsn)
	}
	return NewSQLiteStore(dsn)
}

// NewSQLiteStore creates a new SQLite store. Migrate must be called before use.
func NewSQLiteStore(dsn string) (*SQLStore, error) {
	db, err := sql.Open(sqliteDialect.driver, sqliteDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}
	return &SQLStore{db: db, dialect: sqliteDialect}, nil
}

// NewPostgresStore creates a new PostgreSQL store. Migrate must be called before use.
func NewPostgresStore(dsn string) (*SQLStore, error) {
	db, err := sql.Open(postgresDialect.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &SQLStore{db: db, dialect: postgresDialect}, nil
}

// Dialect returns the name of the SQL dialect in use.
func (s *SQLStore) Dialect() string {
	return s.dialect.name
}

// Migrate creates the schema. It is idempotent.
func (s *SQLStore) Migrate(ctx context.Context) error {
	for _, m := range s.dialect.migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Ping checks the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// WithTx runs fn inside a transaction.
func (s *SQLStore) WithTx(ctx context.Context, fn func(tx Tx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
			}
		}
	}()

	if err = fn(&txStore{q: sqlTx, dialect: s.dialect}); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSessionInteractions returns the most recent interactions of a session, oldest first.
func (s *SQLStore) GetSessionInteractions(ctx context.Context, sessionID string, limit int) ([]domain.ChatInteraction, error) {
	query := `SELECT ci.id, ci.user_id, ci.context, ci.message_type, ci.message_text, ci.created_at
		FROM chat_interactions ci
		JOIN users u ON u.id = ci.user_id
		WHERE u.session_id = ?
		ORDER BY ci.id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interactions := []domain.ChatInteraction{}
	for rows.Next() {
		var ci domain.ChatInteraction
		if err := rows.Scan(&ci.ID, &ci.UserID, &ci.Context, &ci.MessageType, &ci.MessageText, &ci.CreatedAt); err != nil {
			return nil, err
		}
		interactions = append(interactions, ci)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(interactions)-1; i < j; i, j = i+1, j-1 {
		interactions[i], interactions[j] = interactions[j], interactions[i]
	}
	return interactions, nil
}

// CountInteractions counts every stored interaction, USER and BOT rows alike.
func (s *SQLStore) CountInteractions(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_interactions`).Scan(&n)
	return n, err
}

// CountInteractionsByContext counts interactions grouped by context label.
func (s *SQLStore) CountInteractionsByContext(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT context, COUNT(*) FROM chat_interactions GROUP BY context`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dist := make(map[string]int64)
	for rows.Next() {
		var label string
		var n int64
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		dist[label] = n
	}
	return dist, rows.Err()
}

// CountUsers counts stored users.
func (s *SQLStore) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// txStore implements Tx on top of an open transaction.
type txStore struct {
	q       queryer
	dialect dialect
}

// GetUserBySession retrieves a user by session token.
func (t *txStore) GetUserBySession(ctx context.Context, sessionID string) (*domain.User, error) {
	var user domain.User
	var name sql.NullString
	err := t.q.QueryRowContext(ctx,
		t.dialect.rebind(`SELECT id, session_id, name, created_at FROM users WHERE session_id = ?`),
		sessionID).Scan(&user.ID, &user.SessionID, &name, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if name.Valid {
		user.Name = name.String
	}
	return &user, nil
}

// CreateUser inserts a user unless its session token is already taken.
func (t *txStore) CreateUser(ctx context.Context, user *domain.User) (bool, error) {
	var id int64
	err := t.q.QueryRowContext(ctx,
		t.dialect.rebind(`INSERT INTO users (session_id, name, created_at) VALUES (?, ?, ?)
			ON CONFLICT (session_id) DO NOTHING RETURNING id`),
		user.SessionID, user.Name, user.CreatedAt).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	user.ID = id
	return true, nil
}

// CreateInteraction inserts one interaction and sets its ID.
func (t *txStore) CreateInteraction(ctx context.Context, interaction *domain.ChatInteraction) error {
	label := interaction.Context
	if label == "" {
		label = domain.ContextDefaultProcessing
	}
	var id int64
	err := t.q.QueryRowContext(ctx,
		t.dialect.rebind(`INSERT INTO chat_interactions (user_id, context, message_type, message_text, created_at)
			VALUES (?, ?, ?, ?, ?) RETURNING id`),
		interaction.UserID, label, interaction.MessageType, interaction.MessageText, interaction.CreatedAt).Scan(&id)
	if err != nil {
		return err
	}
	interaction.ID = id
	interaction.Context = label
	return nil
}
