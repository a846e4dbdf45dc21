package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MikeBiancalana/dateprompt/internal/logger"
	"github.com/MikeBiancalana/dateprompt/internal/perf"
)

// ErrSessionNotFound is returned by GetSession for an unknown ID
var ErrSessionNotFound = errors.New("session not found")

// Repository handles database operations for sessions and answers
type Repository struct {
	db *Database
}

// NewRepository creates a new repository
func NewRepository(db *Database) *Repository {
	return &Repository{db: db}
}

// SaveSession stores a session and its answers in one transaction
func (r *Repository) SaveSession(s *Session) error {
	logger.Debug("SaveSession", "session_id", s.ID, "answer_count", len(s.Answers))
	defer perf.Start("SaveSession", 250*time.Millisecond, "session_id", s.ID).Stop()

	tx, err := r.db.BeginTx()
	if err != nil {
		logger.Error("SaveSession", "error", err, "session_id", s.ID, "operation", "begin_transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO sessions (id, source, created_at)
		VALUES (?, ?, ?)
	`, s.ID, s.Source, s.CreatedAt.Unix())
	if err != nil {
		logger.Error("SaveSession", "error", err, "session_id", s.ID, "operation", "insert_session")
		return fmt.Errorf("failed to save session: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM answers WHERE session_id = ?", s.ID); err != nil {
		logger.Error("SaveSession", "error", err, "session_id", s.ID, "operation", "delete_old_answers")
		return fmt.Errorf("failed to delete old answers: %w", err)
	}

	for _, a := range s.Answers {
		_, err = tx.Exec(`
			INSERT INTO answers (id, session_id, name, kind, value, position, answered_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, a.ID, s.ID, a.Name, string(a.Kind), a.Value, a.Position, a.AnsweredAt.Unix())
		if err != nil {
			logger.Error("SaveSession", "error", err, "session_id", s.ID, "answer_id", a.ID, "operation", "insert_answer")
			return fmt.Errorf("failed to save answer %q: %w", a.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("SaveSession", "error", err, "session_id", s.ID, "operation", "commit_transaction")
		return err
	}

	return nil
}

// GetSession loads a session with its answers in question order
func (r *Repository) GetSession(id string) (*Session, error) {
	var createdAt int64
	s := &Session{ID: id}

	err := r.db.DB().QueryRow("SELECT source, created_at FROM sessions WHERE id = ?", id).Scan(&s.Source, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	s.CreatedAt = time.Unix(createdAt, 0)

	s.Answers, err = r.queryAnswers(`
		SELECT id, session_id, name, kind, value, position, answered_at
		FROM answers WHERE session_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// ListAnswers returns the most recent answers, newest first. A limit of zero
// or less returns everything.
func (r *Repository) ListAnswers(limit int) ([]Answer, error) {
	query := `
		SELECT a.id, a.session_id, a.name, a.kind, a.value, a.position, a.answered_at
		FROM answers a
		JOIN sessions s ON s.id = a.session_id
		ORDER BY s.created_at DESC, a.session_id DESC, a.position DESC
	`
	if limit > 0 {
		return r.queryAnswers(query+" LIMIT ?", limit)
	}
	return r.queryAnswers(query)
}

// ListAnswersByName returns the history of one question, newest first
func (r *Repository) ListAnswersByName(name string, limit int) ([]Answer, error) {
	query := `
		SELECT a.id, a.session_id, a.name, a.kind, a.value, a.position, a.answered_at
		FROM answers a
		JOIN sessions s ON s.id = a.session_id
		WHERE a.name = ?
		ORDER BY s.created_at DESC, a.session_id DESC
	`
	if limit > 0 {
		return r.queryAnswers(query+" LIMIT ?", name, limit)
	}
	return r.queryAnswers(query, name)
}

// DeleteSession removes a session; its answers cascade
func (r *Repository) DeleteSession(id string) error {
	res, err := r.db.DB().Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

func (r *Repository) queryAnswers(query string, args ...any) ([]Answer, error) {
	rows, err := r.db.DB().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	answers := make([]Answer, 0)
	for rows.Next() {
		var a Answer
		var kind string
		var answeredAt int64
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Name, &kind, &a.Value, &a.Position, &answeredAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		a.Kind = Kind(kind)
		a.AnsweredAt = time.Unix(answeredAt, 0)
		answers = append(answers, a)
	}

	return answers, rows.Err()
}
