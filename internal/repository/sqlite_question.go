package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/matchday/internal/db"
	"github.com/alexanderramin/matchday/internal/domain"
)

// SQLiteQuestionRepo implements QuestionRepo using a SQLite database.
type SQLiteQuestionRepo struct {
	db db.DBTX
}

// NewSQLiteQuestionRepo creates a new SQLiteQuestionRepo.
func NewSQLiteQuestionRepo(conn db.DBTX) *SQLiteQuestionRepo {
	return &SQLiteQuestionRepo{db: conn}
}

var _ QuestionRepo = (*SQLiteQuestionRepo)(nil)

func (r *SQLiteQuestionRepo) Record(ctx context.Context, q *domain.Question) error {
	query := `INSERT INTO questions (id, request_id, text, source, outcome, asked_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		q.ID,
		q.RequestID,
		q.Text,
		q.Source,
		q.Outcome,
		q.AskedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting question: %w", err)
	}
	return nil
}

func (r *SQLiteQuestionRepo) GetByRequestID(ctx context.Context, requestID string) (*domain.Question, error) {
	query := `SELECT id, request_id, text, source, outcome, asked_at
		FROM questions WHERE request_id = ?`
	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("question %s: %w", requestID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning question: %w", err)
	}
	return q, nil
}

func (r *SQLiteQuestionRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Question, error) {
	query := `SELECT id, request_id, text, source, outcome, asked_at
		FROM questions ORDER BY asked_at DESC, rowid DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning question: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(s scanner) (*domain.Question, error) {
	var (
		q       domain.Question
		source  sql.NullString
		askedAt string
	)
	if err := s.Scan(&q.ID, &q.RequestID, &q.Text, &source, &q.Outcome, &askedAt); err != nil {
		return nil, err
	}
	q.Source = nullableString(source)
	q.AskedAt = parseTime(askedAt)
	return &q, nil
}
