package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/incubator/internal/db"
	"github.com/alexanderramin/incubator/internal/domain"
	"github.com/google/uuid"
)

// DefaultListLimit caps ListRecent when no positive limit is given.
const DefaultListLimit = 20

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteCallLogRepo implements CallLogRepo on the llm_calls table.
type SQLiteCallLogRepo struct {
	db db.DBTX
}

// NewSQLiteCallLogRepo creates a new SQLiteCallLogRepo.
func NewSQLiteCallLogRepo(db db.DBTX) *SQLiteCallLogRepo {
	return &SQLiteCallLogRepo{db: db}
}

func (r *SQLiteCallLogRepo) Record(ctx context.Context, c *domain.LLMCall) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO llm_calls (id, task, backend, model, attempts, latency_ms, success, error_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Task,
		c.Backend,
		c.Model,
		c.Attempts,
		c.LatencyMs,
		boolToInt(c.Success),
		c.ErrorCode,
		c.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting llm call: %w", err)
	}
	return nil
}

func (r *SQLiteCallLogRepo) ListRecent(ctx context.Context, limit int) ([]*domain.LLMCall, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	query := `SELECT id, task, backend, model, attempts, latency_ms, success, error_code, created_at
		FROM llm_calls ORDER BY created_at DESC, rowid DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing llm calls: %w", err)
	}
	defer rows.Close()

	var calls []*domain.LLMCall
	for rows.Next() {
		c, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

func (r *SQLiteCallLogRepo) Summary(ctx context.Context) (*domain.CallSummary, error) {
	s := &domain.CallSummary{ByErrorCode: map[string]int{}}

	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(success), 0), AVG(latency_ms) FROM llm_calls`).
		Scan(&s.Total, &s.Succeeded, &avg)
	if err != nil {
		return nil, fmt.Errorf("summarizing llm calls: %w", err)
	}
	s.Failed = s.Total - s.Succeeded
	s.AvgLatencyMs = avg.Float64

	rows, err := r.db.QueryContext(ctx,
		`SELECT error_code, COUNT(*) FROM llm_calls WHERE success = 0 GROUP BY error_code`)
	if err != nil {
		return nil, fmt.Errorf("grouping llm call errors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		var n int
		if err := rows.Scan(&code, &n); err != nil {
			return nil, fmt.Errorf("scanning error group: %w", err)
		}
		s.ByErrorCode[code] = n
	}
	return s, rows.Err()
}

// Prune deletes calls recorded before the cutoff and reports how many went.
func (r *SQLiteCallLogRepo) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM llm_calls WHERE created_at < ?`,
		before.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("pruning llm calls: %w", err)
	}
	return res.RowsAffected()
}

func scanCall(rows *sql.Rows) (*domain.LLMCall, error) {
	var c domain.LLMCall
	var success int
	var createdAt string
	if err := rows.Scan(&c.ID, &c.Task, &c.Backend, &c.Model, &c.Attempts, &c.LatencyMs, &success, &c.ErrorCode, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning llm call: %w", err)
	}
	c.Success = success == 1
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	c.CreatedAt = t
	return &c, nil
}
