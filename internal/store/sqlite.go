package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/billedapp/billflow/internal/domain/entity"
	"github.com/billedapp/billflow/internal/domain/workflow"
	"github.com/billedapp/billflow/pkg/database"
)

// Migrations is the bill schema applied by pkg/database.Migrator.
var Migrations = []database.Migration{
	{
		Version: 1,
		Name:    "create_bills",
		SQL: `
			CREATE TABLE IF NOT EXISTS bills (
				id TEXT PRIMARY KEY,
				email TEXT NOT NULL,
				name TEXT NOT NULL DEFAULT '',
				type TEXT NOT NULL DEFAULT '',
				amount REAL NOT NULL DEFAULT 0,
				date TEXT NOT NULL DEFAULT '',
				vat TEXT NOT NULL DEFAULT '',
				pct INTEGER NOT NULL DEFAULT 0,
				status TEXT NOT NULL DEFAULT 'pending',
				commentary TEXT NOT NULL DEFAULT '',
				comment_admin TEXT NOT NULL DEFAULT '',
				file_url TEXT NOT NULL DEFAULT '',
				file_name TEXT NOT NULL DEFAULT '',
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
	{
		Version: 2,
		Name:    "index_bills_status",
		SQL:     `CREATE INDEX IF NOT EXISTS idx_bills_status ON bills(status);`,
	},
}

// SQLiteStore implements Store on top of pkg/database.
type SQLiteStore struct {
	db     *database.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a SQLite-backed bill store.
func NewSQLiteStore(db *database.DB, logger *zap.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, logger: logger}
}

// Bills returns the bill collection client.
func (s *SQLiteStore) Bills() Client {
	return &billClient{db: s.db, logger: s.logger}
}

type billClient struct {
	db     *database.DB
	logger *zap.Logger
}

const billColumns = `id, email, name, type, amount, date, vat, pct, status,
	commentary, comment_admin, file_url, file_name, created_at`

// List returns every stored bill, unordered; callers sort.
func (c *billClient) List(ctx context.Context) ([]entity.Bill, error) {
	query := fmt.Sprintf("SELECT %s FROM bills", billColumns)

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		c.logger.Error("Failed to list bills", zap.Error(err))
		return nil, NewTransportError(http.StatusInternalServerError)
	}
	defer rows.Close()

	var bills []entity.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			c.logger.Error("Failed to scan bill row", zap.Error(err))
			return nil, NewTransportError(http.StatusInternalServerError)
		}
		bills = append(bills, *bill)
	}
	if err := rows.Err(); err != nil {
		return nil, NewTransportError(http.StatusInternalServerError)
	}

	return bills, nil
}

// Update replaces the record selected by op.Selector with the JSON document
// in op.Data. Transitions out of a terminal status are rejected.
func (c *billClient) Update(ctx context.Context, op UpdateOp) (*entity.Bill, error) {
	var bill entity.Bill
	if err := json.Unmarshal([]byte(op.Data), &bill); err != nil {
		return nil, fmt.Errorf("failed to decode bill update: %w", err)
	}
	bill.ID = op.Selector

	current, err := c.getByID(ctx, op.Selector)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, NewTransportError(http.StatusNotFound)
	}

	if bill.Status != current.Status {
		if err := c.checkTransition(ctx, current.Status, bill.Status); err != nil {
			return nil, err
		}
	}

	// The status predicate makes the read-validate-write atomic: a
	// concurrent transition changes the stored status first, this write
	// then matches no row, and the loser is rejected instead of moving a
	// bill out of a terminal state.
	query := `
		UPDATE bills SET email = ?, name = ?, type = ?, amount = ?, date = ?,
			vat = ?, pct = ?, status = ?, commentary = ?, comment_admin = ?,
			file_url = ?, file_name = ?
		WHERE id = ? AND status = ?
	`
	result, err := c.db.ExecContext(ctx, query,
		bill.Email, bill.Name, bill.Type, bill.Amount, bill.Date,
		bill.VAT, bill.PCT, bill.Status, bill.CommentaryEmployee, bill.CommentAdmin,
		bill.FileURL, bill.FileName, bill.ID, current.Status,
	)
	if err != nil {
		c.logger.Error("Failed to update bill",
			zap.String("id", bill.ID),
			zap.Error(err))
		return nil, NewTransportError(http.StatusInternalServerError)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, NewTransportError(http.StatusInternalServerError)
	}
	if affected == 0 {
		stale, err := c.getByID(ctx, bill.ID)
		if err != nil {
			return nil, err
		}
		if stale == nil {
			return nil, NewTransportError(http.StatusNotFound)
		}
		return nil, fmt.Errorf("%w: bill %s moved from %s to %s concurrently",
			workflow.ErrInvalidTransition, bill.ID, current.Status, stale.Status)
	}

	bill.CreatedAt = current.CreatedAt
	return &bill, nil
}

// Create opens a new pending bill for the submission flow and returns the
// stored document URL plus the key used for the follow-up update.
func (c *billClient) Create(ctx context.Context, op CreateOp) (*CreateResult, error) {
	id := uuid.NewString()
	fileURL := fmt.Sprintf("/storage/bills/%s/%s", id, op.FileName)

	query := `INSERT INTO bills (id, email, status, file_url, file_name) VALUES (?, ?, ?, ?, ?)`
	_, err := c.db.ExecContext(ctx, query, id, op.Email, entity.StatusPending, fileURL, op.FileName)
	if err != nil {
		c.logger.Error("Failed to create bill",
			zap.String("email", op.Email),
			zap.Error(err))
		return nil, NewTransportError(http.StatusInternalServerError)
	}

	return &CreateResult{FileURL: fileURL, Key: id}, nil
}

func (c *billClient) checkTransition(ctx context.Context, from, to entity.Status) error {
	state := workflow.FromStatus(from)
	if !state.IsValid() {
		return fmt.Errorf("%w: %s", workflow.ErrInvalidState, from)
	}
	machine := workflow.NewReviewMachine(state)

	var trigger workflow.Trigger
	switch to {
	case entity.StatusAccepted:
		trigger = workflow.TriggerAccept
	case entity.StatusRefused:
		trigger = workflow.TriggerRefuse
	default:
		return fmt.Errorf("%w: %s", workflow.ErrInvalidState, to)
	}

	if err := machine.Fire(ctx, trigger); err != nil {
		return err
	}
	return nil
}

func (c *billClient) getByID(ctx context.Context, id string) (*entity.Bill, error) {
	query := fmt.Sprintf("SELECT %s FROM bills WHERE id = ?", billColumns)

	bill, err := scanBill(c.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get bill by ID",
			zap.String("id", id),
			zap.Error(err))
		return nil, NewTransportError(http.StatusInternalServerError)
	}

	return bill, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBill(row rowScanner) (*entity.Bill, error) {
	var bill entity.Bill
	err := row.Scan(
		&bill.ID, &bill.Email, &bill.Name, &bill.Type, &bill.Amount,
		&bill.Date, &bill.VAT, &bill.PCT, &bill.Status,
		&bill.CommentaryEmployee, &bill.CommentAdmin,
		&bill.FileURL, &bill.FileName, &bill.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bill, nil
}
