package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entrybatch/journal_entry_app/internal/apperrors"
	"github.com/entrybatch/journal_entry_app/internal/core/domain"
	portsrepo "github.com/entrybatch/journal_entry_app/internal/core/ports/repositories"
	"github.com/entrybatch/journal_entry_app/internal/models"
)

// PgxEntryRepository persists journal entries and their lines in PostgreSQL.
type PgxEntryRepository struct {
	pool *pgxpool.Pool
}

// NewPgxEntryRepository creates a new repository for journal entry data.
func NewPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepository {
	return &PgxEntryRepository{pool: pool}
}

var _ portsrepo.EntryRepository = (*PgxEntryRepository)(nil)

func toModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		EntryDate:   d.EntryDate,
		Reference:   d.Reference,
		Description: d.Description,
		Status:      models.EntryStatus(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	entry := domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryDate:   m.EntryDate,
		Reference:   m.Reference,
		Description: m.Description,
		Status:      domain.EntryStatus(m.Status),
		Lines:       make([]domain.JournalLine, len(lines)),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	for i, l := range lines {
		entry.Lines[i] = domain.JournalLine{
			LineID:       l.LineID,
			AccountID:    l.AccountID,
			Description:  l.Description,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
			LineNo:       l.LineNo,
		}
	}
	return entry
}

// SaveEntry inserts an entry header and its lines atomically.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := toModelEntry(entry)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	entryQuery := `
		INSERT INTO journal_entries (entry_id, entry_date, reference, description, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryDate,
		m.Reference,
		m.Description,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation on reference
			return fmt.Errorf("%w: entry with reference %s already exists", apperrors.ErrDuplicate, m.Reference)
		}
		return fmt.Errorf("failed to save entry %s: %w", m.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, description, debit_amount, credit_amount, line_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range entry.Lines {
		_, err = tx.Exec(ctx, lineQuery,
			line.LineID,
			m.EntryID,
			line.AccountID,
			line.Description,
			line.DebitAmount,
			line.CreditAmount,
			line.LineNo,
		)
		if err != nil {
			return fmt.Errorf("failed to save line %s of entry %s: %w", line.LineID, m.EntryID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit entry %s: %w", m.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves an entry with its lines, ordered by line number.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	headerQuery := `
		SELECT entry_id, entry_date, reference, description, status, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries WHERE entry_id = $1;
	`
	var m models.JournalEntry
	err := r.pool.QueryRow(ctx, headerQuery, entryID).Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Reference,
		&m.Description,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query entry %s: %w", entryID, err)
	}

	lines, err := r.findLines(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry := toDomainEntry(m, lines)
	return &entry, nil
}

func (r *PgxEntryRepository) findLines(ctx context.Context, entryID string) ([]models.JournalLine, error) {
	lineQuery := `
		SELECT line_id, entry_id, account_id, description, debit_amount, credit_amount, line_no
		FROM journal_lines WHERE entry_id = $1 ORDER BY line_no;
	`
	rows, err := r.pool.Query(ctx, lineQuery, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var lines []models.JournalLine
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountID, &l.Description, &l.DebitAmount, &l.CreditAmount, &l.LineNo); err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("line row iteration failed: %w", err)
	}
	return lines, nil
}

// ListEntries retrieves a paginated list of entries (headers with lines),
// newest first.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, limit int, offset int) ([]domain.JournalEntry, error) {
	headerQuery := `
		SELECT entry_id, entry_date, reference, description, status, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries ORDER BY created_at DESC LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, headerQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var headers []models.JournalEntry
	for rows.Next() {
		var m models.JournalEntry
		if err := rows.Scan(&m.EntryID, &m.EntryDate, &m.Reference, &m.Description, &m.Status, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("entry row iteration failed: %w", err)
	}

	entries := make([]domain.JournalEntry, 0, len(headers))
	for _, m := range headers {
		lines, err := r.findLines(ctx, m.EntryID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, toDomainEntry(m, lines))
	}
	return entries, nil
}

// UpdateEntryStatus moves an entry to a new workflow status.
func (r *PgxEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, last_updated_by = $3, last_updated_at = $4
		WHERE entry_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, entryID, string(status), updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
