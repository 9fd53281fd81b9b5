package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/entrybatch/journal_entry_app/internal/apperrors"
	"github.com/entrybatch/journal_entry_app/internal/core/domain"
	portssvc "github.com/entrybatch/journal_entry_app/internal/core/ports/services"
	"github.com/entrybatch/journal_entry_app/internal/middleware"
)

// batchColumns is the expected column layout, in order. Memo is optional.
var batchColumns = []string{"Date", "Reference", "Description", "Account Code", "Account Name", "Debit", "Credit", "Memo"}

const batchDateLayout = "2006-01-02"

// defaultBatchWorkers bounds the validation fan-out when no limit is configured.
const defaultBatchWorkers = 4

// batchService parses a tabular upload into reference-grouped journal
// entries and validates every group. Parsing (I/O-shaped) and validation
// (CPU-shaped) are separate stages; groups validate concurrently against a
// shared read-only directory snapshot.
type batchService struct {
	directory  portssvc.AccountDirectory
	validator  portssvc.ValidationSvcFacade
	maxWorkers int
}

// NewBatchService creates the batch ingestion pipeline.
func NewBatchService(directory portssvc.AccountDirectory, validator portssvc.ValidationSvcFacade, maxWorkers int) portssvc.BatchSvcFacade {
	if maxWorkers <= 0 {
		maxWorkers = defaultBatchWorkers
	}
	return &batchService{
		directory:  directory,
		validator:  validator,
		maxWorkers: maxWorkers,
	}
}

var _ portssvc.BatchSvcFacade = (*batchService)(nil)

// rowGroup collects the parsed rows sharing one reference, in row order.
type rowGroup struct {
	reference string
	rows      []domain.RawRow
}

// Ingest implements portssvc.BatchSvcFacade. A malformed row or an invalid
// group never aborts the file: the report always covers everything that
// could be read, so the caller can correct the whole upload in one pass.
// Cancellation is checked between groups; a cancelled run returns the
// groups validated so far with Partial set.
func (s *batchService) Ingest(ctx context.Context, fileBytes []byte, format domain.BatchFormat) (*domain.BatchReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, fileErrors, err := s.parseRows(fileBytes, format)
	if err != nil {
		return nil, err
	}

	accounts, err := s.directory.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot account directory: %w", err)
	}

	groups := groupByReference(rows)

	// Fan out one validation per group. Results land in a slice indexed by
	// first-appearance order so the merged report is deterministic
	// regardless of scheduling.
	results := make([]domain.BatchGroup, len(groups))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.maxWorkers)
	scheduled := 0
	for i := range groups {
		if egCtx.Err() != nil {
			break
		}
		scheduled++
		idx := i
		eg.Go(func() error {
			results[idx] = s.validateGroup(groups[idx], accounts)
			return nil
		})
	}
	// Workers never return errors; Wait only observes parent cancellation.
	_ = eg.Wait()

	report := &domain.BatchReport{
		Groups:    results[:scheduled],
		RowErrors: fileErrors,
		Partial:   scheduled < len(groups),
	}
	report.OverallValid = !report.Partial && len(fileErrors) == 0
	for _, g := range report.Groups {
		if !g.Result.Valid || len(g.RowErrors) > 0 {
			report.OverallValid = false
		}
	}

	logger.Info("Batch ingestion completed",
		slog.Int("groups", len(report.Groups)),
		slog.Int("file_row_errors", len(fileErrors)),
		slog.Bool("overall_valid", report.OverallValid),
		slog.Bool("partial", report.Partial),
	)
	return report, nil
}

// parseRows turns the raw upload into an ordered sequence of RawRow records
// plus row-level errors for everything that could not be parsed.
func (s *batchService) parseRows(fileBytes []byte, format domain.BatchFormat) ([]domain.RawRow, []domain.RowError, error) {
	switch format {
	case domain.FormatCSV:
		return parseCSVRows(fileBytes)
	case domain.FormatXLSX:
		return parseXLSXRows(fileBytes)
	default:
		return nil, nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, format)
	}
}

func parseCSVRows(fileBytes []byte) ([]domain.RawRow, []domain.RowError, error) {
	reader := csv.NewReader(bytes.NewReader(fileBytes))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []domain.RawRow
	var rowErrors []domain.RowError
	rowNo := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNo++
		if err != nil {
			no := rowNo
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				no = parseErr.Line
			}
			rowErrors = append(rowErrors, domain.RowError{
				RowNo:   no,
				Code:    domain.CodeMalformedRow,
				Message: err.Error(),
			})
			continue
		}
		if rowNo == 1 && isHeaderRow(record) {
			continue
		}
		row, rowErr := parseRecord(rowNo, record)
		if rowErr != nil {
			rowErrors = append(rowErrors, *rowErr)
			continue
		}
		rows = append(rows, row)
	}
	return rows, rowErrors, nil
}

func parseXLSXRows(fileBytes []byte) ([]domain.RawRow, []domain.RowError, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: not a readable XLSX workbook: %v", apperrors.ErrUnsupportedFormat, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	var rows []domain.RawRow
	var rowErrors []domain.RowError
	for i, record := range records {
		rowNo := i + 1
		if rowNo == 1 && isHeaderRow(record) {
			continue
		}
		if len(record) == 0 {
			continue // excelize yields empty slices for blank rows
		}
		row, rowErr := parseRecord(rowNo, record)
		if rowErr != nil {
			rowErrors = append(rowErrors, *rowErr)
			continue
		}
		rows = append(rows, row)
	}
	return rows, rowErrors, nil
}

// isHeaderRow detects the conventional header line so files exported with
// column titles ingest the same as bare ones.
func isHeaderRow(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), batchColumns[0])
}

// parseRecord maps one raw record onto the expected columns. The Memo
// column may be absent; everything before it is required positionally.
func parseRecord(rowNo int, record []string) (domain.RawRow, *domain.RowError) {
	if len(record) < len(batchColumns)-1 {
		return domain.RawRow{}, &domain.RowError{
			RowNo:   rowNo,
			Code:    domain.CodeMalformedRow,
			Message: fmt.Sprintf("expected %d columns, got %d", len(batchColumns), len(record)),
		}
	}

	cells := make([]string, len(batchColumns))
	for i := range record {
		if i >= len(cells) {
			break
		}
		cells[i] = strings.TrimSpace(record[i])
	}

	date, err := time.Parse(batchDateLayout, cells[0])
	if err != nil {
		return domain.RawRow{}, &domain.RowError{
			RowNo:   rowNo,
			Code:    domain.CodeMalformedRow,
			Message: fmt.Sprintf("date %q is not in YYYY-MM-DD format", cells[0]),
		}
	}
	if cells[1] == "" {
		return domain.RawRow{}, &domain.RowError{
			RowNo:   rowNo,
			Code:    domain.CodeMalformedRow,
			Message: "reference column is empty",
		}
	}

	return domain.RawRow{
		RowNo:       rowNo,
		Date:        date,
		Reference:   cells[1],
		Description: cells[2],
		AccountCode: cells[3],
		AccountName: cells[4], // advisory only; never drives matching
		Debit:       cells[5],
		Credit:      cells[6],
		Memo:        cells[7],
	}, nil
}

// groupByReference buckets rows into one group per reference, preserving
// the first-appearance order of each reference. All rows sharing a
// reference form one journal entry.
func groupByReference(rows []domain.RawRow) []*rowGroup {
	index := make(map[string]*rowGroup)
	var ordered []*rowGroup
	for _, row := range rows {
		g, ok := index[row.Reference]
		if !ok {
			g = &rowGroup{reference: row.Reference}
			index[row.Reference] = g
			ordered = append(ordered, g)
		}
		g.rows = append(g.rows, row)
	}
	return ordered
}

// validateGroup assembles a journal entry from one reference group and runs
// it through the entry validator. Line IDs carry the source row number so
// validation errors point back at the exact upload row.
func (s *batchService) validateGroup(g *rowGroup, accounts domain.AccountSet) domain.BatchGroup {
	var rowErrors []domain.RowError
	lines := make([]domain.JournalLine, 0, len(g.rows))

	entry := domain.JournalEntry{
		EntryID:   uuid.NewString(),
		Reference: g.reference,
		Status:    domain.Draft,
	}

	for i, row := range g.rows {
		if i == 0 {
			entry.EntryDate = row.Date
			entry.Description = row.Description
		}
		debit, debitErr := parseAmountCell(row.Debit)
		credit, creditErr := parseAmountCell(row.Credit)
		if debitErr != nil || creditErr != nil {
			cell := row.Debit
			if debitErr == nil {
				cell = row.Credit
			}
			rowErrors = append(rowErrors, domain.RowError{
				RowNo:   row.RowNo,
				Code:    domain.CodeMalformedRow,
				Message: fmt.Sprintf("amount %q is not a number", cell),
			})
			continue
		}

		// Resolve the account code by exact match. When it does not
		// resolve, the raw code is kept as the reference so the line
		// validator reports MISSING_ACCOUNT with the code in hand.
		accountID := row.AccountCode
		if acc, found := accounts.ByCode(row.AccountCode); found {
			accountID = acc.AccountID
		}

		lines = append(lines, domain.JournalLine{
			LineID:       fmt.Sprintf("row-%d", row.RowNo),
			AccountID:    accountID,
			Description:  row.Memo,
			DebitAmount:  debit,
			CreditAmount: credit,
			LineNo:       row.RowNo,
		})
	}
	entry.Lines = lines

	return domain.BatchGroup{
		Reference: g.reference,
		Entry:     &entry,
		RowErrors: rowErrors,
		Result:    s.validator.ValidateEntry(entry, accounts),
	}
}

// parseAmountCell parses a Debit/Credit cell. An empty cell means zero;
// thousands separators are tolerated.
func parseAmountCell(cell string) (decimal.Decimal, error) {
	cell = strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if cell == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(cell)
}
