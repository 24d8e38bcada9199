package roster

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/openfest/gatekeeper/internal/dependencies/clock"
	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/services/identifier"
	"github.com/openfest/gatekeeper/internal/storage"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX
var ErrUnsupportedFormat = errors.New("unsupported roster format")

// ErrNoHeader is returned when the sheet has no usable header row
var ErrNoHeader = errors.New("roster has no header row")

// RowError records why a single row was skipped
type RowError struct {
	Row    int    `json:"row"` // 1-based, excluding the header
	Reason string `json:"reason"`
}

// Report summarises an import run. Failed rows are skipped, not fatal.
type Report struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

// Importer loads participant rosters from tabular files.
//
// Column names have drifted across roster revisions, so headers are matched
// against a set of known aliases rather than a fixed schema.
type Importer struct {
	storage   storage.Storage
	allocator *identifier.Allocator
	clock     clock.Clock
	logger    *slog.Logger
}

// New creates a new Importer
func New(storage storage.Storage, allocator *identifier.Allocator, clock clock.Clock, logger *slog.Logger) *Importer {
	return &Importer{
		storage:   storage,
		allocator: allocator,
		clock:     clock,
		logger:    logger.With(slog.String("component", "roster-importer")),
	}
}

// Import dispatches on the file extension
func (i *Importer) Import(ctx context.Context, filename string, r io.Reader) (*Report, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return i.ImportCSV(ctx, r)
	case ".xlsx":
		return i.ImportXLSX(ctx, r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// ImportCSV reads a CSV roster
func (i *Importer) ImportCSV(ctx context.Context, r io.Reader) (*Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows with missing trailing columns happen

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	return i.importRows(ctx, records)
}

// ImportXLSX reads the first sheet of an XLSX workbook
func (i *Importer) ImportXLSX(ctx context.Context, r io.Reader) (*Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	return i.importRows(ctx, rows)
}

// importRows maps the header, then imports each data row independently
func (i *Importer) importRows(ctx context.Context, rows [][]string) (*Report, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	cols := mapHeader(rows[0])
	if cols.name < 0 && cols.email < 0 {
		return nil, ErrNoHeader
	}

	report := &Report{}
	for n, row := range rows[1:] {
		rowNum := n + 1
		if isBlank(row) {
			continue
		}

		if err := i.importRow(ctx, cols, row); err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, RowError{Row: rowNum, Reason: err.Error()})
			i.logger.Warn("roster row skipped",
				slog.Int("row", rowNum),
				slog.String("reason", err.Error()))
			continue
		}
		report.Imported++
	}

	i.logger.Info("roster import complete",
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped))

	return report, nil
}

func (i *Importer) importRow(ctx context.Context, cols columns, row []string) error {
	name := cols.get(row, cols.name)
	email := cols.get(row, cols.email)
	if name == "" {
		return errors.New("missing name")
	}
	if email == "" {
		return errors.New("missing email")
	}

	var id model.ParticipantID
	if raw := cols.get(row, cols.id); raw != "" {
		id = model.ParticipantID(strings.ToUpper(raw))
		if err := i.allocator.Claim(ctx, id); err != nil {
			return err
		}
	} else {
		allocated, err := i.allocator.Allocate(ctx)
		if err != nil {
			return err
		}
		id = allocated
	}

	now := i.clock.Now()
	p := &model.Participant{
		ID:            id,
		Name:          name,
		Email:         email,
		Phone:         cols.get(row, cols.phone),
		College:       cols.get(row, cols.college),
		PaymentStatus: parsePayment(cols.get(row, cols.payment)),
		Category:      parseCategory(cols.get(row, cols.category)),
		Events:        splitEvents(cols.get(row, cols.events)),
		Status:        model.StatusRegistered,
		CreatedAt:     now,
		LastActionAt:  now,
	}

	return i.storage.SaveParticipant(ctx, p)
}

// columns holds the resolved index of each known field, -1 if absent
type columns struct {
	id       int
	name     int
	email    int
	phone    int
	college  int
	payment  int
	category int
	events   int
}

// headerAliases maps normalized header names to fields. The roster format
// has never been a stable contract, hence the breadth.
var headerAliases = map[string]string{
	"id": "id", "code": "id", "participantid": "id", "regid": "id",
	"name": "name", "fullname": "name", "participantname": "name",
	"email": "email", "emailid": "email", "mail": "email",
	"phone": "phone", "phoneno": "phone", "mobile": "phone",
	"mobileno": "phone", "contact": "phone", "contactno": "phone",
	"college": "college", "institution": "college", "institute": "college",
	"payment": "payment", "paymentstatus": "payment", "paid": "payment",
	"feepaid": "payment", "fee": "payment",
	"category": "category", "type": "category", "participanttype": "category",
	"events": "events", "registeredevents": "events", "eventlist": "events",
}

func mapHeader(header []string) columns {
	cols := columns{id: -1, name: -1, email: -1, phone: -1, college: -1, payment: -1, category: -1, events: -1}
	for idx, raw := range header {
		field, ok := headerAliases[normalizeHeader(raw)]
		if !ok {
			continue
		}
		switch field {
		case "id":
			cols.id = idx
		case "name":
			cols.name = idx
		case "email":
			cols.email = idx
		case "phone":
			cols.phone = idx
		case "college":
			cols.college = idx
		case "payment":
			cols.payment = idx
		case "category":
			cols.category = idx
		case "events":
			cols.events = idx
		}
	}
	return cols
}

// get returns the trimmed cell at idx, or "" when the column is absent or
// the row is short
func (c columns) get(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '.':
			return -1
		}
		return r
	}, h)
}

func parsePayment(raw string) model.PaymentStatus {
	switch strings.ToLower(raw) {
	case "paid", "yes", "true", "done", "1", "y":
		return model.PaymentPaid
	default:
		return model.PaymentPending
	}
}

func parseCategory(raw string) model.Category {
	normalized := normalizeHeader(raw)
	switch normalized {
	case "preregistered", "pre", "participant":
		return model.CategoryPreRegistered
	case "walkin":
		return model.CategoryWalkIn
	default:
		return model.CategoryAttendee
	}
}

func splitEvents(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	events := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			events = append(events, trimmed)
		}
	}
	return events
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
