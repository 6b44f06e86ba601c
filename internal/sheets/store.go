// Package sheets persists bookings as rows of a Google Sheets spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"homebooking/internal/domain"
)

const (
	defaultSheetName = "Sheet1"
	valueInputOption = "USER_ENTERED"
	// dataColumns spans the 19 booking columns.
	dataColumns = "A:S"
)

var ErrNoSpreadsheet = errors.New("spreadsheet id is empty")

// Store appends booking rows to one sheet. The first write to an empty
// sheet puts the header row in place.
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	sheetName     string
	log           *zap.Logger

	// serialises the header check with the append that follows it
	mu sync.Mutex
}

type Config struct {
	SpreadsheetID string
	SheetName     string
	// CredentialsJSON is a service-account key. When empty, CredentialsFile
	// is used; when both are empty, application default credentials apply.
	CredentialsJSON []byte
	CredentialsFile string
}

// New builds a Sheets client from cfg. Extra options are appended last, so
// they can override the endpoint or HTTP client.
func New(ctx context.Context, cfg Config, log *zap.Logger, opts ...option.ClientOption) (*Store, error) {
	if cfg.SpreadsheetID == "" {
		return nil, ErrNoSpreadsheet
	}
	if log == nil {
		log = zap.NewNop()
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	switch {
	case len(cfg.CredentialsJSON) > 0:
		clientOpts = append(clientOpts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	case cfg.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	log.Info("Google Sheets service initialized", zap.String("sheet", sheetName(cfg.SheetName)))
	return NewWithService(svc, cfg.SpreadsheetID, cfg.SheetName, log), nil
}

func NewWithService(svc *sheetsapi.Service, spreadsheetID, name string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName(name),
		log:           log,
	}
}

func sheetName(name string) string {
	if name == "" {
		return defaultSheetName
	}
	return name
}

func (s *Store) headerRange() string { return s.sheetName + "!1:1" }

func (s *Store) dataRange() string { return s.sheetName + "!" + dataColumns }

// EnsureHeaders writes the header row when the first row is empty.
func (s *Store) EnsureHeaders(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureHeaders(ctx)
}

func (s *Store) ensureHeaders(ctx context.Context) error {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.headerRange()).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: read header row: %w", err)
	}
	if len(resp.Values) > 0 {
		return nil
	}

	vr := &sheetsapi.ValueRange{Values: [][]interface{}{toCells(domain.SheetHeaders)}}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, s.headerRange(), vr).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: write header row: %w", err)
	}
	s.log.Info("Headers added successfully")
	return nil
}

// Append adds row below the existing data and reports how many rows the
// API updated. Headers are ensured first.
func (s *Store) Append(ctx context.Context, row []string) (int64, error) {
	if len(row) != domain.ColumnCount {
		return 0, fmt.Errorf("sheets: row has %d columns, want %d", len(row), domain.ColumnCount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureHeaders(ctx); err != nil {
		return 0, err
	}

	vr := &sheetsapi.ValueRange{Values: [][]interface{}{toCells(row)}}
	resp, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.dataRange(), vr).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: append row: %w", err)
	}

	var updated int64
	if resp.Updates != nil {
		updated = resp.Updates.UpdatedRows
	}
	s.log.Debug("Data added successfully", zap.Int64("updated_rows", updated))
	return updated, nil
}

// List returns every row of the booking columns, header row included.
func (s *Store) List(ctx context.Context) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.dataRange()).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read rows: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, cells := range resp.Values {
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = fmt.Sprint(c)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
