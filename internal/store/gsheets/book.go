// Package gsheets implements the workbook on top of a Google Sheets
// spreadsheet, one worksheet per show.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"tvlog/internal/coerce"
	"tvlog/internal/logging"
	"tvlog/internal/store"
)

const (
	// Numbers come back as numbers and dates as the text the sheet shows.
	valueRender    = "UNFORMATTED_VALUE"
	dateTimeRender = "FORMATTED_STRING"
	// Written values are stored as given, without locale parsing.
	valueInput = "RAW"

	defaultRequestsPerMinute = 60
)

// Options configures a Book.
type Options struct {
	SpreadsheetID     string
	CredentialsFile   string
	RequestsPerMinute int
	Logger            *slog.Logger
	// ClientOptions are appended after the credentials option; tests use them
	// to point the client at a local endpoint.
	ClientOptions []option.ClientOption
}

// Book is a workbook backed by one Google Sheets spreadsheet.
type Book struct {
	svc           *sheets.Service
	spreadsheetID string
	limiter       *rate.Limiter
	logger        *slog.Logger
}

// New builds a Sheets client from a service-account credentials file.
func New(ctx context.Context, opts Options) (*Book, error) {
	id := strings.TrimSpace(opts.SpreadsheetID)
	if id == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts,
			option.WithCredentialsFile(opts.CredentialsFile),
			option.WithScopes(sheets.SpreadsheetsScope),
		)
	}
	clientOpts = append(clientOpts, opts.ClientOptions...)

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}
	return &Book{
		svc:           svc,
		spreadsheetID: id,
		// One request per minute/rpm, with a full minute's quota as burst.
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
		logger:  logging.NewComponentLogger(opts.Logger, "gsheets"),
	}, nil
}

// wait blocks until the rate limiter allows a request.
func (b *Book) wait(ctx context.Context) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("sheets rate limit: %w", err)
	}
	return nil
}

// Sheets lists worksheets in tab order.
func (b *Book) Sheets(ctx context.Context) ([]store.Sheet, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := b.svc.Spreadsheets.Get(b.spreadsheetID).
		Fields("sheets.properties(sheetId,title,index)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet: %w", err)
	}
	out := make([]store.Sheet, 0, len(resp.Sheets))
	for _, s := range resp.Sheets {
		if s == nil || s.Properties == nil {
			continue
		}
		out = append(out, store.Sheet{ID: s.Properties.SheetId, Title: s.Properties.Title})
	}
	return out, nil
}

// Ping checks the spreadsheet is reachable with the configured credentials.
func (b *Book) Ping(ctx context.Context) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	_, err := b.svc.Spreadsheets.Get(b.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	return nil
}

// HeaderRow returns row 1 as text with trailing blank columns removed.
func (b *Book) HeaderRow(ctx context.Context, sheet store.Sheet) ([]string, error) {
	rows, err := b.values(ctx, quoteTitle(sheet.Title)+"!1:1")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return store.HeaderFromRow(rows[0]), nil
}

// Records returns rows 2..N keyed by the header row.
func (b *Book) Records(ctx context.Context, sheet store.Sheet) ([]store.Record, error) {
	rows, err := b.values(ctx, quoteTitle(sheet.Title))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return store.BuildRecords(store.HeaderFromRow(rows[0]), rows[1:]), nil
}

func (b *Book) values(ctx context.Context, rng string) ([][]any, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := b.svc.Spreadsheets.Values.Get(b.spreadsheetID, rng).
		ValueRenderOption(valueRender).
		DateTimeRenderOption(dateTimeRender).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	b.logger.Debug("range read", logging.String("range", rng), logging.Int("rows", len(resp.Values)))
	return resp.Values, nil
}

// WriteCell sets one cell. A nil value clears it.
func (b *Book) WriteCell(ctx context.Context, sheet store.Sheet, row, col int, value any) error {
	if err := store.ValidateAddress(row, col); err != nil {
		return err
	}
	if err := b.wait(ctx); err != nil {
		return err
	}
	rng := cellRange(sheet.Title, row, col)
	_, err := b.svc.Spreadsheets.Values.Update(b.spreadsheetID, rng, &sheets.ValueRange{
		Range:  rng,
		Values: [][]any{{wireValue(value)}},
	}).ValueInputOption(valueInput).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", rng, err)
	}
	return nil
}

// WriteCells sets several cells with one values.batchUpdate call.
func (b *Book) WriteCells(ctx context.Context, sheet store.Sheet, cells []store.Cell) error {
	if len(cells) == 0 {
		return nil
	}
	data := make([]*sheets.ValueRange, 0, len(cells))
	for _, cell := range cells {
		if err := store.ValidateAddress(cell.Row, cell.Column); err != nil {
			return err
		}
		rng := cellRange(sheet.Title, cell.Row, cell.Column)
		data = append(data, &sheets.ValueRange{Range: rng, Values: [][]any{{wireValue(cell.Value)}}})
	}
	if err := b.wait(ctx); err != nil {
		return err
	}
	_, err := b.svc.Spreadsheets.Values.BatchUpdate(b.spreadsheetID, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: valueInput,
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch write %d cells on %s: %w", len(cells), sheet.Title, err)
	}
	return nil
}

// wireValue converts a cell value to something the JSON API accepts.
func wireValue(v any) any {
	switch value := v.(type) {
	case nil:
		return ""
	case time.Time:
		return coerce.FormatDate(value)
	default:
		return value
	}
}

// quoteTitle renders a sheet title for A1 notation.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func cellRange(title string, row, col int) string {
	return fmt.Sprintf("%s!%s%d", quoteTitle(title), columnLetters(col), row)
}

// columnLetters converts a 1-based column index to A1 letters (1=A, 27=AA).
func columnLetters(col int) string {
	var out []byte
	for col > 0 {
		col--
		out = append([]byte{byte('A' + col%26)}, out...)
		col /= 26
	}
	return string(out)
}
