package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tonelab-collective/booking/internal/config"
	"github.com/tonelab-collective/booking/internal/modules/model"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Column order of a mirrored row (A:H).
const (
	colID = iota
	colSyncedAt
	colFullName
	colEmail
	colTelephone
	colReceipt
	colEarlyBird
	colCancellation
	numCols
)

// Mirror keeps a spreadsheet copy of bookings. It never owns the data.
type Mirror struct {
	svc           *gsheets.Service
	spreadsheetID string
	rng           string
}

// New builds a mirror from config. Extra client options override the
// credentials file, which tests use to point at a fake endpoint.
func New(ctx context.Context, cfg config.SheetsCfg, extra ...option.ClientOption) (*Mirror, error) {
	opts := extra
	if len(opts) == 0 {
		opts = []option.ClientOption{
			option.WithCredentialsFile(cfg.CredentialsFile),
			option.WithScopes(gsheets.SpreadsheetsScope),
		}
	}
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	rng := cfg.Range
	if rng == "" {
		rng = "Sheet1!A:H"
	}
	return &Mirror{svc: svc, spreadsheetID: cfg.SpreadsheetID, rng: rng}, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Row renders a booking in mirror column order.
func Row(b *model.Booking) []interface{} {
	receipt := ""
	if b.ReceiptPath != nil {
		receipt = *b.ReceiptPath
	}
	return []interface{}{
		b.ID.String(),
		b.CreatedAt.UTC().Format(time.RFC3339),
		b.FullName,
		b.Email,
		b.Telephone,
		receipt,
		yesNo(b.EarlyBirdConfirmed),
		yesNo(b.CancellationPolicyAccepted),
	}
}

// ParseRow is the inverse of Row. ok is false for header or malformed rows.
func ParseRow(row []interface{}) (*model.Booking, bool) {
	cells := make([]string, numCols)
	for i := 0; i < numCols && i < len(row); i++ {
		cells[i] = strings.TrimSpace(fmt.Sprint(row[i]))
	}
	id, err := uuid.Parse(cells[colID])
	if err != nil {
		return nil, false
	}
	createdAt, err := time.Parse(time.RFC3339, cells[colSyncedAt])
	if err != nil {
		return nil, false
	}
	b := &model.Booking{
		ID:                         id,
		CreatedAt:                  createdAt,
		FullName:                   cells[colFullName],
		Email:                      strings.ToLower(cells[colEmail]),
		Telephone:                  cells[colTelephone],
		EarlyBirdConfirmed:         strings.EqualFold(cells[colEarlyBird], "yes"),
		CancellationPolicyAccepted: strings.EqualFold(cells[colCancellation], "yes"),
	}
	if cells[colReceipt] != "" {
		r := cells[colReceipt]
		b.ReceiptPath = &r
	}
	return b, true
}

func (m *Mirror) Append(ctx context.Context, b *model.Booking) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{Row(b)}}
	_, err := m.svc.Spreadsheets.Values.Append(m.spreadsheetID, m.rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append booking %s: %w", b.ID, err)
	}
	return nil
}

func (m *Mirror) List(ctx context.Context) ([]*model.Booking, error) {
	resp, err := m.svc.Spreadsheets.Values.Get(m.spreadsheetID, m.rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	out := make([]*model.Booking, 0, len(resp.Values))
	for _, row := range resp.Values {
		if b, ok := ParseRow(row); ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// Delete removes every row whose id column matches and reports whether one
// was found.
func (m *Mirror) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	resp, err := m.svc.Spreadsheets.Values.Get(m.spreadsheetID, m.rng).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("read sheet: %w", err)
	}
	rng := resp.Range
	if rng == "" {
		rng = m.rng
	}
	title, firstRow := splitA1(rng)

	var rows []int64
	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[colID])) == id.String() {
			rows = append(rows, firstRow+int64(i))
		}
	}
	if len(rows) == 0 {
		return false, nil
	}

	sheetID, err := m.sheetID(ctx, title)
	if err != nil {
		return false, err
	}

	// Requests apply in order, so delete bottom-up to keep indexes valid.
	reqs := make([]*gsheets.Request, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		reqs = append(reqs, &gsheets.Request{DeleteDimension: &gsheets.DeleteDimensionRequest{
			Range: &gsheets.DimensionRange{
				SheetId:         sheetID,
				Dimension:       "ROWS",
				StartIndex:      rows[i],
				EndIndex:        rows[i] + 1,
				ForceSendFields: []string{"SheetId", "StartIndex"},
			},
		}})
	}
	_, err = m.svc.Spreadsheets.BatchUpdate(m.spreadsheetID, &gsheets.BatchUpdateSpreadsheetRequest{Requests: reqs}).
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("delete booking %s: %w", id, err)
	}
	return true, nil
}

// sheetID resolves a tab title to its numeric id. An empty title is the
// first tab.
func (m *Mirror) sheetID(ctx context.Context, title string) (int64, error) {
	ss, err := m.svc.Spreadsheets.Get(m.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read sheet properties: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties == nil {
			continue
		}
		if title == "" || sh.Properties.Title == title {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found", title)
}

// splitA1 returns the tab title and the zero-based index of the first row
// of an A1 range such as "'Bookings 2025'!A2:H40".
func splitA1(rng string) (string, int64) {
	title, cells := "", rng
	if i := strings.LastIndex(rng, "!"); i >= 0 {
		title, cells = rng[:i], rng[i+1:]
		if len(title) >= 2 && title[0] == '\'' && title[len(title)-1] == '\'' {
			title = strings.ReplaceAll(title[1:len(title)-1], "''", "'")
		}
	}
	start := cells
	if i := strings.Index(cells, ":"); i >= 0 {
		start = cells[:i]
	}
	var row int64
	for _, r := range start {
		if r >= '0' && r <= '9' {
			row = row*10 + int64(r-'0')
		}
	}
	if row == 0 {
		return title, 0
	}
	return title, row - 1
}
