package sheet

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

const minDataRow = 2 // row 1 is the header row

// SheetsProvider reads product rows from a Google Sheet.
type SheetsProvider struct {
	service   *sheets.Service
	sheetID   string
	readRange string
}

func NewSheetsProvider(ctx context.Context, sheetID, readRange string, opts ...option.ClientOption) (*SheetsProvider, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsProvider{
		service:   service,
		sheetID:   sheetID,
		readRange: readRange,
	}, nil
}

// Fetch returns the record at the given 1-indexed row. Indices below the
// first data row are redirected to it; indices past the populated rows
// yield ErrRowNotFound.
func (p *SheetsProvider) Fetch(ctx context.Context, row int) (*Record, error) {
	if row < minDataRow {
		slog.Warn("Row before first data row, redirecting", "requested", row, "using", minDataRow)
		row = minDataRow
	}

	resp, err := p.service.Spreadsheets.Values.Get(p.sheetID, p.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", p.sheetID, err)
	}

	values := resp.Values
	if len(values) < minDataRow {
		slog.Warn("Sheet has no data rows", "rows", len(values))
		return nil, ErrRowNotFound
	}
	if row > len(values) {
		slog.Info("Row beyond populated range", "row", row, "available", len(values))
		return nil, ErrRowNotFound
	}

	dataRow := values[row-1]
	if len(dataRow) == 0 {
		slog.Warn("Row is empty", "row", row)
		return nil, ErrRowNotFound
	}

	headers := values[0]
	fields := make(map[string]string, len(headers))
	for i, header := range headers {
		key := NormalizeHeader(cellString(header))
		if key == "" {
			continue
		}
		if i < len(dataRow) {
			fields[key] = cellString(dataRow[i])
		} else {
			fields[key] = ""
		}
	}

	record := NewRecord(fields)
	slog.Info("Fetched product row", "row", row, "product", record.ProductName)
	return record, nil
}

// Sheet cells arrive as interface{}; anything non-string is rare but
// stringified rather than dropped.
func cellString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
