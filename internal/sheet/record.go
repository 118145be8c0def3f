package sheet

import (
	"context"
	"errors"
	"strings"
)

// ErrRowNotFound reports a row index past the last populated row. It is the
// normal end-of-data signal, not a failure.
var ErrRowNotFound = errors.New("sheet row not found")

// Provider hands out one product row at a time.
type Provider interface {
	Fetch(ctx context.Context, row int) (*Record, error)
}

// Record is one sheet row with the derived marketing fields pulled out.
// Fields keeps every raw column under its normalized header so new sheet
// columns survive without code changes.
type Record struct {
	ProductName   string
	Benefits      string
	KeyIngredient string
	Description   string

	Fields map[string]string
}

// Title returns the raw product title cell, empty when absent.
func (r *Record) Title() string {
	if r == nil {
		return ""
	}
	return r.Fields["title"]
}

// NewRecord builds a record from raw normalized fields, deriving the
// marketing fields from the title. It never fails; a missing title yields
// the documented placeholders.
func NewRecord(fields map[string]string) *Record {
	if fields == nil {
		fields = map[string]string{}
	}
	title := fields["title"]

	return &Record{
		ProductName:   ExtractProductName(title),
		Benefits:      ExtractBenefits(title),
		KeyIngredient: ExtractKeyIngredient(title),
		Description:   title,
		Fields:        fields,
	}
}

// NormalizeHeader maps a raw header cell to its field key: lower-case with
// spaces replaced by underscores, e.g. "Parent ASIN" -> "parent_asin".
func NormalizeHeader(header string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(header)), " ", "_")
}
