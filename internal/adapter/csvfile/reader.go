// Package csvfile reads the mars-weather CSV export and hands the pipeline a
// normalized raw table. Header normalization (trim, lowercase, legacy alias
// rename) happens here, before any column is referenced by name, so case and
// spacing variation in the source never reaches downstream logic.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"mars-weather-etl/internal/domain"
)

// Reader extracts raw rows from a CSV file. It implements pipeline.Extractor.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for the given file path. The file is opened on
// each Extract call, not held open.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// Extract parses the whole file into a RawTable, preserving source row order.
//
// An unreadable path fails with domain.ErrSourceNotFound before any row is
// parsed. A header missing one of the required columns fails with a
// domain.SchemaError. Ragged rows are tolerated: short rows simply leave the
// trailing columns absent, which the drop policy handles per row.
func (r *Reader) Extract(ctx context.Context) (domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawTable{}, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("%w: %v", domain.ErrSourceNotFound, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // row lengths vary across export vintages
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return domain.RawTable{}, &domain.SchemaError{Column: domain.ColDate}
		}
		return domain.RawTable{}, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = domain.CanonicalColumn(name)
	}

	table := domain.RawTable{Columns: columns}
	if err := checkRequiredColumns(table); err != nil {
		return domain.RawTable{}, err
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.RawTable{}, fmt.Errorf("read row: %w", err)
		}

		row := make(domain.RawRow, len(columns))
		for i, value := range record {
			if i >= len(columns) {
				break
			}
			row[columns[i]] = value
		}
		table.Rows = append(table.Rows, row)
	}

	r.logger.Info("csv source extracted", "path", r.path, "rows", len(table.Rows), "columns", len(table.Columns))
	return table, nil
}

func checkRequiredColumns(table domain.RawTable) error {
	for _, col := range domain.RequiredColumns() {
		if !table.HasColumn(col) {
			return &domain.SchemaError{Column: col}
		}
	}
	return nil
}
