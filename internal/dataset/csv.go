package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/roboco-io/eventdesk/internal/table"
)

func decodeCSV(data []byte) (*Dataset, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return &Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols := newColumnSet()
	accessors := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		accessors[i] = h
		cols.add(h)
	}

	var rows []table.Row
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}

		row := make(table.Row, len(accessors))
		for i, cell := range record {
			if i >= len(accessors) {
				break
			}
			row[accessors[i]] = csvValue(cell)
		}
		rows = append(rows, row)
	}

	return &Dataset{Columns: cols.cols, Rows: rows}, nil
}

func csvValue(cell string) table.Value {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return table.Null()
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return table.Number(f)
	}
	return table.Text(cell)
}
