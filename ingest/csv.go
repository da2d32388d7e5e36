// Package ingest loads daily OHLCV bars from CSV files into the store.
//
// Expected layout, one bar per line, header row optional:
//
//	symbol,date,open,high,low,close,adjusted_close,volume[,source]
//
// Dates are YYYY-MM-DD. Re-importing a (symbol, date) pair overwrites the
// stored bar; imports are safe to repeat.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/paperdesk/market"
	"github.com/rustyeddy/paperdesk/store"
)

// Result summarizes one import run.
type Result struct {
	Imported int
	Skipped  int
}

// CSV reads bars from r and upserts them into st. Blank lines and a header
// row are skipped; a malformed data row aborts the import with its line
// number.
func CSV(st *store.Store, r io.Reader, source string, logger *slog.Logger) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // source column is optional
	cr.TrimLeadingSpace = true

	var res Result
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read csv: %w", err)
		}
		line++

		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			res.Skipped++
			continue
		}
		if line == 1 && isHeader(record) {
			res.Skipped++
			continue
		}

		bar, err := parseBar(record, source)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		if err := st.UpsertBar(bar); err != nil {
			return res, fmt.Errorf("line %d: upsert %s %s: %w",
				line, bar.Symbol, bar.Date.Format("2006-01-02"), err)
		}
		res.Imported++
	}

	logger.Info("csv import complete",
		"imported", res.Imported,
		"skipped", res.Skipped,
		"source", source,
	)
	return res, nil
}

func isHeader(record []string) bool {
	if len(record) < 3 {
		return true
	}
	// A header row has no numeric open field.
	_, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	return err != nil
}

func parseBar(record []string, source string) (market.Bar, error) {
	if len(record) < 8 {
		return market.Bar{}, fmt.Errorf("expected at least 8 fields, got %d", len(record))
	}

	symbol := strings.ToUpper(strings.TrimSpace(record[0]))
	if symbol == "" {
		return market.Bar{}, fmt.Errorf("empty symbol")
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(record[1]))
	if err != nil {
		return market.Bar{}, fmt.Errorf("parse date %q: %w", record[1], err)
	}

	fields := make([]float64, 5)
	for i := 0; i < 5; i++ {
		fields[i], err = strconv.ParseFloat(strings.TrimSpace(record[2+i]), 64)
		if err != nil {
			return market.Bar{}, fmt.Errorf("parse field %d %q: %w", 2+i, record[2+i], err)
		}
	}

	volume, err := strconv.ParseInt(strings.TrimSpace(record[7]), 10, 64)
	if err != nil {
		return market.Bar{}, fmt.Errorf("parse volume %q: %w", record[7], err)
	}

	if len(record) > 8 && strings.TrimSpace(record[8]) != "" {
		source = strings.TrimSpace(record[8])
	}

	return market.Bar{
		Symbol:   symbol,
		Date:     date,
		Open:     fields[0],
		High:     fields[1],
		Low:      fields[2],
		Close:    fields[3],
		AdjClose: fields[4],
		Volume:   volume,
		Source:   source,
	}, nil
}
