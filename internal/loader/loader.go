package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"DispositionSentinel/internal/model"
)

var requiredColumns = []string{
	"date", "open", "high", "low", "close", "volume",
	"index_open", "index_high", "index_low", "index_close",
	"outstanding_shares",
}

// Load reads the CSV file at path into daily records sorted by date.
func Load(path string) ([]model.DailyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Parse reads CSV daily records from r. The header must contain all required
// columns (any order); rows are sorted ascending by date and duplicate dates
// are rejected, so the result satisfies the evaluator's input invariants.
func Parse(r io.Reader) ([]model.DailyRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	var records []model.DailyRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	for i := 1; i < len(records); i++ {
		if records[i].Date.Equal(records[i-1].Date) {
			return nil, fmt.Errorf("duplicate date %s", records[i].Date.Format("2006-01-02"))
		}
	}
	return records, nil
}

func parseRow(row []string, idx map[string]int) (model.DailyRecord, error) {
	var rec model.DailyRecord

	dateStr := strings.TrimSpace(row[idx["date"]])
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return rec, fmt.Errorf("column date: invalid date %q", dateStr)
	}
	rec.Date = date

	fields := []struct {
		col string
		dst *float64
	}{
		{"open", &rec.Open},
		{"high", &rec.High},
		{"low", &rec.Low},
		{"close", &rec.Close},
		{"volume", &rec.Volume},
		{"index_open", &rec.IndexOpen},
		{"index_high", &rec.IndexHigh},
		{"index_low", &rec.IndexLow},
		{"index_close", &rec.IndexClose},
		{"outstanding_shares", &rec.OutstandingShares},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(row[idx[f.col]])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return rec, fmt.Errorf("column %s: invalid number %q", f.col, raw)
		}
		*f.dst = v
	}
	return rec, nil
}
