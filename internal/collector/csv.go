package collector

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"VixLens/internal/model"
)

// CSVFetcher reads daily closes from <Dir>/<symbol>.csv files laid out like
// a Yahoo history export (Date and Close columns, other columns ignored).
// A leading caret is stripped from the symbol, so ^VIX reads VIX.csv.
type CSVFetcher struct {
	Dir string
}

func NewCSVFetcher(dir string) *CSVFetcher {
	return &CSVFetcher{Dir: dir}
}

func (f *CSVFetcher) Name() string { return "csv" }

func (f *CSVFetcher) path(symbol string) string {
	return filepath.Join(f.Dir, strings.TrimPrefix(symbol, "^")+".csv")
}

func (f *CSVFetcher) FetchCloses(_ context.Context, symbol string, start, end time.Time) (model.PriceSeries, error) {
	points, err := f.read(f.path(symbol), start, end)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("%w: %s: %w", ErrFetch, symbol, err)
	}
	return model.PriceSeries{Symbol: symbol, Points: points, FetchedAt: time.Now()}, nil
}

func (f *CSVFetcher) read(path string, start, end time.Time) ([]model.PricePoint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv headers: %w", err)
	}
	dateCol, closeCol := -1, -1
	for i, h := range headers {
		switch strings.TrimSpace(h) {
		case "Date":
			dateCol = i
		case "Close":
			closeCol = i
		}
	}
	if dateCol < 0 || closeCol < 0 {
		return nil, fmt.Errorf("csv %s: missing Date or Close column", path)
	}

	from, to := model.DateOf(start), model.DateOf(end)
	var points []model.PricePoint
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv %s line %d: %w", path, line, err)
		}
		date, err := time.Parse(model.DateLayout, strings.TrimSpace(record[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("csv %s line %d: %w", path, line, err)
		}
		if date.Before(from) || !date.Before(to) {
			continue
		}
		raw := strings.TrimSpace(record[closeCol])
		if raw == "" || raw == "null" {
			continue
		}
		c, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("csv %s line %d: %w", path, line, err)
		}
		points = append(points, model.PricePoint{Date: date, Close: c})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return dedupeDates(points), nil
}
