package mocks

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"foodcpi/internal/logger"
)

// First and last year of the synthetic dataset
const (
	FirstYear = 1975
	LastYear  = 2023
)

// syntheticColumn describes one generated category
type syntheticColumn struct {
	name      string
	mean      float64
	amplitude float64
	period    float64
	phase     float64
}

var syntheticColumns = []syntheticColumn{
	{"All food", 3.6, 2.8, 11, 0.0},
	{"Food at home", 3.2, 3.1, 11, 0.3},
	{"Food away from home", 4.0, 2.2, 13, -0.4},
	{"Meats poultry and fish", 3.4, 4.5, 9, 0.8},
	{"Beef and veal", 4.1, 6.0, 8, 1.1},
	{"Pork", 2.9, 5.5, 7, 2.0},
	{"Poultry", 2.8, 4.2, 9, -1.0},
	{"Fish and seafood", 3.5, 3.0, 12, 0.5},
	{"Eggs", 2.6, 9.0, 5, 0.2},
	{"Other meats", 3.1, 3.6, 10, 1.6},
	{"Dairy products", 3.0, 3.9, 8, -0.7},
	{"Fats and oils", 3.3, 4.8, 10, 2.4},
	{"Fresh fruits", 3.9, 4.1, 6, 0.9},
	{"Fresh vegetables", 3.7, 4.6, 5, -1.3},
	{"Sugar and sweets", 3.5, 3.3, 14, 1.9},
	{"Cereals and bakery products", 3.4, 2.9, 12, -0.2},
	{"Nonalcoholic beverages", 3.0, 4.4, 9, 2.7},
}

// missingCells are left blank in the synthetic dataset
var missingCells = map[string]map[int]bool{
	"Fats and oils": {1977: true, 1978: true},
	"Eggs":          {1990: true},
}

// SyntheticCSV returns a deterministic annual dataset in the same shape as
// the USDA food price outlook table. A few cells are left blank.
func SyntheticCSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Year"}
	for _, c := range syntheticColumns {
		header = append(header, c.name)
	}
	w.Write(header)

	for year := FirstYear; year <= LastYear; year++ {
		row := []string{strconv.Itoa(year)}
		t := float64(year - FirstYear)
		for _, c := range syntheticColumns {
			if missingCells[c.name][year] {
				row = append(row, "")
				continue
			}
			v := c.mean + c.amplitude*math.Sin(2*math.Pi*t/c.period+c.phase) - 0.02*t
			row = append(row, strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64))
		}
		w.Write(row)
	}

	w.Flush()
	return buf.Bytes()
}

// MockService provides mock data for running without real data or cloud storage
type MockService struct {
	storage *MockStorage
}

// NewMockService creates a mock service whose storage holds the synthetic
// dataset at dataPath
func NewMockService(ctx context.Context, dataPath string) (*MockService, error) {
	store := NewMockStorage()
	if err := store.StoreFile(ctx, dataPath, SyntheticCSV()); err != nil {
		return nil, fmt.Errorf("failed to seed mock dataset: %w", err)
	}
	logger.Info("Mock dataset seeded", map[string]interface{}{
		"path":  dataPath,
		"years": fmt.Sprintf("%d-%d", FirstYear, LastYear),
	})
	return &MockService{storage: store}, nil
}

// Storage returns the seeded in-memory storage
func (m *MockService) Storage() *MockStorage {
	return m.storage
}
