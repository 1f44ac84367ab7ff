package models

import (
	"math"
	"reflect"
	"testing"
)

func sampleTable() *PriceTable {
	return &PriceTable{
		DateColumn: "Year",
		Columns:    []string{"All food", "Eggs"},
		Records: []Record{
			{Date: "2021", X: 2021, Values: map[string]float64{"All food": 3.9, "Eggs": 4.5}},
			{Date: "2022", X: 2022, Values: map[string]float64{"All food": 9.9, "Eggs": math.NaN()}},
			{Date: "2023", X: 2023, Values: map[string]float64{"All food": 5.8}},
		},
	}
}

func TestPriceTableAccessors(t *testing.T) {
	table := sampleTable()

	if table.Len() != 3 {
		t.Errorf("Expected 3 records, got %d", table.Len())
	}
	if table.Empty() {
		t.Error("Expected table to be non-empty")
	}
	if !table.HasColumn("Eggs") {
		t.Error("Expected Eggs column to exist")
	}
	if table.HasColumn("Year") {
		t.Error("Date column should not be reported as a numeric column")
	}

	eggs, ok := table.Column("Eggs")
	if !ok {
		t.Fatal("Column(Eggs) returned !ok")
	}
	if eggs[0] != 4.5 || !math.IsNaN(eggs[1]) || !math.IsNaN(eggs[2]) {
		t.Errorf("Unexpected Eggs values: %v", eggs)
	}

	if _, ok := table.Column("Bread"); ok {
		t.Error("Expected unknown column lookup to fail")
	}

	last, ok := table.LastX()
	if !ok || last != 2023 {
		t.Errorf("Expected LastX 2023, got %v (%v)", last, ok)
	}

	first, ok := table.FirstX()
	if !ok || first != 2021 {
		t.Errorf("Expected FirstX 2021, got %v (%v)", first, ok)
	}

	labels := table.Labels()
	if len(labels) != 3 || labels[2] != "2023" {
		t.Errorf("Unexpected labels: %v", labels)
	}
}

func TestNilAndEmptyTable(t *testing.T) {
	var nilTable *PriceTable
	if nilTable.Len() != 0 || !nilTable.Empty() {
		t.Error("nil table should be empty")
	}
	if nilTable.HasColumn("All food") {
		t.Error("nil table should have no columns")
	}

	empty := NewEmptyTable()
	if _, ok := empty.LastX(); ok {
		t.Error("LastX on empty table should report !ok")
	}
	if _, ok := empty.FirstX(); ok {
		t.Error("FirstX on empty table should report !ok")
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name       string
		values     map[string][]string
		checked    int
		categories int
		target     string
		number     *float64
	}{
		{
			name:   "empty",
			values: map[string][]string{},
		},
		{
			name: "all controls",
			values: map[string][]string{
				"opt":    {"home", " away ", ""},
				"cat":    {"Eggs"},
				"target": {" Eggs "},
				"year":   {"2030"},
			},
			checked:    2,
			categories: 1,
			target:     "Eggs",
			number:     floatPtr(2030),
		},
		{
			name:   "invalid numeric input is ignored",
			values: map[string][]string{"year": {"soon"}},
		},
		{
			name:   "infinite numeric input is ignored",
			values: map[string][]string{"year": {"Inf"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ParseSelection(tt.values)
			if len(s.Checked) != tt.checked {
				t.Errorf("Expected %d checked keys, got %v", tt.checked, s.Checked)
			}
			if len(s.Categories) != tt.categories {
				t.Errorf("Expected %d categories, got %v", tt.categories, s.Categories)
			}
			if s.Target != tt.target {
				t.Errorf("Expected target %q, got %q", tt.target, s.Target)
			}
			switch {
			case tt.number == nil && s.Number != nil:
				t.Errorf("Expected no number, got %v", *s.Number)
			case tt.number != nil && (s.Number == nil || *s.Number != *tt.number):
				t.Errorf("Expected number %v, got %v", *tt.number, s.Number)
			}
		})
	}
}

func TestSelectionLookups(t *testing.T) {
	s := SelectionState{Checked: []string{"home"}, Categories: []string{"Eggs"}}
	if !s.IsChecked("home") || s.IsChecked("away") {
		t.Error("IsChecked returned unexpected result")
	}
	if !s.HasCategory("Eggs") || s.HasCategory("Pork") {
		t.Error("HasCategory returned unexpected result")
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(math.NaN()); got != "" {
		t.Errorf("Expected blank for NaN, got %q", got)
	}
	if got := FormatValue(2.5); got != "2.5" {
		t.Errorf("Expected 2.5, got %q", got)
	}
	if OptionRole(2) != Role("option 2") {
		t.Errorf("Unexpected option role: %s", OptionRole(2))
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestSelectionValuesRoundTrip(t *testing.T) {
	year := 2030.0
	state := SelectionState{
		Checked:    []string{"home", "away"},
		Categories: []string{"Eggs"},
		Target:     "Pork",
		Number:     &year,
	}

	v := state.Values()
	if v.Encode() != "cat=Eggs&opt=home&opt=away&target=Pork&year=2030" {
		t.Errorf("Unexpected encoding: %s", v.Encode())
	}

	back := ParseSelection(v)
	if !reflect.DeepEqual(back.Checked, state.Checked) || !reflect.DeepEqual(back.Categories, state.Categories) {
		t.Errorf("Round trip lost keys: %+v", back)
	}
	if back.Target != "Pork" || back.Number == nil || *back.Number != 2030 {
		t.Errorf("Round trip lost scalar fields: %+v", back)
	}

	if len(SelectionState{}.Values()) != 0 {
		t.Error("Expected empty selection to encode to no values")
	}
}
