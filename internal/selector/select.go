package selector

import (
	"foodcpi/internal/models"
)

// Select derives the chart series for a view and selection.
//
// The baseline comes first and is always present. Checked options follow in
// catalog order, then free categories in table column order, then the trend
// target when it differs from the baseline. Unknown keys, columns missing
// from the table and duplicates are skipped.
func Select(table *models.PriceTable, view *View, state models.SelectionState, unit string) []models.SeriesSpec {
	if !view.HasChart() {
		return nil
	}

	specs := []models.SeriesSpec{newSpec(view.Baseline, view.Baseline, models.RoleBaseline, 0, unit)}
	used := map[string]bool{view.Baseline: true}

	add := func(column, label string) {
		if used[column] || !table.HasColumn(column) {
			return
		}
		used[column] = true
		n := len(specs)
		specs = append(specs, newSpec(column, label, models.OptionRole(n), n, unit))
	}

	for _, opt := range view.Options {
		if state.IsChecked(opt.Key) {
			label := opt.Label
			if label == "" {
				label = opt.Column
			}
			add(opt.Column, label)
		}
	}

	if view.FreeCategories && table != nil {
		for _, col := range table.Columns {
			if state.HasCategory(col) {
				add(col, col)
			}
		}
	}

	if view.Trend {
		target := ResolveTarget(table, view, state.Target)
		add(target, target)
	}

	return specs
}

// TrendSpec describes the fitted line drawn for column
func TrendSpec(column, unit string) models.SeriesSpec {
	return newSpec(column, column+" trend", models.RoleTrend, 0, unit)
}

func newSpec(column, label string, role models.Role, position int, unit string) models.SeriesSpec {
	style := RoleStyle(role, position)
	return models.SeriesSpec{
		Column:        column,
		Label:         label,
		Color:         style.Color,
		Marker:        style.Marker,
		HoverTemplate: HoverTemplate(role, unit),
		Role:          role,
	}
}

// Targets lists the columns a view's single-select may offer, baseline first
func Targets(table *models.PriceTable, view *View) []string {
	if !view.HasChart() {
		return nil
	}

	targets := []string{view.Baseline}
	seen := map[string]bool{view.Baseline: true}
	push := func(col string) {
		if !seen[col] && table.HasColumn(col) {
			seen[col] = true
			targets = append(targets, col)
		}
	}

	if len(view.Options) > 0 {
		for _, opt := range view.Options {
			push(opt.Column)
		}
		return targets
	}
	if table != nil {
		for _, col := range table.Columns {
			push(col)
		}
	}
	return targets
}

// Categories lists the columns a view's multi-select may offer
func Categories(table *models.PriceTable, view *View) []string {
	if !view.FreeCategories || table == nil {
		return nil
	}
	var cats []string
	for _, col := range table.Columns {
		if col != view.Baseline {
			cats = append(cats, col)
		}
	}
	return cats
}

// ResolveTarget returns target when the view offers it, otherwise the baseline
func ResolveTarget(table *models.PriceTable, view *View, target string) string {
	if view == nil {
		return ""
	}
	if target != "" {
		for _, t := range Targets(table, view) {
			if t == target {
				return target
			}
		}
	}
	return view.Baseline
}
