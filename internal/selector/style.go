package selector

import "foodcpi/internal/models"

// Style is the colour and marker used for a series role
type Style struct {
	Color  string
	Marker string
	Dashed bool
	Bold   bool
}

var (
	baselineStyle = Style{Color: "#1f2937", Marker: "circle", Bold: true}
	trendStyle    = Style{Color: "#6b7280", Marker: "none", Dashed: true}

	// optionStyles is indexed by output position, not column name
	optionStyles = []Style{
		{Color: "#2563eb", Marker: "triangle"},
		{Color: "#16a34a", Marker: "rect"},
		{Color: "#dc2626", Marker: "diamond"},
		{Color: "#9333ea", Marker: "roundRect"},
		{Color: "#ea580c", Marker: "pin"},
		{Color: "#0891b2", Marker: "arrow"},
	}
)

// optionStyle returns the style of the n-th optional series (1-based).
// Positions past the palette wrap around.
func optionStyle(n int) Style {
	return optionStyles[(n-1)%len(optionStyles)]
}

// RoleStyle returns the display style for a series role
func RoleStyle(role models.Role, position int) Style {
	switch role {
	case models.RoleBaseline:
		return baselineStyle
	case models.RoleTrend:
		return trendStyle
	default:
		if position < 1 {
			position = 1
		}
		return optionStyle(position)
	}
}

// HoverTemplate returns the tooltip formatter for a role.
// {a} is the series name, {b} the date and {c} the value.
func HoverTemplate(role models.Role, unit string) string {
	switch role {
	case models.RoleBaseline:
		return "<b>{a}</b><br/>{b}: {c}" + unit
	case models.RoleTrend:
		return "{a}<br/>{b}: {c}" + unit + " (fitted)"
	default:
		return "{a}<br/>{b}: {c}" + unit
	}
}
