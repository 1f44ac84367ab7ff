package charts

import (
	"fmt"
	"html"
	"strconv"

	"foodcpi/internal/models"
)

// EChartsCDN is the echarts build the page loads once for every snippet
const EChartsCDN = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

// ChartSnippet represents an embeddable echarts chart fragment.
// Div holds a single root <div id="..."></div>, Script the <script> block that
// initializes the chart in that div, and HTML both wrapped in a container.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

// Empty reports whether the snippet is the no-data placeholder
func (s ChartSnippet) Empty() bool {
	return s.Script == ""
}

func newSnippet(id, title, height, optionJSON string) ChartSnippet {
	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:%s;\"></div>", id, height)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, optionJSON)
	return ChartSnippet{ID: id, Title: title, Div: div, Script: script, HTML: wrap(title, div, script)}
}

// placeholderSnippet is shown in place of a chart when there is no data
func placeholderSnippet(id, title string) ChartSnippet {
	div := fmt.Sprintf("<div id=\"%s\" class=\"no-data\">%s</div>", id, models.NoDataMessage)
	return ChartSnippet{ID: id, Title: title, Div: div, HTML: wrap(title, div, "")}
}

func wrap(title, div, script string) string {
	return fmt.Sprintf(`<div class="chart-container">
	<h3>%s</h3>
	%s
</div>
%s`, html.EscapeString(title), div, script)
}

func yearLabel(year int) string {
	return strconv.Itoa(year)
}
