package charts

import "fmt"

// EChartsScriptURL is the ECharts runtime the snippets expect on the page
const EChartsScriptURL = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

// ChartSnippet represents an embeddable go-echarts chart fragment.
// Div holds a single root <div id="..." style="..."></div> and Script the
// <script>...</script> block that initializes the chart in that div.
// HTML is the div and script combined for template substitution.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

func newSnippet(id, title, height, optionJSON string) ChartSnippet {
	div := fmt.Sprintf("<div id=\"%s\" class=\"chart\" style=\"width:100%%;height:%s;\"></div>", id, height)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el||typeof echarts==='undefined')return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, optionJSON)

	return ChartSnippet{
		ID:     id,
		Title:  title,
		Div:    div,
		Script: script,
		HTML:   div + "\n" + script,
	}
}
