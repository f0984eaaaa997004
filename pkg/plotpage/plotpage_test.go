package plotpage_test

import (
	"bytes"
	"testing"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/skilltracker/pkg/plotpage"
)

func TestPage_RenderGroupsAndHints(t *testing.T) {
	t.Parallel()

	line := charts.NewLine()
	line.SetXAxis([]string{"00:00", "00:01"})
	line.AddSeries("drones", []opts.LineData{{Value: 12}, {Value: 13}})

	page := plotpage.NewPage("Replay", "Zerg macro")
	page.Add(
		plotpage.Section{Group: "Serral", Title: "Drones", Chart: line,
			Hint: plotpage.Hint{Title: "Read:", Items: []string{"<strong>red</strong> = actual"}}},
		plotpage.Section{Group: "Serral", Title: "Injects"},
		plotpage.Section{Group: "Reynor", Title: "Drones"},
	)

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))

	html := buf.String()
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, plotpage.EChartsAsset)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(`<h2 class="group">Serral</h2>`)))
	assert.Contains(t, html, `<h2 class="group">Reynor</h2>`)
	assert.Contains(t, html, "<strong>red</strong> = actual")
	assert.Contains(t, html, `class="echart-box"`)
	assert.NotContains(t, html, `class="container"`)
}

func TestWrapChart_NilChart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, plotpage.WrapChart(nil).Render(&buf))
	assert.Empty(t, buf.String())
}

func TestTimeAxis(t *testing.T) {
	t.Parallel()

	axis := plotpage.TimeAxis{Seconds: []int{0, 10, 20, 30}}

	assert.Equal(t, 0, axis.Index(-5))
	assert.Equal(t, 0, axis.Index(5))
	assert.Equal(t, 1, axis.Index(10))
	assert.Equal(t, 2, axis.Index(29))
	assert.Equal(t, 3, axis.Index(99))
	assert.Equal(t, []string{"00:00", "00:07", "00:14", "00:21"}, axis.Labels())
}

func TestSecondsAxis(t *testing.T) {
	t.Parallel()

	axis := plotpage.SecondsAxis(5)
	require.Equal(t, 6, axis.Len())
	assert.Equal(t, 4, axis.Index(4))
	assert.Equal(t, 1, plotpage.SecondsAxis(-1).Len())
}
