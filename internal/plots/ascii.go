package plots

import (
	"fmt"
	"io"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/uterosim/symprobe/internal/sweep"
)

const (
	graphHeight = 12
	graphWidth  = 80
)

// cellCaptions name the three extraction points in column order.
var cellCaptions = [3]string{"ovarian end", "centre", "cervical end"}

// CellTraces plots the membrane potential of each extracted cell over
// time, one chart per cell.
func CellTraces(w io.Writer, V [][]float64, t []float64, stage string) error {
	if len(V) == 0 {
		return fmt.Errorf("plots: no data to plot")
	}
	if len(V) != len(t) {
		return fmt.Errorf("plots: dimensions must agree")
	}

	for j := 0; j < len(V[0]); j++ {
		data := make([]float64, len(V))
		for i := range V {
			data[i] = V[i][j]
		}

		caption := fmt.Sprintf("amplitude (mV), %.1f s", t[len(t)-1])
		if j < len(cellCaptions) {
			caption = fmt.Sprintf("%s, amplitude (mV) over %.1f s", cellCaptions[j], t[len(t)-1])
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(caption),
		)
		fmt.Fprintln(w, titleStyle.Render(stageTitle(stage)))
		fmt.Fprintln(w, graph)
		fmt.Fprintln(w)
	}
	return nil
}

// Convergence plots a comparison metric against mesh element counts,
// one series per estrus stage.
func Convergence(w io.Writer, comp map[string][]float64, elements []float64, metric string) error {
	return stageSeries(w, comp, fmt.Sprintf("%s (mV) vs number of elements %v", metricLabel(metric), elements))
}

// ParameterComparison plots a comparison metric against parameter
// values, one series per estrus stage.
func ParameterComparison(w io.Writer, comp map[string][]float64, values []float64, metric, param string) error {
	caption := fmt.Sprintf("%s vs %s %v", metricLabel(metric), AxisLabel(param), values)
	return stageSeries(w, comp, caption)
}

// SpikePropagation plots the number of propagated spikes against
// parameter values, one series per estrus stage.
func SpikePropagation(w io.Writer, spikes map[string][]float64, values []float64, param string) error {
	caption := fmt.Sprintf("propagated spikes vs %s %v", AxisLabel(param), values)
	return stageSeries(w, spikes, caption)
}

func stageSeries(w io.Writer, data map[string][]float64, caption string) error {
	if len(data) == 0 {
		return fmt.Errorf("plots: no data to plot")
	}

	series := make([][]float64, 0, len(data))
	colors := make([]asciigraph.AnsiColor, 0, len(data))
	legend := ""
	for _, stage := range sweep.EstrusStages {
		values, ok := data[stage]
		if !ok {
			continue
		}
		series = append(series, values)
		colors = append(colors, stageColors[stage])
		legend += stageStyles[stage].Render(stageTitle(stage)) + "  "
	}
	if len(series) == 0 {
		return fmt.Errorf("plots: no estrus stage data to plot")
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
	fmt.Fprintln(w, graph)
	fmt.Fprintln(w, legend)
	return nil
}

func metricLabel(metric string) string {
	return strings.ToUpper(metric)
}

func stageTitle(stage string) string {
	if stage == "" {
		return ""
	}
	return strings.ToUpper(stage[:1]) + stage[1:]
}
