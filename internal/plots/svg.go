package plots

import (
	"fmt"
	"os"
	"strings"
)

// Series is one named line of an SVG chart.
type Series struct {
	Name  string
	Stage string
	X     []float64
	Y     []float64
}

const (
	svgWidth   = 640
	svgHeight  = 480
	svgMargin  = 60
	svgBg      = "#ffffff"
	svgGridCol = "#cccccc"
)

// LineChartSVG renders one or more series as an SVG line chart. Stages
// pick their conventional colour; unnamed stages fall back to grey.
func LineChartSVG(series []Series, xLabel, yLabel string) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("plots: no series to render")
	}

	xMin, xMax, yMin, yMax, err := bounds(series)
	if err != nil {
		return "", err
	}

	plotW := float64(svgWidth - 2*svgMargin)
	plotH := float64(svgHeight - 2*svgMargin)
	sx := func(x float64) float64 {
		return svgMargin + plotW*(x-xMin)/(xMax-xMin)
	}
	sy := func(y float64) float64 {
		return float64(svgHeight-svgMargin) - plotH*(y-yMin)/(yMax-yMin)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, svgWidth, svgHeight, svgWidth, svgHeight, svgBg)

	// Axes
	fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>
`, svgMargin, svgHeight-svgMargin, svgWidth-svgMargin, svgHeight-svgMargin, svgGridCol)
	fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>
`, svgMargin, svgMargin, svgMargin, svgHeight-svgMargin, svgGridCol)

	for i, s := range series {
		color, ok := stageHex[s.Stage]
		if !ok {
			color = "#666666"
		}

		points := make([]string, len(s.X))
		for j := range s.X {
			points[j] = fmt.Sprintf("%.1f,%.1f", sx(s.X[j]), sy(s.Y[j]))
		}
		fmt.Fprintf(&sb, `<polyline fill="none" stroke="%s" stroke-width="1.5" points="%s"/>
`, color, strings.Join(points, " "))

		if s.Name != "" {
			fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="12" fill="%s">%s</text>
`, svgWidth-svgMargin-120, svgMargin+16*(i+1), color, s.Name)
		}
	}

	fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="13" text-anchor="middle">%s</text>
`, svgWidth/2, svgHeight-svgMargin/3, xLabel)
	fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="13" text-anchor="middle" transform="rotate(-90 %d %d)">%s</text>
`, svgMargin/3, svgHeight/2, svgMargin/3, svgHeight/2, yLabel)
	fmt.Fprintf(&sb, "<text x=\"%d\" y=\"%.1f\" font-size=\"11\">%.3g</text>\n", svgMargin, float64(svgHeight-svgMargin)+14, xMin)
	fmt.Fprintf(&sb, "<text x=\"%d\" y=\"%.1f\" font-size=\"11\" text-anchor=\"end\">%.3g</text>\n", svgWidth-svgMargin, float64(svgHeight-svgMargin)+14, xMax)
	sb.WriteString("</svg>\n")

	return sb.String(), nil
}

// WriteLineChart renders the chart and writes it to a file.
func WriteLineChart(path string, series []Series, xLabel, yLabel string) error {
	svg, err := LineChartSVG(series, xLabel, yLabel)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

func bounds(series []Series) (xMin, xMax, yMin, yMax float64, err error) {
	first := true
	for _, s := range series {
		if len(s.X) != len(s.Y) {
			return 0, 0, 0, 0, fmt.Errorf("plots: series %q dimensions must agree", s.Name)
		}
		for j := range s.X {
			if first {
				xMin, xMax, yMin, yMax = s.X[j], s.X[j], s.Y[j], s.Y[j]
				first = false
				continue
			}
			if s.X[j] < xMin {
				xMin = s.X[j]
			}
			if s.X[j] > xMax {
				xMax = s.X[j]
			}
			if s.Y[j] < yMin {
				yMin = s.Y[j]
			}
			if s.Y[j] > yMax {
				yMax = s.Y[j]
			}
		}
	}
	if first {
		return 0, 0, 0, 0, fmt.Errorf("plots: no points to render")
	}
	if xMax == xMin {
		xMax = xMin + 1
	}
	if yMax == yMin {
		yMax = yMin + 1
	}
	return xMin, xMax, yMin, yMax, nil
}
