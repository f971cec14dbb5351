// Package plots renders extracted simulation data as terminal charts
// and SVG files.
package plots

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Stage colours follow the plotting convention: proestrus red, estrus
// blue, metestrus green, diestrus black.
var stageColors = map[string]asciigraph.AnsiColor{
	"proestrus": asciigraph.Red,
	"estrus":    asciigraph.Blue,
	"metestrus": asciigraph.Green,
	"diestrus":  asciigraph.Default,
}

var stageHex = map[string]string{
	"proestrus": "#cc2222",
	"estrus":    "#2244cc",
	"metestrus": "#22aa44",
	"diestrus":  "#111111",
}

var stageStyles = map[string]lipgloss.Style{
	"proestrus": lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	"estrus":    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	"metestrus": lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	"diestrus":  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
}

var titleStyle = lipgloss.NewStyle().Bold(true)

var paramLabels = map[string]string{
	"gkv43":        "g_Kv4.3",
	"gcal":         "g_CaL",
	"gkca":         "g_KCa",
	"gna":          "g_Na",
	"stim_current": "I_stim",
}

var paramUnits = map[string]string{
	"gkv43":        "nS/pF",
	"gcal":         "nS/pF",
	"gkca":         "nS/pF",
	"gna":          "nS/pF",
	"stim_current": "pA/pF",
}

// AxisLabel renders a parameter axis label with its unit when known.
func AxisLabel(param string) string {
	label, ok := paramLabels[param]
	if !ok {
		return param
	}
	if unit, ok := paramUnits[param]; ok {
		return label + " (" + unit + ")"
	}
	return label
}
