// Package simlog extracts run metadata from captured simulator logs.
package simlog

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var timestepRe = regexp.MustCompile(`print timestep:\s*(\d+\.?\d*)\s*ms`)

// PrintTimestep returns the print timestep in ms from a run log.
func PrintTimestep(logPath string) (float64, error) {
	line, err := findLine(logPath, "print timestep")
	if err != nil {
		return 0, err
	}
	m := timestepRe.FindStringSubmatch(line)
	if m == nil {
		return 0, fmt.Errorf("simlog: print timestep not found in %s", logPath)
	}
	return strconv.ParseFloat(m[1], 64)
}

// MeshName returns the name of the mesh the run used.
func MeshName(logPath string) (string, error) {
	line, err := findLine(logPath, "mesh")
	if err != nil {
		return "", err
	}
	_, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", fmt.Errorf("simlog: mesh name not found in %s", logPath)
	}
	return strings.TrimSpace(value), nil
}

// ParamValue returns the logged numeric value of a parameter.
func ParamValue(logPath, param string) (float64, error) {
	line, err := findLine(logPath, param)
	if err != nil {
		return 0, err
	}
	_, value, ok := strings.Cut(line, ":")
	if !ok {
		return 0, fmt.Errorf("simlog: parameter %q not found in %s", param, logPath)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("simlog: parsing %q value: %v", param, err)
	}
	return v, nil
}

func findLine(logPath, needle string) (string, error) {
	f, err := os.Open(logPath)
	if err != nil {
		return "", fmt.Errorf("simlog: log file at %s not found", logPath)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), needle) {
			return scanner.Text(), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("simlog: reading %s: %v", logPath, err)
	}
	return "", fmt.Errorf("simlog: %q not found in %s", needle, logPath)
}
