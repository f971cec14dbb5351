package extract

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/uterosim/symprobe/internal/simlog"
)

// idColumn is the column name Paraview uses for single-cell exports.
const idColumn = "vtkOriginalPointIds"

// Series holds the de-interleaved point data of one simulation: V[i][j]
// is the membrane potential of cell j at timestep i, T the timestep
// values in seconds, and CellIDs the extracted point ids in ascending
// order.
type Series struct {
	V       [][]float64
	T       []float64
	CellIDs []int
}

// LoadData reads an extracted CSV and the matching run log. Paraview
// writes one row per (timestep, cell) pair, cells interleaved; rows are
// regrouped into one column per cell and the time vector is rebuilt
// from the print timestep found in the log.
func LoadData(dataPath, logPath string, delimiter rune) (*Series, error) {
	f, err := os.Open(dataPath)
	if err != nil {
		return nil, fmt.Errorf("extract: data file at %s not found", dataPath)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiter
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("extract: could not parse %s: %v", dataPath, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("extract: %s is empty", dataPath)
	}

	header := records[0]
	if len(header) < 3 {
		return nil, fmt.Errorf("extract: missing point ids in %s", dataPath)
	}
	if header[2] != idColumn {
		return nil, fmt.Errorf("extract: incorrect column %q in %s", header[2], dataPath)
	}

	rows := records[1:]
	raw := make([]float64, len(rows))
	ids := make(map[int]struct{})
	for i, row := range rows {
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("extract: row %d of %s: %v", i+1, dataPath, err)
		}
		raw[i] = v

		id, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("extract: row %d of %s: %v", i+1, dataPath, err)
		}
		ids[id] = struct{}{}
	}

	cellIDs := make([]int, 0, len(ids))
	for id := range ids {
		cellIDs = append(cellIDs, id)
	}
	sort.Ints(cellIDs)

	nbCells := len(cellIDs)
	if nbCells == 0 || len(raw)%nbCells != 0 {
		return nil, fmt.Errorf("extract: %s has %d rows for %d cells", dataPath, len(raw), nbCells)
	}
	nbTimesteps := len(raw) / nbCells

	V := make([][]float64, nbTimesteps)
	for i := range V {
		V[i] = make([]float64, nbCells)
		for j := 0; j < nbCells; j++ {
			V[i][j] = raw[i*nbCells+j]
		}
	}

	timestep, err := simlog.PrintTimestep(logPath)
	if err != nil {
		return nil, err
	}

	// Timesteps in seconds.
	T := make([]float64, nbTimesteps)
	for i := range T {
		T[i] = float64(i) * timestep * 1e-3
	}

	return &Series{V: V, T: T, CellIDs: cellIDs}, nil
}

// Reorder permutes the cell columns to follow the ovarian end, centre,
// cervical end order of the extraction points.
func (s *Series) Reorder(ordered [3]int) error {
	if len(s.CellIDs) != len(ordered) {
		return fmt.Errorf("extract: %d cell ids for %d ordered points", len(s.CellIDs), len(ordered))
	}

	same := true
	for i, id := range s.CellIDs {
		if id != ordered[i] {
			same = false
			break
		}
	}
	if same {
		return nil
	}

	perm := make([]int, len(ordered))
	for i, want := range ordered {
		found := -1
		for j, id := range s.CellIDs {
			if id == want {
				found = j
				break
			}
		}
		if found == -1 {
			return fmt.Errorf("extract: point id %d not among extracted cells %v", want, s.CellIDs)
		}
		perm[i] = found
	}

	for i, row := range s.V {
		reordered := make([]float64, len(row))
		for j, src := range perm {
			reordered[j] = row[src]
		}
		s.V[i] = reordered
	}
	ids := make([]int, len(ordered))
	copy(ids, ordered[:])
	s.CellIDs = ids
	return nil
}

// Column returns the time series of one cell.
func (s *Series) Column(j int) []float64 {
	col := make([]float64, len(s.V))
	for i := range s.V {
		col[i] = s.V[i][j]
	}
	return col
}
