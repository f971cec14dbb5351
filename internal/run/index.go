package run

// Index builds the lookup from simulation number to output directory
// for the successful runs, the structure the extraction and plotting
// collaborators consume. Zero successes is surfaced as an error rather
// than an empty mapping: downstream tools cannot proceed on nothing.
func Index(records []Record) (map[int]string, error) {
	index := make(map[int]string)
	for _, rec := range records {
		if rec.Status != Success {
			continue
		}
		index[rec.Number] = rec.OutputDir
	}
	if len(index) == 0 {
		return nil, ErrEmptyResult
	}
	return index, nil
}
