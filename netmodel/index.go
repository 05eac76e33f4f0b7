package netmodel

// Indices resolves lab and area IDs to their dense positions in the
// matrices and input slices, replacing repeated map-building across
// packages with integer indices in the hot loops.
type Indices struct {
	LabIndex  map[string]int
	AreaIndex map[string]int
	Labs      []Laboratory
	Areas     []ServiceArea
}

// BuildIndices constructs an Indices from the run's laboratories and
// service areas, preserving their input order (which matches the row/col
// order of the D/T matrices built by package matrixbuild).
func BuildIndices(labs []Laboratory, areas []ServiceArea) Indices {
	labIndex := make(map[string]int, len(labs))
	for i, l := range labs {
		labIndex[l.ID] = i
	}
	areaIndex := make(map[string]int, len(areas))
	for i, a := range areas {
		areaIndex[a.ID] = i
	}
	return Indices{LabIndex: labIndex, AreaIndex: areaIndex, Labs: labs, Areas: areas}
}
