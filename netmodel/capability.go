package netmodel

// CapabilityTable is a dense lab-index x test-type-index table of
// capability entries, built once at run start. An absent entry (ok==false
// from Get) means "not capable"; this removes map lookups from the
// evaluator's hot path.
type CapabilityTable struct {
	testTypes []string
	index     map[string]int
	labCount  int
	entries   []TestCapability
	present   []bool
}

// BuildCapabilityTable indexes every test type referenced by labs or
// demands and produces a dense labCount x testTypeCount table.
func BuildCapabilityTable(labs []Laboratory, demands []TestDemand) *CapabilityTable {
	index := make(map[string]int)
	addType := func(tt string) {
		if _, ok := index[tt]; !ok {
			index[tt] = len(index)
		}
	}
	for _, d := range demands {
		addType(d.TestType)
	}
	for _, l := range labs {
		for tt := range l.TestTypes {
			addType(tt)
		}
	}
	types := make([]string, len(index))
	for tt, i := range index {
		types[i] = tt
	}

	t := &CapabilityTable{
		testTypes: types,
		index:     index,
		labCount:  len(labs),
		entries:   make([]TestCapability, len(labs)*len(types)),
		present:   make([]bool, len(labs)*len(types)),
	}
	for li, lab := range labs {
		for tt, cap := range lab.TestTypes {
			ti := index[tt]
			pos := li*len(types) + ti
			t.entries[pos] = cap
			t.present[pos] = true
		}
	}
	return t
}

// TestTypeIndex returns the dense index for a test type, or -1 if unknown.
func (t *CapabilityTable) TestTypeIndex(testType string) int {
	if i, ok := t.index[testType]; ok {
		return i
	}
	return -1
}

// Get returns the capability entry for (labIndex, testType) and whether it
// is present (i.e., the lab is capable, per the source data).
func (t *CapabilityTable) Get(labIndex int, testType string) (TestCapability, bool) {
	ti, ok := t.index[testType]
	if !ok {
		return TestCapability{}, false
	}
	pos := labIndex*len(t.testTypes) + ti
	if pos < 0 || pos >= len(t.entries) || !t.present[pos] {
		return TestCapability{}, false
	}
	return t.entries[pos], true
}
