package critbit

// Sort sorts the slice in ascending order and drops duplicates.
// It returns the number m of unique values: only a[:m] is meaningful
// afterwards, so callers must not assume the length is preserved.
// Every value must be a valid member key (non-zero and even).
//
// The values pass through a throwaway Set backed by an arena sized
// for the worst case, which makes a build of n keys allocation-free
// after the single slab.
func Sort(a []uint64) int {
	if len(a) == 0 {
		return 0
	}

	var s Set
	InitSet(&s, NewArena(len(a)-1))

	m := len(a)
	for _, v := range a {
		if !s.Add(v) {
			m--
		}
	}

	off := 0
	s.Iter(func(v uint64) bool {
		a[off] = v
		off++
		return true
	})

	s.Clear()
	return m
}
