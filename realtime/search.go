package realtime

// ValueAt resolves the value stored at a rotated array index, or ok=false
// if that slot is unknown because no chunk has been observed there yet.
type ValueAt func(index int) (value int64, ok bool)

// shouldSearchRight reports whether target lies in the right half of a
// rotated, monotonically-increasing-except-for-one-wraparound sequence
// whose first known element is first, given the value found at the
// current probe point.
func shouldSearchRight(first, value, target int64) bool {
	if value < target {
		return value >= first || target < first
	}
	return value >= first && target < first
}

// SearchRotated finds the index among [0, n) holding target, where the
// underlying values increase monotonically except for a single wraparound
// point (as volume/sequence counters do when they roll over), and an
// unknown subset of indices have no recorded value yet (valueAt reports
// ok=false for those). It runs in two phases: first it bisects the range
// to find any populated index to use as a reference point, then it runs a
// classic rotated-array binary search anchored on that reference.
func SearchRotated(n int, valueAt ValueAt, target int64) (int, bool) {
	if n == 0 {
		return 0, false
	}

	refIdx, refVal, ok := findReference(0, n-1, valueAt)
	if !ok {
		return 0, false
	}
	if refVal == target {
		return refIdx, true
	}

	first := refVal
	if v, ok := valueAt(0); ok {
		first = v
	}

	lo, hi := 0, n-1
	for lo <= hi {
		mid := (lo + hi) / 2
		v, ok := valueAt(mid)
		if !ok {
			altVal, altIdx, found := nearestPopulated(mid, lo, hi, valueAt)
			if !found {
				return 0, false
			}
			mid, v = altIdx, altVal
		}

		if v == target {
			return mid, true
		}
		if shouldSearchRight(first, v, target) {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	return 0, false
}

// findReference bisects [start, end] to find any index with a known
// value, pushing both halves onto a stack whenever it hits an unknown
// slot, so it explores breadth-first outward from the midpoint rather than
// degrading to a linear scan across a sparse range.
func findReference(start, end int, valueAt ValueAt) (idx int, value int64, ok bool) {
	type span struct{ start, end int }
	stack := []span{{start, end}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.start > s.end {
			continue
		}

		mid := (s.start + s.end) / 2
		if v, ok := valueAt(mid); ok {
			return mid, v, true
		}
		stack = append(stack, span{s.start, mid - 1}, span{mid + 1, s.end})
	}

	return 0, 0, false
}

// nearestPopulated finds the populated slot closest to mid (preferring
// neither direction), used when a binary search probe lands on an unknown
// slot and needs a nearby stand-in value to keep narrowing the range.
func nearestPopulated(mid, lo, hi int, valueAt ValueAt) (int64, int, bool) {
	for d := 1; ; d++ {
		left, right := mid-d, mid+d
		if left < lo && right > hi {
			return 0, 0, false
		}
		if left >= lo {
			if v, ok := valueAt(left); ok {
				return v, left, true
			}
		}
		if right <= hi {
			if v, ok := valueAt(right); ok {
				return v, right, true
			}
		}
	}
}
