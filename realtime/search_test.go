package realtime

import "testing"

func TestShouldSearchRight(t *testing.T) {
	cases := []struct {
		name               string
		first, value, target int64
		want               bool
	}{
		{"simple", 0, 5, 8, true},
		{"repeated", 3, 3, 3, false},
		{"wrapped_below_pivot", 10, 2, 1, false},
		{"wrapped_above_pivot", 10, 15, 12, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := shouldSearchRight(c.first, c.value, c.target)
			if got != c.want {
				t.Errorf("shouldSearchRight(%d, %d, %d) = %v, want %v", c.first, c.value, c.target, got, c.want)
			}
		})
	}
}

func sliceValueAt(values []*int64) ValueAt {
	return func(i int) (int64, bool) {
		if i < 0 || i >= len(values) || values[i] == nil {
			return 0, false
		}
		return *values[i], true
	}
}

func v(x int64) *int64 { return &x }

func TestSearchRotated(t *testing.T) {
	cases := []struct {
		name      string
		values    []*int64
		target    int64
		wantFound bool
		wantIndex int
	}{
		{"empty", []*int64{}, 5, false, 0},
		{"single", []*int64{v(5)}, 5, true, 0},
		{"single_under", []*int64{v(5)}, 1, false, 0},
		{"single_over", []*int64{v(5)}, 9, false, 0},
		{"double_match", []*int64{v(1), v(2)}, 1, true, 0},
		{"double_over", []*int64{v(1), v(2)}, 9, false, 0},
		{"double_under", []*int64{v(1), v(2)}, 0, false, 0},
		{"double_middle", []*int64{v(1), v(3)}, 2, false, 0},
		{"filled", []*int64{v(1), v(2), v(3), v(4), v(5)}, 3, true, 2},
		{"filled_nonmatch", []*int64{v(1), v(2), v(3), v(4), v(5)}, 9, false, 0},
		{"all_none", []*int64{nil, nil, nil}, 1, false, 0},
		{"none_end", []*int64{v(1), v(2), v(3), nil, nil}, 2, true, 1},
		{"wrapping_match_start", []*int64{v(8), v(9), v(1), v(2), v(3)}, 8, true, 0},
		{"wrapping_match_end", []*int64{v(8), v(9), v(1), v(2), v(3)}, 3, true, 4},
		{"wrapping_no_match", []*int64{v(8), v(9), v(1), v(2), v(3)}, 5, false, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			idx, found := SearchRotated(len(c.values), sliceValueAt(c.values), c.target)
			if found != c.wantFound {
				t.Fatalf("SearchRotated() found = %v, want %v", found, c.wantFound)
			}
			if found && idx != c.wantIndex {
				t.Errorf("SearchRotated() index = %d, want %d", idx, c.wantIndex)
			}
		})
	}
}
