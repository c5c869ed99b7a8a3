package prefixsum

import "testing"

func TestNextPow2(t *testing.T) {
	for _, tc := range []struct{ n, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {4, 4}, {5, 8}, {7, 8}, {8, 8},
		{9, 16}, {1000, 1024}, {1 << 20, 1 << 20}, {1<<20 + 1, 1 << 21},
		{100000000, 134217728},
	} {
		if got := nextPow2(tc.n); got != tc.want {
			t.Errorf("nextPow2(%d) = %d, expected %d", tc.n, got, tc.want)
		}
	}
}

func TestPad(t *testing.T) {
	for n := 0; n <= 33; n++ {
		data := make([]int64, n)
		for i := range data {
			data[i] = int64(i + 1)
		}

		p := pad(data)

		if !isPow2(p.Len()) || p.Len() < n || p.Len() >= 2*n && n > 1 {
			t.Errorf("n=%d: padded length %d is not the next power of two", n, p.Len())
		}
		if p.original != n || p.Padding() != p.Len()-n {
			t.Errorf("n=%d: bad bookkeeping original=%d padding=%d", n, p.original, p.Padding())
		}
		for i := 0; i < n; i++ {
			if p.data[i] != int64(i+1) {
				t.Errorf("n=%d: padding changed position %d", n, i)
			}
		}
		for i := n; i < p.Len(); i++ {
			if p.data[i] != 0 {
				t.Errorf("n=%d: padded position %d holds %d", n, i, p.data[i])
			}
		}
	}
}

func TestPadToKeepsLongerSlices(t *testing.T) {
	p := padTo([]int64{1, 2, 3}, 2)
	if p.Len() != 3 {
		t.Errorf("padTo shouldn't truncate. Got length %d", p.Len())
	}
}
