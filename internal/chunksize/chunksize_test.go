package chunksize

import "testing"

func TestPick(t *testing.T) {
	cases := []struct {
		size int64
		want uint32
	}{
		{0, 1 * mib},
		{1, 1 * mib},
		{256 * mib, 1 * mib},
		{256*mib + 1, 2 * mib},
		{1 * gib, 2 * mib},
		{1*gib + 1, 8 * mib},
		{5 * gib, 8 * mib},
		{10 * gib, 16 * mib},
		{50 * gib, 32 * mib},
		{100 * gib, 64 * mib},
		{500 * gib, 128 * mib},
		{500*gib + 1, 256 * mib},
		{1000 * gib, 256 * mib},
	}
	for _, c := range cases {
		if got := Pick(c.size); got != c.want {
			t.Errorf("Pick(%d) = %d, want %d", c.size, got, c.want)
		}
	}
}
