package isoscene

import "testing"

func TestHash01Range(t *testing.T) {
	for seed := uint64(0); seed < 10000; seed++ {
		v := Hash01(seed)
		if v < 0 || v >= 1 {
			t.Fatalf("Hash01(%d) = %v, out of [0, 1)", seed, v)
		}
	}
}

func TestHash01Deterministic(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42, 1 << 32, 999999999} {
		if Hash01(seed) != Hash01(seed) {
			t.Errorf("Hash01(%d) not deterministic", seed)
		}
	}
}

func TestHashRange(t *testing.T) {
	for seed := uint64(0); seed < 1000; seed++ {
		v := HashRange(seed, -3, 7)
		if v < -3 || v >= 7 {
			t.Fatalf("HashRange(%d, -3, 7) = %v, out of range", seed, v)
		}
	}
}

func TestTickHashVariesWithInputs(t *testing.T) {
	base := TickHash(10, 20, 30)
	if TickHash(11, 20, 30) == base && TickHash(10, 21, 30) == base {
		t.Error("TickHash appears insensitive to tick and id")
	}
	if TickHash(10, 20, 30) != base {
		t.Error("TickHash not deterministic")
	}
}

func TestTickHashDistribution(t *testing.T) {
	// Coarse sanity check: mean of many samples should sit near 0.5.
	var sum float64
	const n = 20000
	for i := uint64(0); i < n; i++ {
		sum += TickHash(i, i*3+1, 7)
	}
	mean := sum / n
	if mean < 0.45 || mean > 0.55 {
		t.Errorf("TickHash mean = %v, want near 0.5", mean)
	}
}
