package post

import (
	"math"
	"testing"
)

func TestGaussianKernelIdentity(t *testing.T) {
	for _, r := range []float64{0, -1} {
		k := GaussianKernel(r)
		if len(k) != 1 || k[0] != 1 {
			t.Errorf("GaussianKernel(%v) = %v, want [1]", r, k)
		}
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	for _, r := range []float64{0.5, 1, 2.5, 4, 8} {
		r := r
		t.Run("", func(t *testing.T) {
			k := GaussianKernel(r)
			if len(k)%2 == 0 {
				t.Errorf("radius %v: even kernel size %d", r, len(k))
			}
			sum := 0.0
			for _, w := range k {
				sum += float64(w)
			}
			if math.Abs(sum-1) > 1e-4 {
				t.Errorf("radius %v: kernel sum = %v, want 1", r, sum)
			}
		})
	}
}

func TestGaussianKernelSymmetric(t *testing.T) {
	k := GaussianKernel(3)
	for i, j := 0, len(k)-1; i < j; i, j = i+1, j-1 {
		if k[i] != k[j] {
			t.Fatalf("kernel not symmetric at %d/%d: %v vs %v", i, j, k[i], k[j])
		}
	}
	mid := len(k) / 2
	for i, w := range k {
		if i != mid && w >= k[mid] {
			t.Fatalf("weight %d (%v) >= center (%v)", i, w, k[mid])
		}
	}
}

func TestGaussianKernelClamped(t *testing.T) {
	k := GaussianKernel(100)
	if len(k) > MaxKernelSize {
		t.Errorf("kernel size = %d, exceeds MaxKernelSize", len(k))
	}
}

func TestCachedKernelStable(t *testing.T) {
	a := CachedKernel(2.5)
	b := CachedKernel(2.5)
	if &a[0] != &b[0] {
		t.Error("cached kernel not reused for the same radius")
	}
}

func TestPackKernelLayout(t *testing.T) {
	k := GaussianKernel(2)
	packed := PackKernel(k)
	if len(packed) != 4+MaxKernelSize {
		t.Fatalf("packed length = %d, want %d", len(packed), 4+MaxKernelSize)
	}
	if int(packed[0]) != len(k) {
		t.Errorf("packed size field = %v, want %d", packed[0], len(k))
	}
	for i, w := range k {
		if packed[4+i] != w {
			t.Fatalf("weight %d not copied", i)
		}
	}
	for i := 4 + len(k); i < len(packed); i++ {
		if packed[i] != 0 {
			t.Fatalf("padding at %d not zero", i)
		}
	}
}
