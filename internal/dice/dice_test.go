package dice

import (
	"math"
	"testing"
)

func TestRollerReproducibility(t *testing.T) {
	r1 := NewRoller(12345)
	r2 := NewRoller(12345)

	for i := 0; i < 100; i++ {
		a, b := r1.Roll(), r2.Roll()
		if a != b {
			t.Fatalf("Roll %d mismatch: %d != %d", i, a, b)
		}
	}
}

func TestRollRange(t *testing.T) {
	r := NewRoller(42)
	for i := 0; i < 1000; i++ {
		got := r.Roll()
		if got < 0 || got > MaxRoll {
			t.Fatalf("Roll() = %d, want 0..%d", got, MaxRoll)
		}
	}
}

func TestZeroSeedPicksOne(t *testing.T) {
	r := NewRoller(0)
	if r.Seed() == 0 {
		t.Error("NewRoller(0).Seed() should not be 0")
	}
}

func TestDistribution(t *testing.T) {
	want := [MaxRoll + 1]float64{1.0 / 16, 4.0 / 16, 6.0 / 16, 4.0 / 16, 1.0 / 16}
	got := Distribution()

	sum := 0.0
	for roll := range got {
		if math.Abs(got[roll]-want[roll]) > 1e-9 {
			t.Errorf("Distribution()[%d] = %v, want %v", roll, got[roll], want[roll])
		}
		sum += got[roll]
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("Distribution() sums to %v, want 1", sum)
	}
}
