package render

import "testing"

func TestRNG(t *testing.T) {
	rnd := newRNG(42)
	for i := 0; i < 100; i++ {
		v := rnd.next()
		if v < 0 || v >= 1 {
			t.Errorf("rng.next() = %f, should be in [0, 1)", v)
		}
	}

	rng1, rng2 := newRNG(42), newRNG(42)
	for i := 0; i < 10; i++ {
		if v1, v2 := rng1.next(), rng2.next(); v1 != v2 {
			t.Errorf("rng should be deterministic: %f != %f", v1, v2)
		}
	}

	rng1, rng3 := newRNG(42), newRNG(43)
	different := false
	for i := 0; i < 10; i++ {
		if rng1.next() != rng3.next() {
			different = true
			break
		}
	}
	if !different {
		t.Error("different seeds should produce different sequences")
	}
}

func TestRotationFor(t *testing.T) {
	seen := map[float64]bool{}
	for seed := int64(1); seed < 50; seed++ {
		rot := rotationFor(seed)
		if rot < -1.5 || rot > 1.5 {
			t.Errorf("rotationFor(%d) = %f, want within [-1.5, 1.5]", seed, rot)
		}
		if rot != rotationFor(seed) {
			t.Errorf("rotationFor(%d) not deterministic", seed)
		}
		seen[rot] = true
	}
	if len(seen) < 3 {
		t.Errorf("rotationFor produced %d distinct tilts, want variety", len(seen))
	}
}

func TestStyles(t *testing.T) {
	hd := HandDrawn{}
	for seed := int64(1); seed < 100; seed++ {
		r := hd.Roughness(seed)
		if r < 0.8 || r >= 1.5 {
			t.Errorf("Roughness(%d) = %f, want [0.8, 1.5)", seed, r)
		}
		if r != hd.Roughness(seed) {
			t.Errorf("Roughness(%d) not deterministic", seed)
		}
	}
	if (Simple{}).Roughness(7) != 0 {
		t.Error("Simple style should not jitter")
	}

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "handdrawn", false},
		{"HandDrawn", "handdrawn", false},
		{"simple", "simple", false},
		{"watercolor", "", true},
	}
	for _, tt := range tests {
		s, err := ParseStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStyle(%q) error = %v", tt.in, err)
			continue
		}
		if err == nil && s.Name() != tt.want {
			t.Errorf("ParseStyle(%q) = %s, want %s", tt.in, s.Name(), tt.want)
		}
	}
}
