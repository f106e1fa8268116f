package fonts

import (
	"testing"

	"golang.org/x/image/font"
)

func TestFaceIsCached(t *testing.T) {
	a, err := MonoFace(20)
	if err != nil {
		t.Fatalf("MonoFace: %v", err)
	}
	b, err := MonoFace(20.01)
	if err != nil {
		t.Fatalf("MonoFace: %v", err)
	}
	if a != b {
		t.Error("faces of equal rounded size should be shared")
	}

	bold, err := Face(Bold, 20)
	if err != nil {
		t.Fatalf("Face(Bold): %v", err)
	}
	if bold == a {
		t.Error("bold and regular share a face")
	}
}

func TestMonospaceAdvance(t *testing.T) {
	f, err := MonoFace(20)
	if err != nil {
		t.Fatalf("MonoFace: %v", err)
	}
	wi := font.MeasureString(f, "iiii").Round()
	wm := font.MeasureString(f, "MMMM").Round()
	if wi != wm {
		t.Errorf("advance differs: i=%d M=%d", wi, wm)
	}
	if got := TextWidth("abcd", 20); got != 48 {
		t.Errorf("TextWidth = %v, want 48", got)
	}
}

func TestNonPositiveSize(t *testing.T) {
	if _, err := MonoFace(0); err != nil {
		t.Errorf("MonoFace(0) error = %v", err)
	}
}
