package chart

import (
	"bytes"
	"errors"
	"testing"
)

func sample(t *testing.T) *Chart {
	t.Helper()
	c, err := New(16, 16)
	if err != nil {
		t.Fatalf("New(16, 16): %v", err)
	}
	frames := []Frame{
		{Name: "blue", X: 0, Y: 0, Width: 8, Height: 8},
		{Name: "black", X: 8, Y: 0, Width: 8, Height: 8},
		{Name: "red", X: 0, Y: 8, Width: 8, Height: 8},
		{Name: "green", X: 8, Y: 8, Width: 8, Height: 8},
	}
	for _, f := range frames {
		if err := c.Add(f); err != nil {
			t.Fatalf("Add(%q): %v", f.Name, err)
		}
	}
	return c
}

func TestNewRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 16}, {16, 0}, {-1, 16}, {16, -1}} {
		if _, err := New(dims[0], dims[1]); err == nil {
			t.Errorf("New(%d, %d): want error, got nil", dims[0], dims[1])
		}
	}
}

func TestAddRejectsInvalidFrames(t *testing.T) {
	tests := []struct {
		desc  string
		frame Frame
	}{
		{"empty name", Frame{Name: "", X: 0, Y: 0, Width: 1, Height: 1}},
		{"negative x", Frame{Name: "f", X: -1, Y: 0, Width: 1, Height: 1}},
		{"negative y", Frame{Name: "f", X: 0, Y: -1, Width: 1, Height: 1}},
		{"zero width", Frame{Name: "f", X: 0, Y: 0, Width: 0, Height: 1}},
		{"zero height", Frame{Name: "f", X: 0, Y: 0, Width: 1, Height: 0}},
	}
	for _, tc := range tests {
		c, _ := New(8, 8)
		err := c.Add(tc.frame)
		var malformed *MalformedError
		if !errors.As(err, &malformed) {
			t.Errorf("%s: got %v, want MalformedError", tc.desc, err)
		}
	}
}

func TestAddRejectsDuplicateName(t *testing.T) {
	c, _ := New(8, 8)
	if err := c.Add(Frame{Name: "f", Width: 1, Height: 1}); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	err := c.Add(Frame{Name: "f", X: 1, Y: 1, Width: 1, Height: 1})
	var dup *DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("second Add: got %v, want DuplicateNameError", err)
	}
	if dup.Name != "f" {
		t.Errorf("DuplicateNameError.Name = %q, want %q", dup.Name, "f")
	}
}

func TestNamesAreCaseSensitive(t *testing.T) {
	c, _ := New(8, 8)
	if err := c.Add(Frame{Name: "Hero", Width: 1, Height: 1}); err != nil {
		t.Fatalf("Add(Hero): %v", err)
	}
	if err := c.Add(Frame{Name: "hero", X: 1, Width: 1, Height: 1}); err != nil {
		t.Fatalf("Add(hero): %v, want distinct from Hero", err)
	}
	if f, ok := c.Frame("hero"); !ok || f.X != 1 {
		t.Errorf("Frame(hero) = %+v, %v", f, ok)
	}
}

func TestNamesIteratorOrderAndRestart(t *testing.T) {
	c := sample(t)
	want := []string{"blue", "black", "red", "green"}
	for round := 0; round < 2; round++ {
		var got []string
		for name := range c.Names() {
			got = append(got, name)
		}
		if len(got) != len(want) {
			t.Fatalf("round %d: got %d names, want %d", round, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("round %d: names[%d] = %q, want %q", round, i, got[i], want[i])
			}
		}
	}
}

func TestAt(t *testing.T) {
	c := sample(t)
	f, ok := c.At(2)
	if !ok || f.Name != "red" {
		t.Errorf("At(2) = %+v, %v; want frame red", f, ok)
	}
	if _, ok := c.At(-1); ok {
		t.Error("At(-1): want ok=false")
	}
	if _, ok := c.At(c.Len()); ok {
		t.Errorf("At(%d): want ok=false", c.Len())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := sample(t)
	clone := c.Clone()
	if !c.Equal(clone) {
		t.Fatal("clone differs from original")
	}
	if err := c.Add(Frame{Name: "extra", Width: 1, Height: 1}); err != nil {
		t.Fatalf("Add(extra): %v", err)
	}
	if clone.Len() != 4 {
		t.Errorf("clone.Len() = %d after mutating original, want 4", clone.Len())
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := sample(t)
	data, err := Encode(c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode(Encode(c)): %v", err)
	}
	if !c.Equal(back) {
		t.Errorf("round trip mismatch:\noriginal: %+v\ndecoded: %+v", c, back)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	c := sample(t)
	a, err := Encode(c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Encode(c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two encodings of the same chart differ")
	}
}

func TestEncodeEmptyChartRoundTrips(t *testing.T) {
	c, _ := New(4, 4)
	data, err := Encode(c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.Len() != 0 || back.Width != 4 || back.Height != 4 {
		t.Errorf("round trip of empty chart gave %+v", back)
	}
}
