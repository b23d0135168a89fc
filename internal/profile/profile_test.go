package profile

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		crop    PercentCrop
		wantErr bool
	}{
		{"full frame", PercentCrop{X: 0, Y: 0, Width: 100, Height: 100}, false},
		{"centered", PercentCrop{X: 25, Y: 25, Width: 50, Height: 50}, false},
		{"zero width", PercentCrop{X: 0, Y: 0, Width: 0, Height: 50}, true},
		{"negative x", PercentCrop{X: -1, Y: 0, Width: 50, Height: 50}, true},
		{"x overflow", PercentCrop{X: 60, Y: 0, Width: 50, Height: 50}, true},
		{"y overflow", PercentCrop{X: 0, Y: 80, Width: 50, Height: 30}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.crop.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err != nil && !errors.Is(err, ErrInvalidCrop) {
				t.Errorf("expected ErrInvalidCrop, got %v", err)
			}
		})
	}
}

func TestCenterCrop(t *testing.T) {
	// landscape source: 25% of the width, square in pixels
	c := CenterCrop(400, 200)
	if c.Width != 25 {
		t.Errorf("expected width 25, got %f", c.Width)
	}
	if c.Height != 50 {
		t.Errorf("expected height 50 (100px of 200px), got %f", c.Height)
	}
	if math.Abs(c.X-37.5) > 1e-9 || math.Abs(c.Y-25) > 1e-9 {
		t.Errorf("expected centered crop, got x=%f y=%f", c.X, c.Y)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default crop must validate: %v", err)
	}

	// extreme aspect ratio must still fit
	c = CenterCrop(1000, 10)
	if err := c.Validate(); err != nil {
		t.Errorf("extreme aspect crop must validate: %v", err)
	}
}

func TestFileStem(t *testing.T) {
	p := New("  My Avatar  ")
	if got := p.FileStem(); got != "My Avatar" {
		t.Errorf("expected trimmed name, got %q", got)
	}

	p.Name = "   "
	if got := p.FileStem(); got != p.ID {
		t.Errorf("expected ID fallback, got %q", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := New("a")
	p.Crop = &PercentCrop{X: 1, Y: 2, Width: 3, Height: 4}

	c := p.Clone()
	p.Crop.X = 99
	p.Name = "renamed"

	if c.Crop.X != 1 {
		t.Error("clone shares crop storage with the original")
	}
	if c.Name != "a" {
		t.Error("clone shares the name")
	}
}

func TestListInvariants(t *testing.T) {
	l := NewList()
	if len(l.Profiles) != 1 {
		t.Fatalf("new list should hold one profile, got %d", len(l.Profiles))
	}
	if l.Active() == nil {
		t.Fatal("new list must have an active profile")
	}

	crop := PercentCrop{X: 10, Y: 10, Width: 30, Height: 30}
	if err := l.SetCrop(l.Profiles[0].ID, crop); err != nil {
		t.Fatalf("SetCrop failed: %v", err)
	}

	np := l.Add()
	if len(l.Profiles) != 2 {
		t.Fatalf("expected 2 profiles after Add, got %d", len(l.Profiles))
	}
	if !l.Profiles[0].Active || l.Profiles[0].ID != np.ID {
		t.Error("the added profile should be first and active")
	}
	if l.Profiles[1].Active {
		t.Error("only one profile may be active")
	}
	if np.Crop == nil || *np.Crop != crop {
		t.Error("the added profile should inherit the active crop")
	}
}

func TestListRemove(t *testing.T) {
	l := NewList()
	if err := l.Remove(l.Profiles[0].ID); !errors.Is(err, ErrLastProfile) {
		t.Fatalf("expected ErrLastProfile, got %v", err)
	}

	l.Add()
	l.Add() // three profiles, first one active
	active := l.Active().ID

	if err := l.Remove(active); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(l.Profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(l.Profiles))
	}
	if l.Active() == nil {
		t.Fatal("the active flag must move to a surviving profile")
	}

	if err := l.Remove("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListSetActive(t *testing.T) {
	l := NewList()
	l.Add()
	l.Add()

	last := l.Profiles[2].ID
	if err := l.SetActive(last); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	activeCount := 0
	for _, p := range l.Profiles {
		if p.Active {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Fatalf("expected exactly one active profile, got %d", activeCount)
	}
	if l.Active().ID != last {
		t.Error("wrong profile is active")
	}
}

func TestListReset(t *testing.T) {
	l := NewList()
	l.Add()
	l.Add()

	crop := PercentCrop{X: 5, Y: 5, Width: 20, Height: 20}
	l.Reset(&crop)

	if len(l.Profiles) != 1 {
		t.Fatalf("expected 1 profile after Reset, got %d", len(l.Profiles))
	}
	if l.Profiles[0].Crop == nil || *l.Profiles[0].Crop != crop {
		t.Error("reset profile should carry the given crop")
	}
	if !l.Profiles[0].Active {
		t.Error("reset profile must be active")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	l := NewList()
	l.SetCrop(l.Profiles[0].ID, PercentCrop{X: 10, Y: 20, Width: 30, Height: 40})
	l.Rename(l.Profiles[0].ID, "avatar")

	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := Save(l, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(got.Profiles))
	}
	p := got.Profiles[0]
	if p.Name != "avatar" || !p.Active {
		t.Errorf("profile fields lost: %+v", p)
	}
	if p.Crop == nil || *p.Crop != (PercentCrop{X: 10, Y: 20, Width: 30, Height: 40}) {
		t.Errorf("crop lost: %+v", p.Crop)
	}
}

func TestLoadAssignsMissingIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	raw := []byte("profiles:\n  - name: handwritten\n    crop: {x: 0, y: 0, width: 50, height: 50}\n")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Profiles[0].ID == "" {
		t.Error("expected an ID to be assigned")
	}
	if !got.Profiles[0].Active {
		t.Error("expected the first profile to become active")
	}
}
