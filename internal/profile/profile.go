package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidCrop = errors.New("profile has no valid crop region")
	ErrLastProfile = errors.New("cannot remove the last remaining profile")
	ErrNotFound    = errors.New("profile not found")
)

// PercentCrop is a crop rectangle expressed in percent of the source
// dimensions, never relative to a previously applied crop.
type PercentCrop struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (c PercentCrop) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: width and height must be > 0", ErrInvalidCrop)
	}
	if c.X < 0 || c.Y < 0 || c.X > 100 || c.Y > 100 {
		return fmt.Errorf("%w: offsets must be within [0,100]", ErrInvalidCrop)
	}
	if c.X+c.Width > 100 || c.Y+c.Height > 100 {
		return fmt.Errorf("%w: crop extends past the source", ErrInvalidCrop)
	}
	return nil
}

// CenterCrop returns the default crop: a centered square covering 25% of
// the source width (or height, whichever inscribes).
func CenterCrop(srcWidth, srcHeight int) PercentCrop {
	if srcWidth <= 0 || srcHeight <= 0 {
		return PercentCrop{X: 37.5, Y: 37.5, Width: 25, Height: 25}
	}
	w := 25.0
	// square in pixels, so the height percentage follows the aspect ratio
	h := w * float64(srcWidth) / float64(srcHeight)
	if h > 100 {
		h = 100
		w = h * float64(srcHeight) / float64(srcWidth)
	}
	return PercentCrop{X: (100 - w) / 2, Y: (100 - h) / 2, Width: w, Height: h}
}

type Profile struct {
	ID     string       `yaml:"id"`
	Name   string       `yaml:"name"`
	Active bool         `yaml:"active"`
	Crop   *PercentCrop `yaml:"crop,omitempty"`
}

func New(name string) Profile {
	return Profile{ID: uuid.NewString(), Name: name, Active: true}
}

// FileStem is the output file name without extension: the trimmed display
// name, or the ID when the name trims to nothing.
func (p Profile) FileStem() string {
	if s := strings.TrimSpace(p.Name); s != "" {
		return s
	}
	return p.ID
}

// Clone deep-copies the profile so an in-flight export cannot observe
// later mutations.
func (p Profile) Clone() Profile {
	c := p
	if p.Crop != nil {
		crop := *p.Crop
		c.Crop = &crop
	}
	return c
}

func CloneAll(profiles []Profile) []Profile {
	out := make([]Profile, len(profiles))
	for i, p := range profiles {
		out[i] = p.Clone()
	}
	return out
}
