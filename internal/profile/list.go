package profile

const defaultName = "New profile"

// List holds the session's profiles. Operations keep two invariants: the
// list is never empty, and exactly one profile is active.
type List struct {
	Profiles []Profile `yaml:"profiles"`
}

func NewList() *List {
	return &List{Profiles: []Profile{New(defaultName)}}
}

func (l *List) Active() *Profile {
	for i := range l.Profiles {
		if l.Profiles[i].Active {
			return &l.Profiles[i]
		}
	}
	return nil
}

func (l *List) find(id string) int {
	for i := range l.Profiles {
		if l.Profiles[i].ID == id {
			return i
		}
	}
	return -1
}

// Add prepends a new active profile that inherits the currently active
// profile's crop.
func (l *List) Add() Profile {
	ap := l.Active()
	if ap == nil {
		return Profile{}
	}
	np := New(defaultName)
	if ap.Crop != nil {
		crop := *ap.Crop
		np.Crop = &crop
	}
	for i := range l.Profiles {
		l.Profiles[i].Active = false
	}
	l.Profiles = append([]Profile{np}, l.Profiles...)
	return np
}

// Remove deletes a profile. Removing the active profile hands the active
// flag to the profile that takes its list position, or the new tail when
// the last entry was removed. The final profile cannot be removed.
func (l *List) Remove(id string) error {
	if len(l.Profiles) <= 1 {
		return ErrLastProfile
	}
	idx := l.find(id)
	if idx < 0 {
		return ErrNotFound
	}
	wasActive := l.Profiles[idx].Active
	l.Profiles = append(l.Profiles[:idx], l.Profiles[idx+1:]...)
	if wasActive {
		if idx == len(l.Profiles) {
			idx--
		}
		l.Profiles[idx].Active = true
	}
	return nil
}

func (l *List) Rename(id, name string) error {
	idx := l.find(id)
	if idx < 0 {
		return ErrNotFound
	}
	l.Profiles[idx].Name = name
	return nil
}

func (l *List) SetActive(id string) error {
	idx := l.find(id)
	if idx < 0 {
		return ErrNotFound
	}
	for i := range l.Profiles {
		l.Profiles[i].Active = i == idx
	}
	return nil
}

func (l *List) SetCrop(id string, crop PercentCrop) error {
	if err := crop.Validate(); err != nil {
		return err
	}
	idx := l.find(id)
	if idx < 0 {
		return ErrNotFound
	}
	c := crop
	l.Profiles[idx].Crop = &c
	return nil
}

// Reset replaces all profiles with a single fresh one, as happens when a
// new upload arrives.
func (l *List) Reset(crop *PercentCrop) {
	p := New(defaultName)
	if crop != nil {
		c := *crop
		p.Crop = &c
	}
	l.Profiles = []Profile{p}
}
