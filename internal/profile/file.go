package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a profiles file. Profiles without an ID get one assigned so
// hand-written files stay valid; an active flag is forced onto the first
// profile when the file carries none.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list List
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse profiles file: %w", err)
	}
	if len(list.Profiles) == 0 {
		return nil, fmt.Errorf("profiles file %s contains no profiles", path)
	}

	seenActive := false
	for i := range list.Profiles {
		if list.Profiles[i].ID == "" {
			list.Profiles[i].ID = New("").ID
		}
		if list.Profiles[i].Active {
			if seenActive {
				list.Profiles[i].Active = false
			}
			seenActive = true
		}
	}
	if !seenActive {
		list.Profiles[0].Active = true
	}
	return &list, nil
}

func Save(list *List, path string) error {
	data, err := yaml.Marshal(list)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
