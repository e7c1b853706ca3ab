package plan

import (
	"encoding/json"
	"strings"
)

// DependsOn is the canonical dependency list of a task: predecessor IDs
// with no blanks, no duplicates, first-seen order preserved.
//
// Stored data has carried three shapes over time: a single string ID, a
// list of IDs, or null. DependsOn is the versioned-input adapter that
// collapses all of them at the JSON boundary, so every other layer only
// sees the list form.
type DependsOn []string

// NormalizeDeps filters blanks and duplicates from raw while preserving
// first-seen order. A nil result means no dependencies.
func NormalizeDeps(raw []string) DependsOn {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(raw))
	out := make(DependsOn, 0, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Contains reports whether id is a predecessor.
func (d DependsOn) Contains(id string) bool {
	for _, dep := range d {
		if dep == id {
			return true
		}
	}
	return false
}

// Without returns the list with every ID in removed stripped out.
// Returns nil when nothing is left.
func (d DependsOn) Without(removed map[string]bool) DependsOn {
	if len(d) == 0 {
		return nil
	}
	out := make(DependsOn, 0, len(d))
	for _, dep := range d {
		if !removed[dep] {
			out = append(out, dep)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// UnmarshalJSON accepts null, a single string ID, or a list of IDs,
// normalizing to the canonical form.
func (d *DependsOn) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*d = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*d = NormalizeDeps([]string{single})
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*d = NormalizeDeps(list)
	return nil
}

// MarshalJSON writes null for an empty list, otherwise the plain list.
func (d DependsOn) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal([]string(d))
}
