package identity

import (
	"encoding/json"
	"sort"
)

// RoleEntry is a cached role with its permission names.
type RoleEntry struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// Snapshot is the cached role/permission table of one guard. It is
// immutable once built and safe for concurrent reads.
type Snapshot struct {
	Guard       string      `json:"guard"`
	Roles       []RoleEntry `json:"roles"`
	Permissions []string    `json:"permissions"`

	byID   map[int64]int
	byName map[string]int
	grants map[int64]map[string]struct{}
}

// NewSnapshot builds an indexed snapshot.
func NewSnapshot(guard string, roles []RoleEntry, permissions []string) *Snapshot {
	s := &Snapshot{Guard: guard, Roles: roles, Permissions: permissions}
	s.index()
	return s
}

// DecodeSnapshot restores a snapshot from its JSON encoding.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	s.index()
	return &s, nil
}

// Encode returns the JSON encoding of the snapshot.
func (s *Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

func (s *Snapshot) index() {
	s.byID = make(map[int64]int, len(s.Roles))
	s.byName = make(map[string]int, len(s.Roles))
	s.grants = make(map[int64]map[string]struct{}, len(s.Roles))
	for i, r := range s.Roles {
		s.byID[r.ID] = i
		s.byName[r.Name] = i
		set := make(map[string]struct{}, len(r.Permissions))
		for _, p := range r.Permissions {
			set[p] = struct{}{}
		}
		s.grants[r.ID] = set
	}
}

// RoleByID returns a cached role.
func (s *Snapshot) RoleByID(id int64) (RoleEntry, bool) {
	i, ok := s.byID[id]
	if !ok {
		return RoleEntry{}, false
	}
	return s.Roles[i], true
}

// RoleByName returns a cached role.
func (s *Snapshot) RoleByName(name string) (RoleEntry, bool) {
	i, ok := s.byName[name]
	if !ok {
		return RoleEntry{}, false
	}
	return s.Roles[i], true
}

// Grants reports whether any of roleIDs carries permission.
func (s *Snapshot) Grants(roleIDs []int64, permission string) bool {
	for _, id := range roleIDs {
		if _, ok := s.grants[id][permission]; ok {
			return true
		}
	}
	return false
}

// PermissionsFor returns the sorted union of permissions across roleIDs.
func (s *Snapshot) PermissionsFor(roleIDs []int64) []string {
	seen := make(map[string]struct{})
	for _, id := range roleIDs {
		for p := range s.grants[id] {
			seen[p] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
