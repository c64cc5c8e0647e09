package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Role is one chit that can be dealt to a player for a round.
type Role struct {
	Name     string `json:"name"`
	Points   int    `json:"points"`
	IsSeeker bool   `json:"is_seeker"`
	IsTarget bool   `json:"is_target"`
}

// RoleTable is the canonical ordered role list. A round with N players is
// dealt the first N entries, so the seeker and target must come first.
type RoleTable []Role

// DefaultRoles returns the stock chit set.
func DefaultRoles() RoleTable {
	return RoleTable{
		{Name: "RAMUDU", Points: 500, IsSeeker: true},
		{Name: "SITA", Points: 0, IsTarget: true},
		{Name: "HANUMAN", Points: 400},
		{Name: "BHARATA", Points: 200},
		{Name: "SHATRUGHNA", Points: 100},
	}
}

// Validate checks the table shape: seeker first, target second, no other
// seeker/target, unique names.
func (t RoleTable) Validate() error {
	if len(t) < 2 {
		return errors.New("role table needs at least a seeker and a target")
	}
	if !t[0].IsSeeker || t[0].IsTarget {
		return errors.New("first role must be the seeker")
	}
	if !t[1].IsTarget || t[1].IsSeeker {
		return errors.New("second role must be the target")
	}
	seen := make(map[string]bool, len(t))
	for i, r := range t {
		if r.Name == "" {
			return fmt.Errorf("role %d has no name", i)
		}
		if seen[r.Name] {
			return fmt.Errorf("duplicate role %q", r.Name)
		}
		seen[r.Name] = true
		if i >= 2 && (r.IsSeeker || r.IsTarget) {
			return fmt.Errorf("role %q: only the first two roles may be seeker or target", r.Name)
		}
	}
	return nil
}

// ForPlayers returns a copy of the first n roles.
func (t RoleTable) ForPlayers(n int) (RoleTable, error) {
	if n > len(t) {
		return nil, ErrTooManyPlayers
	}
	out := make(RoleTable, n)
	copy(out, t[:n])
	return out, nil
}

// UnmarshalText parses "NAME:points[:seeker|:target],..." so the table can
// be supplied through the environment.
func (t *RoleTable) UnmarshalText(text []byte) error {
	var roles RoleTable
	for _, entry := range strings.Split(string(text), ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return fmt.Errorf("role %q: want NAME:points[:seeker|target]", entry)
		}
		points, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("role %q: %w", entry, err)
		}
		r := Role{Name: strings.ToUpper(parts[0]), Points: points}
		if len(parts) == 3 {
			switch strings.ToLower(parts[2]) {
			case "seeker":
				r.IsSeeker = true
			case "target":
				r.IsTarget = true
			default:
				return fmt.Errorf("role %q: unknown flag %q", entry, parts[2])
			}
		}
		roles = append(roles, r)
	}
	if err := roles.Validate(); err != nil {
		return err
	}
	*t = roles
	return nil
}
