package exercise

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps exercise names and aliases, case-insensitively, to profiles.
// It is read-only after construction and safe for concurrent use.
type Registry struct {
	profiles map[string]Profile
	aliases  map[string]string
}

// NewRegistry validates and indexes the given profiles.
func NewRegistry(profiles ...Profile) (*Registry, error) {
	r := &Registry{
		profiles: make(map[string]Profile, len(profiles)),
		aliases:  make(map[string]string),
	}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		name := normalizeName(p.Name)
		if _, exists := r.aliases[name]; exists {
			return nil, fmt.Errorf("duplicate exercise name: %s", p.Name)
		}
		r.profiles[name] = p
		r.aliases[name] = name
		for _, alias := range p.Aliases {
			alias = normalizeName(alias)
			if existing, exists := r.aliases[alias]; exists && existing != name {
				return nil, fmt.Errorf("alias %q of %s already used by %s", alias, p.Name, existing)
			}
			r.aliases[alias] = name
		}
	}
	return r, nil
}

// NewDefaultRegistry builds the built-in catalogue with per-exercise
// overrides applied. Override keys are exercise names or aliases.
func NewDefaultRegistry(overrides map[string]Override) (*Registry, error) {
	base, err := NewRegistry(DefaultProfiles()...)
	if err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return base, nil
	}

	profiles := base.Profiles()
	for key, o := range overrides {
		name, ok := base.aliases[normalizeName(key)]
		if !ok {
			return nil, fmt.Errorf("override for unknown exercise: %s", key)
		}
		for i := range profiles {
			if normalizeName(profiles[i].Name) == name {
				profiles[i] = o.Apply(profiles[i])
			}
		}
	}
	return NewRegistry(profiles...)
}

// Lookup finds a profile by name or alias.
func (r *Registry) Lookup(name string) (Profile, bool) {
	canonical, ok := r.aliases[normalizeName(name)]
	if !ok {
		return Profile{}, false
	}
	return r.profiles[canonical], true
}

// Profiles returns all profiles sorted by name.
func (r *Registry) Profiles() []Profile {
	profiles := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
