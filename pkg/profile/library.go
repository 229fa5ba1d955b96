package profile

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownProfile is returned when a library lookup misses.
var ErrUnknownProfile = errors.New("profile: unknown profile")

// Library is an explicit in-memory profile registry keyed by name.
// Profiles are validated on the way in, so consumers can treat anything
// they get back as ready to use. Safe for concurrent readers and writers.
type Library struct {
	mu       sync.RWMutex
	profiles map[string]*TubeProfile
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{profiles: make(map[string]*TubeProfile)}
}

// Add validates and registers a profile under its name, replacing any
// previous entry.
func (l *Library) Add(p *TubeProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.profiles[p.Name] = p
	return nil
}

// Get returns the profile registered under name.
func (l *Library) Get(name string) (*TubeProfile, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return p, nil
}

// Remove drops a profile from the library. Removing an absent name is a
// no-op.
func (l *Library) Remove(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.profiles, name)
}

// Names returns the registered profile names, sorted.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.profiles))
	for name := range l.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadJSON parses a serialized profile and registers it.
func (l *Library) LoadJSON(data []byte) (*TubeProfile, error) {
	p, err := FromJSON(data)
	if err != nil {
		return nil, err
	}
	if err := l.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Builtins returns a library preloaded with common imperial square tube
// stock in A36 mild steel, keyed as size_grade.
func Builtins() *Library {
	l := NewLibrary()
	for _, dims := range []struct {
		size, wall float64
	}{
		{1.0, 0.065},
		{1.0, 0.125},
		{1.5, 0.095},
		{1.5, 0.125},
		{2.0, 0.125},
		{2.0, 0.250},
	} {
		p := SquareTube(dims.size, dims.wall)
		p.Name = fmt.Sprintf("%s_%s", p.Name, p.Material.Grade)
		if err := l.Add(p); err != nil {
			panic(fmt.Sprintf("builtin profile %s: %v", p.Name, err))
		}
	}
	return l
}
