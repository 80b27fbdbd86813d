package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned by Lookup for a name that was never registered
var ErrUnknownScene = errors.New("scene: unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	World       *geometry.HittableList
	Camera      renderer.CameraConfig // Defaults; callers may override any field
}

// Builder creates a fresh scene. Every call returns an independent world.
type Builder func() *Scene

// Info describes a registered scene
type Info struct {
	Name        string // Registry key
	DisplayName string // Human readable name
	Description string
}

type entry struct {
	description string
	build       Builder
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]entry)
)

func init() {
	Register("default", "Ground, diffuse, hollow glass and fuzzy metal spheres", NewDefaultScene)
	Register("sky", "Empty world showing only the sky gradient", NewSkyScene)
	Register("spheregrid", "Random grid of small spheres around three large ones", NewSphereGridScene)
}

// Register adds a scene builder under name, replacing any previous one
func Register(name, description string, build Builder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = entry{description: description, build: build}
}

// Lookup builds the scene registered under name
func Lookup(name string) (*Scene, error) {
	registryMu.RLock()
	e, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	s := e.build()
	s.Name = name
	if s.Description == "" {
		s.Description = e.description
	}
	return s, nil
}

// List returns the registered scenes sorted by name
func List() []Info {
	registryMu.RLock()
	defer registryMu.RUnlock()

	infos := make([]Info, 0, len(registry))
	for name, e := range registry {
		infos = append(infos, Info{
			Name:        name,
			DisplayName: titleCase(name),
			Description: e.description,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// titleCase converts a registry key to title case
// e.g., "sphere-grid" -> "Sphere Grid"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
