// Package model implements the immutable building description: the
// substances, materials, constructions, surfaces, fenestrations, spaces,
// buildings, HVACs, luminaires, and output requests that make up a Model.
// Entities are constructed once and never mutated thereafter, except for
// the write-once state.Cell slot fields physics modules assign during their
// own construction.
package model

import (
	"fmt"
	"sort"

	"github.com/germolinal/simple-sub002/pkg/weather"
)

// Model is the immutable building description. Collections are keyed by
// unique name; cross-references between entities are resolved to direct
// pointers once at load time, the way cyclic references are resolved once
// at module construction into indices.
type Model struct {
	Substances    map[string]*Substance
	Materials     map[string]*Material
	Constructions map[string]*Construction
	Surfaces      map[string]*Surface
	Fenestrations map[string]*Fenestration
	Spaces        map[string]*Space
	Buildings     map[string]*Building
	HVACs         map[string]*HVAC
	Luminaires    map[string]*Luminaire
	Objects       map[string]*Object

	Meta  MetaOptions
	Solar SolarOptions
	Site  weather.SiteDetails
	Outputs []OutputRequest
}

// New returns an empty Model ready to be populated by a format-specific
// loader (the core treats parsing as an external collaborator).
func New() *Model {
	return &Model{
		Substances:    map[string]*Substance{},
		Materials:     map[string]*Material{},
		Constructions: map[string]*Construction{},
		Surfaces:      map[string]*Surface{},
		Fenestrations: map[string]*Fenestration{},
		Spaces:        map[string]*Space{},
		Buildings:     map[string]*Building{},
		HVACs:         map[string]*HVAC{},
		Luminaires:    map[string]*Luminaire{},
		Objects:       map[string]*Object{},
		Solar:         DefaultSolarOptions(),
		Site:          weather.DefaultSiteDetails(),
	}
}

// Validate checks the cross-cutting invariants a loader cannot express on
// its own: every boundary referencing a space must resolve, every HVAC and
// Luminaire target must resolve, and every space must have a positive
// volume. These are user-input and construction-time consistency errors,
// surfaced before any physics module runs.
func (m *Model) Validate() error {
	for name, sp := range m.Spaces {
		if sp.Volume <= 0 {
			return fmt.Errorf("model: space %q has non-positive volume", name)
		}
	}
	for name, s := range m.Surfaces {
		if s.Construction == nil {
			return fmt.Errorf("model: surface %q has no construction", name)
		}
		if s.Construction.NLayers() == 0 {
			return fmt.Errorf("model: surface %q construction %q has zero layers", name, s.Construction.Name)
		}
		if err := m.checkBoundary(name, s.Front); err != nil {
			return err
		}
		if err := m.checkBoundary(name, s.Back); err != nil {
			return err
		}
	}
	for name, f := range m.Fenestrations {
		if f.Construction == nil || f.Construction.NLayers() == 0 {
			return fmt.Errorf("model: fenestration %q has no construction layers", name)
		}
		if err := m.checkBoundary(name, f.Front); err != nil {
			return err
		}
		if err := m.checkBoundary(name, f.Back); err != nil {
			return err
		}
	}
	for name, h := range m.HVACs {
		if h.Target == nil {
			return fmt.Errorf("model: HVAC %q has no target space", name)
		}
	}
	for name, l := range m.Luminaires {
		if l.Target == nil {
			return fmt.Errorf("model: luminaire %q has no target space", name)
		}
	}
	for name, o := range m.Objects {
		if o.Target == nil {
			return fmt.Errorf("model: object %q has no target space", name)
		}
	}
	return nil
}

func (m *Model) checkBoundary(entity string, b Boundary) error {
	if b.Kind == BoundarySpace {
		if _, ok := m.Spaces[b.SpaceName]; !ok {
			return fmt.Errorf("model: %q references undefined space %q", entity, b.SpaceName)
		}
	}
	return nil
}

// SortedSpaceNames returns Space names in a fixed, deterministic order.
// Map iteration in Go is randomized; state-element registration order must
// be stable across runs of the same model so slot indices (and therefore
// march outputs) are reproducible: identical inputs must yield identical
// outputs.
func (m *Model) SortedSpaceNames() []string { return sortedKeysSpace(m.Spaces) }

// SortedSurfaceNames returns Surface names in a fixed, deterministic order.
func (m *Model) SortedSurfaceNames() []string { return sortedKeysSurface(m.Surfaces) }

// SortedFenestrationNames returns Fenestration names in a fixed order.
func (m *Model) SortedFenestrationNames() []string { return sortedKeysFenestration(m.Fenestrations) }

// SortedHVACNames returns HVAC names in a fixed order.
func (m *Model) SortedHVACNames() []string { return sortedKeysHVAC(m.HVACs) }

// SortedLuminaireNames returns Luminaire names in a fixed order.
func (m *Model) SortedLuminaireNames() []string { return sortedKeysLuminaire(m.Luminaires) }

func sortedKeysSpace(mp map[string]*Space) []string {
	out := make([]string, 0, len(mp))
	for k := range mp {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeysSurface(mp map[string]*Surface) []string {
	out := make([]string, 0, len(mp))
	for k := range mp {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeysFenestration(mp map[string]*Fenestration) []string {
	out := make([]string, 0, len(mp))
	for k := range mp {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeysHVAC(mp map[string]*HVAC) []string {
	out := make([]string, 0, len(mp))
	for k := range mp {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeysLuminaire(mp map[string]*Luminaire) []string {
	out := make([]string, 0, len(mp))
	for k := range mp {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// AllSurfaceLike returns every Surface and Fenestration's embedded Surface,
// in a stable order, for modules that treat both uniformly (the thermal and
// optical engines march both the same way).
func (m *Model) AllSurfaceLike() []*Surface {
	out := make([]*Surface, 0, len(m.Surfaces)+len(m.Fenestrations))
	for _, name := range m.SortedSurfaceNames() {
		out = append(out, m.Surfaces[name])
	}
	for _, name := range m.SortedFenestrationNames() {
		out = append(out, &m.Fenestrations[name].Surface)
	}
	return out
}
