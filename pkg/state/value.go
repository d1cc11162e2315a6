package state

import "fmt"

// State is the value-phase flat vector. The driver owns it and lends it
// mutably to exactly one module at a time during march; modules read slots
// they do not own and write only the slots registered to them.
type State struct {
	values []float64
	names  []Element
}

// Len returns the number of slots.
func (s *State) Len() int { return len(s.values) }

// Get reads a slot's current value.
func (s *State) Get(slot int) float64 { return s.values[slot] }

// Set writes a slot's value.
func (s *State) Set(slot int, v float64) { s.values[slot] = v }

// Element returns the metadata registered for a slot.
func (s *State) Element(slot int) Element { return s.names[slot] }

// Name returns the descriptive name of a slot, for error messages and CSV
// headers.
func (s *State) Name(slot int) string { return s.names[slot].Name() }

// FindSlot resolves a (kind, field, entityName, nodeIndex) tuple to a slot
// index, used by output-request resolution at construction time. nodeIndex
// of -1 matches elements with no node index.
func (s *State) FindSlot(kind EntityKind, field Field, entityName string, nodeIndex int) (int, error) {
	for i, e := range s.names {
		if e.Kind == kind && e.Field == field && e.EntityName == entityName && e.NodeIndex == nodeIndex {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no state element %s.%s[%s] (node %d) is registered", kind, field, entityName, nodeIndex)
}

// AllFinite reports whether every value in the vector is finite, counting a
// magnitude above maxFinite (1e300) as non-finite, and if not returns the
// first offending slot.
func (s *State) AllFinite() (ok bool, badSlot int) {
	for i, v := range s.values {
		if v != v || v > maxFinite || v < -maxFinite {
			return false, i
		}
	}
	return true, -1
}

const maxFinite = 1.0e300
