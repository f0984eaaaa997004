// Package registry keeps the set of currently alive units per category.
package registry

import (
	"errors"
	"fmt"
)

// ErrInvariant marks a broken born/died pairing. It aborts the analysis of
// the current replay.
var ErrInvariant = errors.New("unit registry invariant violated")

// Invariant violations.
var (
	ErrDuplicateUnit = fmt.Errorf("%w: unit already registered", ErrInvariant)
	ErrUnknownUnit   = fmt.Errorf("%w: unit not registered", ErrInvariant)
)

// unhandled lists structure categories whose born/died events do not pair up
// reliably. Add and Remove ignore them.
var unhandled = map[string]struct{}{
	"Hatchery":             {},
	"Lair":                 {},
	"Hive":                 {},
	"Extractor":            {},
	"ExtractorRich":        {},
	"BanelingNest":         {},
	"SporeCrawler":         {},
	"SpineCrawler":         {},
	"SpineCrawlerUprooted": {},
	"SporeCrawlerUprooted": {},
	"SpawningPool":         {},
	"CreepTumor":           {},
	"CreepTumorBurrowed":   {},
	"CreepTumorQueen":      {},
	"UltraliskCavern":      {},
	"NydusWorm":            {},
	"NydusNetwork":         {},
	"NydusCanal":           {},
	"EvolutionChamber":     {},
	"RoachWarren":          {},
	"Spire":                {},
	"GreaterSpire":         {},
	"LurkerDen":            {},
	"LurkerDenMP":          {},
	"HydraliskDen":         {},
	"InfestationPit":       {},
}

// IsUnhandled reports whether category is excluded from bookkeeping.
func IsUnhandled(category string) bool {
	_, ok := unhandled[category]

	return ok
}

// Registry maps a category label to the ids of its alive units.
// A unit id is in at most one category at a time. Not safe for concurrent use.
type Registry struct {
	units map[string]map[int64]struct{}
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{units: make(map[string]map[int64]struct{})}
}

// Add registers id under category.
func (r *Registry) Add(id int64, category string) error {
	if IsUnhandled(category) {
		return nil
	}

	set, ok := r.units[category]
	if !ok {
		set = make(map[int64]struct{})
		r.units[category] = set
	}

	if _, dup := set[id]; dup {
		return fmt.Errorf("%w: %s #%d", ErrDuplicateUnit, category, id)
	}

	set[id] = struct{}{}

	return nil
}

// Remove unregisters id from category.
func (r *Registry) Remove(id int64, category string) error {
	if IsUnhandled(category) {
		return nil
	}

	set := r.units[category]
	if _, ok := set[id]; !ok {
		return fmt.Errorf("%w: %s #%d", ErrUnknownUnit, category, id)
	}

	delete(set, id)

	return nil
}

// Move relabels id from one category to another.
func (r *Registry) Move(id int64, from, to string) error {
	err := r.Remove(id, from)
	if err != nil {
		return err
	}

	return r.Add(id, to)
}

// Count returns the number of alive units in category.
func (r *Registry) Count(category string) int {
	return len(r.units[category])
}

// Contains reports whether id is registered under category.
func (r *Registry) Contains(id int64, category string) bool {
	_, ok := r.units[category][id]

	return ok
}
