// Package catalog holds the loaded content areas and the loader that fills them.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/louisbranch/gwtrack/internal/services/tracker/content"
)

// ErrDuplicateArea is returned when an area name is registered twice for a kind.
var ErrDuplicateArea = errors.New("duplicate area")

// Registry owns every loaded area, partitioned by kind and keyed by name.
// It is filled once at load time and only read afterwards.
type Registry struct {
	areas map[content.Kind]map[string]content.Area
}

// Group is one navigation bucket with its area names sorted ascending.
type Group struct {
	Title string
	Areas []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{areas: make(map[content.Kind]map[string]content.Area)}
}

// Register adds area under its kind.
func (r *Registry) Register(area content.Area) error {
	if area == nil {
		return errors.New("area is required")
	}
	kind := area.Kind()
	byName, ok := r.areas[kind]
	if !ok {
		byName = make(map[string]content.Area)
		r.areas[kind] = byName
	}
	name := area.AreaName()
	if _, exists := byName[name]; exists {
		return fmt.Errorf("%w: %s %q", ErrDuplicateArea, strings.ToLower(kind.String()), name)
	}
	byName[name] = area
	return nil
}

// Lookup returns the area registered under kind and name.
func (r *Registry) Lookup(kind content.Kind, name string) (content.Area, bool) {
	area, ok := r.areas[kind][name]
	return area, ok
}

// Count returns the number of areas registered for kind.
func (r *Registry) Count(kind content.Kind) int {
	return len(r.areas[kind])
}

// Kinds returns the kinds that have at least one area, in load order.
func (r *Registry) Kinds() []content.Kind {
	var kinds []content.Kind
	for _, kind := range content.Kinds {
		if r.Count(kind) > 0 {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// Groupings buckets the areas of kind for navigation. Quest areas are grouped
// by campaign; every other kind has a single fixed bucket.
func (r *Registry) Groupings(kind content.Kind) []Group {
	buckets := make(map[string][]string)
	for name, area := range r.areas[kind] {
		title := area.Grouping()
		buckets[title] = append(buckets[title], name)
	}

	groups := make([]Group, 0, len(buckets))
	for title, names := range buckets {
		sort.Strings(names)
		groups = append(groups, Group{Title: title, Areas: names})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Title < groups[j].Title
	})
	return groups
}

// Suggest returns up to limit registered area names close to name, nearest
// first.
func (r *Registry) Suggest(kind content.Kind, name string, limit int) []string {
	names := make([]string, 0, len(r.areas[kind]))
	for areaName := range r.areas[kind] {
		names = append(names, areaName)
	}
	return Closest(name, names, limit)
}

// Closest returns up to limit of names within edit distance of query, nearest
// first and then alphabetically. Matching ignores case; a name containing the
// query always qualifies.
func Closest(query string, names []string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}

	type candidate struct {
		name string
		dist int
	}
	maxDist := levenshteinLimit(len(query))
	var cands []candidate
	for _, name := range names {
		lower := strings.ToLower(name)
		dist := levenshtein.ComputeDistance(query, lower)
		if strings.Contains(lower, query) {
			dist = min(dist, maxDist)
		}
		if dist > maxDist {
			continue
		}
		cands = append(cands, candidate{name: name, dist: dist})
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].name < cands[j].name
		}
		return cands[i].dist < cands[j].dist
	})
	if len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.name
	}
	return out
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
