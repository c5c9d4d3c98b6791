package environment

import (
	"slices"
	"strings"
)

// DefaultSuggestionLimit bounds Suggest when no positive limit is given.
const DefaultSuggestionLimit = 5

// Places returns a copy of the place list.
func (c *Catalog) Places() []Place {
	return slices.Clone(c.data().Places)
}

// Edges returns a copy of the edge list.
func (c *Catalog) Edges() []Edge {
	return slices.Clone(c.data().Edges)
}

// LogicalPlaces returns a copy of the logical place list.
func (c *Catalog) LogicalPlaces() []LogicalPlace {
	return slices.Clone(c.data().LogicalPlaces)
}

// Views returns a copy of the view list.
func (c *Catalog) Views() []any {
	return slices.Clone(c.data().Views)
}

// FindPlaceByID returns the first place whose id equals id exactly.
func (c *Catalog) FindPlaceByID(id string) (Place, bool) {
	for _, p := range c.data().Places {
		if p.ID == id {
			return p, true
		}
	}
	return Place{}, false
}

// FindPlaceByName returns the first place whose name equals name exactly.
func (c *Catalog) FindPlaceByName(name string) (Place, bool) {
	for _, p := range c.data().Places {
		if p.Name == name {
			return p, true
		}
	}
	return Place{}, false
}

// PlacesByZone returns the places whose zone attribute equals zone.
func (c *Catalog) PlacesByZone(zone string) []Place {
	return c.filter(func(p Place) bool { return stringAttr(p, "zone") == zone && zone != "" })
}

// PlacesByPurpose returns the places whose purpose attribute equals purpose.
func (c *Catalog) PlacesByPurpose(purpose string) []Place {
	return c.filter(func(p Place) bool { return stringAttr(p, "purpose") == purpose && purpose != "" })
}

// AvailableDestinations returns the non-empty place names in catalog order.
func (c *Catalog) AvailableDestinations() []string {
	out := []string{}
	for _, p := range c.data().Places {
		if p.Name != "" {
			out = append(out, p.Name)
		}
	}
	return out
}

// AvailablePlaces returns the places with a positive freeSeats attribute of at least minSeats.
func (c *Catalog) AvailablePlaces(minSeats float64) []Place {
	return c.filter(func(p Place) bool {
		v, ok := p.Attribute("freeSeats")
		if !ok {
			return false
		}
		seats, ok := toFloat(v)
		return ok && seats > 0 && seats >= minSeats
	})
}

// IsValidDestination reports whether name is the name of a place in the catalog.
func (c *Catalog) IsValidDestination(name string) bool {
	if name == "" {
		return false
	}
	_, ok := c.FindPlaceByName(name)
	return ok
}

// Suggest returns up to limit place names containing partial, case-insensitively,
// in catalog order. A non-positive limit means DefaultSuggestionLimit.
func (c *Catalog) Suggest(partial string, limit int) []string {
	out := []string{}
	if partial == "" {
		return out
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	needle := strings.ToLower(partial)
	for _, p := range c.data().Places {
		if len(out) == limit {
			break
		}
		if p.Name != "" && strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p.Name)
		}
	}
	return out
}

// Summary reports counts and the distinct zones and purposes in first-seen order.
func (c *Catalog) Summary() Summary {
	cfg := c.Config()
	if cfg == nil {
		return Summary{Zones: []string{}, Purposes: []string{}}
	}

	d := cfg.Data
	return Summary{
		Loaded:        true,
		FileName:      cfg.FileName,
		LoadedAt:      cfg.LoadedAt,
		Source:        cfg.Source,
		Places:        len(d.Places),
		Edges:         len(d.Edges),
		LogicalPlaces: len(d.LogicalPlaces),
		Views:         len(d.Views),
		Zones:         distinct(d.Places, "zone"),
		Purposes:      distinct(d.Places, "purpose"),
	}
}

func (c *Catalog) filter(keep func(Place) bool) []Place {
	out := []Place{}
	for _, p := range c.data().Places {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func stringAttr(p Place, key string) string {
	v, _ := p.Attribute(key)
	s, _ := v.(string)
	return s
}

func distinct(places []Place, key string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range places {
		v := stringAttr(p, key)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
