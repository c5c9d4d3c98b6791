package environment

import "time"

// Place is a named location with free-form scalar attributes such as zone or freeSeats.
type Place struct {
	ID         string         `json:"id" yaml:"id" mapstructure:"id" validate:"required"`
	Name       string         `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:"attributes"`
}

// Attribute returns the named attribute, if present.
func (p Place) Attribute(key string) (any, bool) {
	v, ok := p.Attributes[key]
	return v, ok
}

// Edge connects two places by id.
type Edge struct {
	From string `json:"from" yaml:"from" mapstructure:"from"`
	To   string `json:"to" yaml:"to" mapstructure:"to"`
}

// Condition is one attribute test of a logical place.
type Condition struct {
	Attribute string `json:"attribute" yaml:"attribute" mapstructure:"attribute"`
	Operator  string `json:"operator" yaml:"operator" mapstructure:"operator"`
	Value     any    `json:"value" yaml:"value" mapstructure:"value"`
}

// LogicalPlace names the set of places satisfying all of its conditions.
type LogicalPlace struct {
	ID         string      `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Name       string      `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Conditions []Condition `json:"conditions" yaml:"conditions" mapstructure:"conditions"`
}

// Data is the decoded content of an environment file.
// Views are kept opaque.
type Data struct {
	Places        []Place        `json:"places" yaml:"places" mapstructure:"places"`
	Edges         []Edge         `json:"edges" yaml:"edges" mapstructure:"edges"`
	LogicalPlaces []LogicalPlace `json:"logicalPlaces" yaml:"logicalPlaces" mapstructure:"logicalPlaces"`
	Views         []any          `json:"views" yaml:"views" mapstructure:"views"`

	// Dropped describes the entries left out because they do not fit their shape.
	Dropped []string `json:"dropped,omitempty" yaml:"-" mapstructure:"-"`
}

// Meta describes where a configuration came from.
type Meta struct {
	FileName string
	Source   string
}

// Config is an installed catalog.
type Config struct {
	Data     Data      `json:"data"`
	FileName string    `json:"fileName,omitempty"`
	LoadedAt time.Time `json:"loadedAt"`
	Source   string    `json:"source"`
}

// LoadResult reports the outcome of a load to collaborators.
type LoadResult struct {
	Success bool    `json:"success"`
	Config  *Config `json:"config,omitempty"`
	Error   string  `json:"error,omitempty"`

	// Err carries the underlying error for errors.Is checks.
	Err error `json:"-"`
}

// Summary is the diagnostic view of the catalog.
type Summary struct {
	Loaded        bool      `json:"loaded"`
	FileName      string    `json:"fileName,omitempty"`
	LoadedAt      time.Time `json:"loadedAt,omitzero"`
	Source        string    `json:"source,omitempty"`
	Places        int       `json:"places"`
	Edges         int       `json:"edges"`
	LogicalPlaces int       `json:"logicalPlaces"`
	Views         int       `json:"views"`
	Zones         []string  `json:"zones"`
	Purposes      []string  `json:"purposes"`
}
