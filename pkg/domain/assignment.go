package domain

// Assignment is a conditional place-attribute update: when Condition holds, Value is applied.
type Assignment struct {
	Condition string `json:"condition" yaml:"condition"`
	Value     string `json:"value" yaml:"value"`
}

// Empty reports whether both sides are blank.
func (a Assignment) Empty() bool {
	return a.Condition == "" && a.Value == ""
}

// Expression is a parsed `place.attribute operator value` string.
type Expression struct {
	Place     string `json:"place"`
	Attribute string `json:"attribute"`
	Operator  string `json:"operator"`
	Value     string `json:"value"`
}
