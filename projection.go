package recipes

// Projection is a plain, serializable summary of a Recipe: no functions, no
// pattern objects. It is the only form safe to hand to an untrusted or
// remote consumer.
type Projection struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon,omitempty"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`

	Examples []Example `json:"examples,omitempty"`

	// URLPattern is the ownership pattern's source text. Empty when the
	// recipe uses a predicate, since predicates are not serializable.
	URLPattern string `json:"urlPattern,omitempty"`

	Fields []FieldProjection `json:"fields"`
	Alerts []AlertTemplate   `json:"alerts,omitempty"`
}

// FieldProjection is the serializable view of one schema field.
type FieldProjection struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Type    ValueType `json:"type"`
	Primary bool      `json:"primary,omitempty"`
}

// Project converts a Recipe into its side-effect-free summary.
func Project(r *Recipe) Projection {
	p := Projection{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Icon:        r.Icon,
		Category:    string(r.Category),
		Tags:        append([]string(nil), r.Tags...),
		Examples:    append([]Example(nil), r.Examples...),
		Alerts:      append([]AlertTemplate(nil), r.Alerts...),
	}

	if source, ok := r.Ownership.Source(); ok {
		p.URLPattern = source
	}

	p.Fields = make([]FieldProjection, 0, len(r.Fields))
	for _, f := range r.Fields {
		p.Fields = append(p.Fields, FieldProjection{
			Key:     f.Key,
			Label:   f.Label,
			Type:    f.Type,
			Primary: f.Primary,
		})
	}

	return p
}
