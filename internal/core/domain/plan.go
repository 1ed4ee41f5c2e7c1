package domain

// ClassificationMatch is the classifier's result for one slide.
type ClassificationMatch struct {
	// Classification is the assigned label.
	Classification Classification

	// SemanticGroup is the group named by a [GROUP: name] marker, if any.
	SemanticGroup string

	// Rule names the rule that matched ("position", "section_phrase",
	// "chart_type", "diagram_type", a keyword rule, or "default").
	Rule string
}

// VariantSource records where a selected variant came from.
type VariantSource string

// Variant sources, in fallback order.
const (
	VariantFromPreset  VariantSource = "preset"
	VariantFromCatalog VariantSource = "catalog"
	VariantFromDefault VariantSource = "default"
	VariantFromFirst   VariantSource = "catalog_first"
	VariantFromStatic  VariantSource = "static"
	VariantNotNeeded   VariantSource = "none"
)

// SlideDecision records what preparation decided for one slide.
type SlideDecision struct {
	Position       int            `json:"slide_number"`
	SlideID        string         `json:"slide_id"`
	Layout         Layout         `json:"layout"`
	Classification Classification `json:"classification"`
	Dispatch       DispatchKind   `json:"dispatch"`
	Rule           string         `json:"rule"`
	SemanticGroup  string         `json:"semantic_group,omitempty"`
	VariantID      string         `json:"variant_id,omitempty"`
	VariantSource  VariantSource  `json:"variant_source"`

	// Overridden is true when the diversity tracker replaced the
	// classifier's label. Original holds the replaced label.
	Overridden     bool           `json:"overridden"`
	Original       Classification `json:"original_classification,omitempty"`
	OverrideReason string         `json:"override_reason,omitempty"`

	// AvoidedVariant is the repeated variant swapped out for another one of
	// the same classification.
	AvoidedVariant string `json:"avoided_variant,omitempty"`

	// Truncated lists the text fields shortened to their limits.
	Truncated []string `json:"truncated,omitempty"`
}

// PreparationReport summarises a preparation pass over a strawman.
type PreparationReport struct {
	// Decisions holds one entry per slide in presentation order.
	Decisions []SlideDecision `json:"decisions"`

	// CatalogSource is "remote", "cache" or "none".
	CatalogSource string `json:"catalog_source"`

	// Diversity holds metrics for the prepared deck.
	Diversity DiversityMetrics `json:"diversity"`
}

// Overrides returns the number of diversity overrides applied.
func (r *PreparationReport) Overrides() int {
	n := 0
	for _, d := range r.Decisions {
		if d.Overridden {
			n++
		}
	}
	return n
}
