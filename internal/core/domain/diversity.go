package domain

// Default diversity thresholds.
const (
	DefaultMaxVariantRun        = 2
	DefaultMaxClassificationRun = 3
)

// DiversityEntry is one finalised slide in the diversity history.
type DiversityEntry struct {
	Classification Classification
	VariantID      string
	SemanticGroup  string
	Position       int
}

// DiversityDecision is the tracker's verdict for a candidate slide.
type DiversityDecision struct {
	// Override is true when the candidate would extend a run past its threshold.
	Override bool

	// Suggested is the replacement classification when Override is true.
	// It equals the candidate's classification when only the variant run
	// tripped.
	Suggested Classification

	// AvoidVariant is set when only the variant run tripped: the slide keeps
	// its classification and should take a different variant.
	AvoidVariant string

	// Reason explains which threshold triggered the override.
	Reason string
}

// DiversityMetrics summarises the variety of a finalised deck.
type DiversityMetrics struct {
	TotalSlides                int                    `json:"total_slides"`
	UniqueClassifications      int                    `json:"unique_classifications"`
	UniqueVariants             int                    `json:"unique_variants"`
	UniquePairs                int                    `json:"unique_pairs"`
	Score                      float64                `json:"diversity_score"`
	ClassificationDistribution map[Classification]int `json:"classification_distribution"`
	VariantDistribution        map[string]int         `json:"variant_distribution"`
	SemanticGroups             []string               `json:"semantic_groups_seen"`
}
