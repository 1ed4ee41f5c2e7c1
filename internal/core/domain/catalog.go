package domain

import "time"

// CatalogSnapshot is a point-in-time copy of the remote variant catalog:
// catalog slide-type keys mapped to ordered variant ids.
type CatalogSnapshot struct {
	// Version is the catalog version reported by the service, if any.
	Version string `json:"version,omitempty"`

	// SlideTypes maps catalog slide-type keys to ordered variant ids.
	SlideTypes map[string][]string `json:"slide_types"`

	// FetchedAt is when the snapshot was fetched from the service.
	FetchedAt time.Time `json:"fetched_at"`
}

// TotalVariants returns the number of variants across all slide types.
func (s *CatalogSnapshot) TotalVariants() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, v := range s.SlideTypes {
		n += len(v)
	}
	return n
}

// IsEmpty returns true if the snapshot carries no variants.
func (s *CatalogSnapshot) IsEmpty() bool {
	return s.TotalVariants() == 0
}
