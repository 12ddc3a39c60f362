// Package catalog holds the static reference database of luxury watch models
// used to ground image analysis.
package catalog

import "strings"

// PriceRange is a market price range in USD.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// WatchModel describes a known watch model and its identifying traits.
type WatchModel struct {
	Brand            string     `json:"brand"`
	Model            string     `json:"model"`
	ReferenceNumbers []string   `json:"referenceNumbers"`
	YearIntroduced   int        `json:"yearIntroduced"`
	PriceRange       PriceRange `json:"priceRange"`
	KeyFeatures      []string   `json:"keyFeatures"`
	Materials        []string   `json:"materials"`
	Movements        []string   `json:"movements"`
}

// Catalog is an immutable, ordered collection of watch models.
type Catalog struct {
	models []WatchModel
}

// New creates a catalog from the given models. The slice is copied so later
// changes by the caller do not leak into the catalog.
func New(models []WatchModel) *Catalog {
	c := &Catalog{models: make([]WatchModel, len(models))}
	copy(c.models, models)
	return c
}

// Models returns a copy of all models in catalog order.
func (c *Catalog) Models() []WatchModel {
	out := make([]WatchModel, len(c.models))
	copy(out, c.models)
	return out
}

// Brands returns the distinct brand names in order of first appearance.
func (c *Catalog) Brands() []string {
	seen := make(map[string]bool)
	var brands []string
	for _, m := range c.models {
		if !seen[m.Brand] {
			seen[m.Brand] = true
			brands = append(brands, m.Brand)
		}
	}
	return brands
}

// ByBrand returns all models of a brand, matched case-insensitively.
func (c *Catalog) ByBrand(brand string) []WatchModel {
	var out []WatchModel
	for _, m := range c.models {
		if strings.EqualFold(m.Brand, brand) {
			out = append(out, m)
		}
	}
	return out
}

// FindByReference returns the first model with a reference number containing
// ref (case-insensitive). Partial references such as "126610" match "126610LN".
func (c *Catalog) FindByReference(ref string) (WatchModel, bool) {
	needle := strings.ToLower(strings.TrimSpace(ref))
	if needle == "" {
		return WatchModel{}, false
	}
	for _, m := range c.models {
		for _, r := range m.ReferenceNumbers {
			if strings.Contains(strings.ToLower(r), needle) {
				return m, true
			}
		}
	}
	return WatchModel{}, false
}
