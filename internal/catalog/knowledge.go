package catalog

import (
	"fmt"
	"strings"
)

// maxRefsPerModel bounds how many reference numbers are listed per model to
// keep the prompt compact.
const maxRefsPerModel = 3

const recentReleases = `NEW 2025 RELEASES - THESE ARE REAL WATCHES:
- ROLEX LAND-DWELLER (2025): Brand new Rolex model officially released in 2025. Features: integrated bracelet design, 36mm and 40mm case sizes, Cal. 7135 movement with 5 Hz high frequency, fluid case lines, modern elegance, Chromalight display.
  40mm References: 127334 (Oystersteel/white gold), 127335 (Everose gold), 127385TBR (Everose gold/diamonds), 127386TBR (Platinum/diamonds), 127336 (Platinum).
  36mm References: 127234 (Oystersteel/white gold), 127235 (Everose gold), 127285TBR (Everose gold/diamonds), 127286TBR (Platinum/diamonds), 127236 (Platinum).
  Price range: €14,800-€93,150. THIS IS A LEGITIMATE ROLEX MODEL - NOT FAKE.`

const identificationFeatures = `Key identification features:
- Rolex: Oyster case, Mercedes hands, Cyclops date magnifier, ceramic bezels (modern), crown logo at 12
- Rolex Land-Dweller (2025): Integrated bracelet, fluid case lines, modern elegance, no cyclops, 5 Hz movement
- Patek Philippe: Calatrava cross logo, intricate finishing, porthole design (Nautilus), tropical strap (Aquanaut)
- Audemars Piguet: Octagonal bezel, tapisserie dial, integrated bracelet, exposed screws
- Omega: Hippocampus logo, wave dial patterns (Seamaster), Moonwatch history (Speedmaster)
- Cartier: Blue cabochon crown, Roman numerals, railroad track minutes, Art Deco design
- IWC: Large conical crown, railway track dial (Portugieser), pilot design language
- Panerai: Crown guard, sandwich dial, large cushion case, California dial
- Grand Seiko: Zaratsu polishing, perfect dial finishing, Spring Drive smooth sweep`

const marketTrends = `Current market trends (2024-2025):
- Rolex Land-Dweller (NEW 2025): €14,800-€93,150 (40mm refs: 127334, 127335, 127385TBR, 127386TBR, 127336) (36mm refs: 127234, 127235, 127285TBR, 127286TBR, 127236)
- Rolex Submariner 126610LN: $12,000-$15,000
- Patek Nautilus 5711/1A (discontinued): $80,000-$150,000
- AP Royal Oak 15500ST: $45,000-$75,000
- Omega Speedmaster Professional: $6,000-$8,000`

// KnowledgeBase renders the catalog as a text block for the analysis prompt.
// The output depends only on the catalog contents.
func (c *Catalog) KnowledgeBase() string {
	var brandLines []string
	for _, brand := range c.Brands() {
		var models []string
		for _, m := range c.models {
			if m.Brand != brand {
				continue
			}
			models = append(models, fmt.Sprintf("%s (%s)", m.Model, refsText(m.ReferenceNumbers)))
		}
		brandLines = append(brandLines, fmt.Sprintf("%s: %s", brand, strings.Join(models, ", ")))
	}

	var b strings.Builder
	b.WriteString("LUXURY WATCH DATABASE (2025 Updated):\n\n")
	b.WriteString(strings.Join(brandLines, "\n\n"))
	b.WriteString("\n\n")
	b.WriteString(recentReleases)
	b.WriteString("\n\n")
	b.WriteString(identificationFeatures)
	b.WriteString("\n\n")
	b.WriteString(marketTrends)
	b.WriteString("\n")
	return b.String()
}

func refsText(refs []string) string {
	if len(refs) > maxRefsPerModel {
		refs = refs[:maxRefsPerModel]
	}
	var picked []string
	for _, r := range refs {
		if r != "" {
			picked = append(picked, r)
		}
	}
	if len(picked) == 0 {
		return "refs: n/a"
	}
	return strings.Join(picked, ", ")
}
