// Package categorizer assigns feedback text to a fixed set of issue
// categories by keyword hits.
package categorizer

import (
	"math"
	"strings"

	"vanmitra-feedback/internal/types"
)

type Definition struct {
	Name     string
	Keywords []string
}

// Definitions is the category enumeration. Order breaks ties.
var Definitions = []Definition{
	{types.CategoryForestRights, []string{"forest", "tree", "land", "cutting", "deforestation", "rights", "illegal", "timber"}},
	{types.CategoryHealthcare, []string{"health", "hospital", "doctor", "medicine", "clinic", "medical", "treatment", "disease"}},
	{types.CategoryEducation, []string{"school", "education", "teacher", "student", "book", "learning", "children", "study"}},
	{types.CategoryWaterSupply, []string{"water", "well", "drinking", "clean", "supply", "pipeline", "shortage", "scarcity"}},
	{types.CategoryEmployment, []string{"job", "work", "employment", "income", "livelihood", "wages", "unemployment"}},
	{types.CategoryInfrastructure, []string{"road", "electricity", "transport", "bridge", "building", "connectivity"}},
	{types.CategoryCulturalPreservation, []string{"culture", "tradition", "heritage", "festival", "language", "customs"}},
}

const generalConfidence = 0.5

// Categorize weighs every category by how many of its keywords occur in text.
// Matching is plain substring containment, so "well" also hits "wells".
func Categorize(text string) types.Category {
	lower := strings.ToLower(text)
	weights := make(map[string]int, len(Definitions))
	nonZero := make([]string, 0, len(Definitions))

	primary, best := "", 0
	for _, def := range Definitions {
		w := 0
		for _, kw := range def.Keywords {
			if strings.Contains(lower, kw) {
				w++
			}
		}
		weights[def.Name] = w
		if w > 0 {
			nonZero = append(nonZero, def.Name)
		}
		if w > best {
			primary, best = def.Name, w
		}
	}

	if best == 0 {
		return types.Category{
			Primary:    types.CategoryGeneralCommunityIssue,
			AllNonZero: nonZero,
			Weights:    weights,
			Confidence: generalConfidence,
		}
	}
	return types.Category{
		Primary:    primary,
		AllNonZero: nonZero,
		Weights:    weights,
		Confidence: math.Min(float64(best)/3, 1),
	}
}
