package ranking

import (
	"sort"

	"github.com/jonathan/resume-screener/internal/types"
)

// RankedDocument is a scored document with its 1-based position.
type RankedDocument struct {
	Rank     int            `json:"rank"`
	Document types.Document `json:"document"`
}

// RankDocuments returns the completed, scored documents ordered by overall
// score descending. Ties keep their original upload order.
func RankDocuments(docs []types.Document) []RankedDocument {
	scored := make([]types.Document, 0, len(docs))
	for _, d := range docs {
		if d.Status == types.StatusCompleted && d.Score != nil {
			scored = append(scored, d)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score.OverallScore > scored[j].Score.OverallScore
	})

	ranked := make([]RankedDocument, len(scored))
	for i, d := range scored {
		ranked[i] = RankedDocument{Rank: i + 1, Document: d}
	}
	return ranked
}
