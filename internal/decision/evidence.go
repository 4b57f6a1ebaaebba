package decision

import (
	"fmt"

	"RiskDesk/internal/domain/models"
)

// EvidenceExplainer classifies each dimension as supporting, opposing or
// missing relative to the decision direction, for the audit trail.
type EvidenceExplainer struct{}

func NewEvidenceExplainer() *EvidenceExplainer { return &EvidenceExplainer{} }

// Explain walks the seven real dimensions in order.
func (e *EvidenceExplainer) Explain(a *models.AssetAnalysis) []models.EvidenceItem {
	items := make([]models.EvidenceItem, 0, len(models.RealDimensions))
	for _, dim := range models.RealDimensions {
		items = append(items, e.classify(dim, a.Input(dim), a.Direction))
	}
	return items
}

func (e *EvidenceExplainer) classify(dim models.Dimension, in *models.DimensionInput, dir models.Direction) models.EvidenceItem {
	if in == nil || in.Score == nil {
		return models.EvidenceItem{
			Dimension: dim,
			Stance:    models.StanceMissing,
			Note:      "no evidence supplied this cycle",
		}
	}

	item := models.EvidenceItem{
		Dimension: dim,
		Score:     in.Score,
		Direction: in.Direction,
	}

	switch {
	case in.Direction == dir && dir != models.DirectionNeutral:
		item.Stance = models.StanceSupporting
		item.Note = fmt.Sprintf("%s agrees with %s view", dim, dir)
	case conflicts(in, dir):
		item.Stance = models.StanceOpposing
		item.Note = fmt.Sprintf("%s points %s against %s view", dim, in.Direction, dir)
	case *in.Score >= 50:
		// Neutral or non-directional evidence leans by score.
		item.Stance = models.StanceSupporting
		item.Note = fmt.Sprintf("%s score %.0f supports", dim, *in.Score)
	default:
		item.Stance = models.StanceOpposing
		item.Note = fmt.Sprintf("%s score %.0f weighs against", dim, *in.Score)
	}
	return item
}
