package validation

import (
	"math"

	"github.com/hrkey/refcore/internal/domain/model"
)

// scoreConsistency compares a submission against the owner's prior validated
// references. With no priors the neutral baseline applies. Embedding cosine
// similarity is preferred; when either side lacks an embedding the comparison
// falls back to rating-variance across overlapping KPIs.
func scoreConsistency(sub *model.ReferenceSubmission, embedding []float64, previous []*model.ValidatedReference, threshold float64) (float64, []model.Flag) {
	if len(previous) == 0 {
		return neutralConsistency, nil
	}

	var score float64
	var method string
	if sim, ok := embeddingConsistency(embedding, previous); ok {
		score, method = sim, "embedding_similarity"
	} else {
		score, method = ratingConsistency(sub, previous), "rating_variance"
	}
	score = clamp01(score)

	var flags []model.Flag
	if score < threshold {
		flags = append(flags, model.Flag{
			Type:     "inconsistent_with_history",
			Severity: model.SeverityWarning,
			Message:  "submission diverges from the owner's prior references",
			Details:  map[string]any{"consistency_score": score, "method": method},
		})
	}
	return score, flags
}

// embeddingConsistency returns the mean cosine similarity against prior
// records that carry embeddings. ok is false when no comparison is possible.
func embeddingConsistency(embedding []float64, previous []*model.ValidatedReference) (float64, bool) {
	if len(embedding) == 0 {
		return 0, false
	}
	sum, n := 0.0, 0
	for _, prev := range previous {
		if prev == nil || len(prev.EmbeddingVector) != len(embedding) {
			continue
		}
		sum += cosineSimilarity(embedding, prev.EmbeddingVector)
		n++
	}
	if n == 0 {
		return 0, false
	}
	// Hashing embeddings are non-negative, so cosine already lands in [0,1].
	return sum / float64(n), true
}

// ratingConsistency measures how far this submission's ratings sit from the
// owner's historical mean per overlapping KPI. No overlap reads as neutral.
func ratingConsistency(sub *model.ReferenceSubmission, previous []*model.ValidatedReference) float64 {
	sumDiff, n := 0.0, 0
	for kpi, rating := range sub.KPIRatings {
		histSum, histN := 0.0, 0
		for _, prev := range previous {
			if prev == nil {
				continue
			}
			if d, ok := prev.StructuredDimensions[kpi]; ok {
				histSum += d.Rating
				histN++
			}
		}
		if histN == 0 {
			continue
		}
		sumDiff += math.Abs(rating-histSum/float64(histN)) / model.RatingMax
		n++
	}
	if n == 0 {
		return neutralConsistency
	}
	return 1 - sumDiff/float64(n)
}

func cosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
