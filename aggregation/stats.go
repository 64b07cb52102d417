package aggregation

import (
	"github.com/voz-urbana/api-go/models"
)

// StatusVocabulary and CategoryVocabulary fix the bucket sets for the
// dashboard. Every bucket appears in the output even at zero, and the two
// distributions are independent (no cross-tabulation).
var StatusVocabulary = []string{
	models.StatusPendiente,
	models.StatusEnProgreso,
	models.StatusResuelto,
}

var CategoryVocabulary = []string{
	models.CategoryBache,
	models.CategoryAlumbrado,
	models.CategoryAgua,
	models.CategoryContaminacion,
	models.CategoryBasura,
	models.CategoryOtro,
}

// Bucket is one bar or pie slice.
type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func countBy(vocabulary []string, reports []models.Report, keyOf func(*models.Report) string) []Bucket {
	counts := make(map[string]int, len(vocabulary))
	for i := range reports {
		counts[keyOf(&reports[i])]++
	}
	buckets := make([]Bucket, len(vocabulary))
	for i, name := range vocabulary {
		buckets[i] = Bucket{Name: name, Value: counts[name]}
	}
	return buckets
}

// CountByStatus groups reports over the fixed status vocabulary. Empty
// statuses count as Pendiente, mirroring the display default.
func CountByStatus(reports []models.Report) []Bucket {
	return countBy(StatusVocabulary, reports, func(r *models.Report) string {
		return r.DisplayStatus()
	})
}

// CountByCategory groups reports over the fixed category vocabulary.
// Out-of-vocabulary categories are not charted.
func CountByCategory(reports []models.Report) []Bucket {
	return countBy(CategoryVocabulary, reports, func(r *models.Report) string {
		return r.Category
	})
}
