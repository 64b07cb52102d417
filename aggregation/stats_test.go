package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voz-urbana/api-go/models"
)

func bucketValue(buckets []Bucket, name string) int {
	for _, b := range buckets {
		if b.Name == name {
			return b.Value
		}
	}
	return -1
}

func TestCountByStatus(t *testing.T) {
	t.Run("empty input still yields full vocabulary at zero", func(t *testing.T) {
		buckets := CountByStatus(nil)

		assert.Len(t, buckets, len(StatusVocabulary))
		for _, b := range buckets {
			assert.Equal(t, 0, b.Value)
		}
	})

	t.Run("counts each status", func(t *testing.T) {
		reports := []models.Report{
			{Status: models.StatusPendiente},
			{Status: models.StatusPendiente},
			{Status: models.StatusEnProgreso},
			{Status: models.StatusResuelto},
		}

		buckets := CountByStatus(reports)

		assert.Equal(t, 2, bucketValue(buckets, models.StatusPendiente))
		assert.Equal(t, 1, bucketValue(buckets, models.StatusEnProgreso))
		assert.Equal(t, 1, bucketValue(buckets, models.StatusResuelto))
	})

	t.Run("empty status counts as Pendiente", func(t *testing.T) {
		buckets := CountByStatus([]models.Report{{Status: ""}})
		assert.Equal(t, 1, bucketValue(buckets, models.StatusPendiente))
	})
}

func TestCountByCategory(t *testing.T) {
	t.Run("full vocabulary with zeros", func(t *testing.T) {
		buckets := CountByCategory(nil)
		assert.Len(t, buckets, len(CategoryVocabulary))
	})

	t.Run("out-of-vocabulary categories are not charted", func(t *testing.T) {
		reports := []models.Report{
			{Category: models.CategoryBache},
			{Category: "categoria_inventada"},
		}

		buckets := CountByCategory(reports)

		assert.Equal(t, 1, bucketValue(buckets, models.CategoryBache))
		assert.Equal(t, -1, bucketValue(buckets, "categoria_inventada"))
	})
}
