package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"multimodal-server/internal/domain/entities"
)

func intPtr(n int) *int { return &n }

func TestUserMetadataValidate(t *testing.T) {
	t.Run("absent fields are never flagged", func(t *testing.T) {
		assert.Empty(t, entities.UserMetadata{}.Validate())
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		meta := entities.UserMetadata{
			Age:        intPtr(0),
			GAD7Result: intPtr(21),
			PHQ9Result: intPtr(27),
		}
		assert.Empty(t, meta.Validate())
	})

	t.Run("every violation is reported", func(t *testing.T) {
		meta := entities.UserMetadata{
			Age:        intPtr(200),
			GAD7Result: intPtr(25),
			PHQ9Result: intPtr(5),
		}
		errs := meta.Validate()
		assert.Len(t, errs, 2)
		assert.Contains(t, errs[0], "age")
		assert.Contains(t, errs[1], "GAD-7")
	})
}

func TestValidateRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		record := map[string]any{
			"gender": "female",
			"age":    float64(34),
			"note":   "extra keys pass through",
		}
		assert.Empty(t, entities.ValidateRecord(record))
	})

	t.Run("non-numeric value is flagged", func(t *testing.T) {
		record := map[string]any{"age": "thirty"}
		errs := entities.ValidateRecord(record)
		assert.Len(t, errs, 1)
		assert.Contains(t, errs[0], "age")
	})

	t.Run("null values are ignored", func(t *testing.T) {
		record := map[string]any{"age": nil, "gad7_result": nil}
		assert.Empty(t, entities.ValidateRecord(record))
	})

	t.Run("violations accumulate", func(t *testing.T) {
		record := map[string]any{
			"age":         float64(200),
			"gad7_result": float64(-1),
			"phq9_result": float64(30),
		}
		assert.Len(t, entities.ValidateRecord(record), 3)
	})
}
