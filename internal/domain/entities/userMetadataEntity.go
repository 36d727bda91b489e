package entities

import "fmt"

// Clinical score bounds for the metadata record.
const (
	AgeMin  = 0
	AgeMax  = 150
	GAD7Min = 0
	GAD7Max = 21
	PHQ9Min = 0
	PHQ9Max = 27
)

// UserMetadata is the clinical metadata record for one user. Optional fields
// are pointers so absent values persist as null.
type UserMetadata struct {
	Gender     *string `json:"gender"`
	Age        *int    `json:"age"`
	Occupation *string `json:"occupation"`
	GAD7Result *int    `json:"gad7_result"`
	PHQ9Result *int    `json:"phq9_result"`
}

// Validate range-checks every present field and returns one entry per
// violation. Absent fields are never flagged.
func (m UserMetadata) Validate() []string {
	var errs []string
	if m.Age != nil && (*m.Age < AgeMin || *m.Age > AgeMax) {
		errs = append(errs, fmt.Sprintf("Invalid age (must be between %d-%d)", AgeMin, AgeMax))
	}
	if m.GAD7Result != nil && (*m.GAD7Result < GAD7Min || *m.GAD7Result > GAD7Max) {
		errs = append(errs, fmt.Sprintf("Invalid GAD-7 result (must be between %d-%d)", GAD7Min, GAD7Max))
	}
	if m.PHQ9Result != nil && (*m.PHQ9Result < PHQ9Min || *m.PHQ9Result > PHQ9Max) {
		errs = append(errs, fmt.Sprintf("Invalid PHQ-9 result (must be between %d-%d)", PHQ9Min, PHQ9Max))
	}
	return errs
}

// ValidateRecord runs the same range checks over a decoded JSON document,
// additionally flagging declared-numeric fields that arrived as non-numbers.
// Unknown keys pass through untouched.
func ValidateRecord(record map[string]any) []string {
	var errs []string
	errs = appendRangeError(errs, record, "age", "Invalid age (must be between 0-150)", AgeMin, AgeMax)
	errs = appendRangeError(errs, record, "gad7_result", "Invalid GAD-7 result (must be between 0-21)", GAD7Min, GAD7Max)
	errs = appendRangeError(errs, record, "phq9_result", "Invalid PHQ-9 result (must be between 0-27)", PHQ9Min, PHQ9Max)
	return errs
}

func appendRangeError(errs []string, record map[string]any, key, message string, min, max int) []string {
	raw, ok := record[key]
	if !ok || raw == nil {
		return errs
	}
	value, ok := raw.(float64)
	if !ok || value < float64(min) || value > float64(max) {
		return append(errs, message)
	}
	return errs
}
