package service

import (
	"encoding/json"
	"time"

	"github.com/linkward/linkward/internal/models"
)

// Validation is the verdict on the date fields of one payload. When invalid,
// ErrorFields names the offending fields in the order they were checked.
type Validation struct {
	Valid       bool
	ErrorFields []string
}

// dateLayouts are the string forms accepted for date fields, tried in
// order. All are interpreted in UTC unless the value carries a zone.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ValidateDates checks the optional startdate/enddate fields of a payload
// for well-formedness. A field is invalid when it is present, not the
// removal sentinel, and does not parse as a date. Pure function, no side
// effects.
func ValidateDates(startDate, endDate json.RawMessage) Validation {
	v := Validation{Valid: true}
	if badDate(startDate) {
		v.Valid = false
		v.ErrorFields = append(v.ErrorFields, "start date")
	}
	if badDate(endDate) {
		v.Valid = false
		v.ErrorFields = append(v.ErrorFields, "end date")
	}
	return v
}

func badDate(raw json.RawMessage) bool {
	if !models.Present(raw) || models.IsFalse(raw) {
		return false
	}
	_, ok := ParseDate(raw)
	return !ok
}

// ParseDate interprets a raw date field as epoch milliseconds. Numbers are
// taken as milliseconds directly; strings are parsed against the accepted
// layouts. The removal sentinel and the boolean true never parse.
func ParseDate(raw json.RawMessage) (int64, bool) {
	if !models.Present(raw) || models.IsFalse(raw) || models.IsTrue(raw) {
		return 0, false
	}
	if n, ok := models.AsNumber(raw); ok {
		return int64(n), true
	}
	s, ok := models.AsString(raw)
	if !ok {
		return 0, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}
