package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawFieldHelpers(t *testing.T) {
	assert.False(t, Present(nil))
	assert.False(t, Present(json.RawMessage("null")))
	assert.True(t, Present(json.RawMessage(`"x"`)))
	assert.True(t, Present(json.RawMessage("false")))

	assert.True(t, IsFalse(json.RawMessage("false")))
	assert.False(t, IsFalse(json.RawMessage(`"false"`)))
	assert.True(t, IsTrue(json.RawMessage("true")))

	s, ok := AsString(json.RawMessage(`"hello"`))
	assert.True(t, ok)
	assert.Equal(t, "hello", s)
	_, ok = AsString(json.RawMessage("42"))
	assert.False(t, ok)

	n, ok := AsNumber(json.RawMessage("1767312000000"))
	assert.True(t, ok)
	assert.Equal(t, float64(1767312000000), n)
	_, ok = AsNumber(json.RawMessage(`"42"`))
	assert.False(t, ok)

	assert.Equal(t, "2026-01-02", ScalarString(json.RawMessage(`"2026-01-02"`)))
	assert.Equal(t, "1767312000000", ScalarString(json.RawMessage("1767312000000")))
	assert.Equal(t, "false", ScalarString(json.RawMessage("false")))
}

func TestLinkRecordClone(t *testing.T) {
	desc := "docs"
	start := int64(1000)
	rec := &LinkRecord{
		ID:          "ab1cd",
		Destination: "https://example.com",
		Description: &desc,
		StartDate:   &start,
		Aliases:     map[string]AliasRule{"a.example": {StartDate: &start}},
		Logs:        map[string][]string{"1": {"Created short link"}},
	}

	clone := rec.Clone()
	*clone.Description = "changed"
	*clone.StartDate = 2000
	*clone.Aliases["a.example"].StartDate = 3000
	clone.Logs["1"][0] = "changed"

	assert.Equal(t, "docs", *rec.Description)
	assert.Equal(t, int64(1000), *rec.StartDate)
	assert.Equal(t, int64(1000), *rec.Aliases["a.example"].StartDate)
	assert.Equal(t, "Created short link", rec.Logs["1"][0])
}

func TestLinkRecordDeleted(t *testing.T) {
	rec := &LinkRecord{ID: "ab1cd"}
	assert.False(t, rec.Deleted())

	d := int64(1000)
	rec.DeletedDate = &d
	assert.True(t, rec.Deleted())
}
