// file: internals/docstore/fieldpath_test.go
package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFieldNested(t *testing.T) {
	doc := Document{
		"courses": map[string]any{
			"c1": map[string]any{"total_present": float64(3)},
		},
	}

	got, ok := GetField(doc, "courses.c1.total_present")
	assert.True(t, ok)
	assert.Equal(t, float64(3), got)

	_, ok = GetField(doc, "courses.c2.total_present")
	assert.False(t, ok)

	// path menembus non-map
	_, ok = GetField(doc, "courses.c1.total_present.deeper")
	assert.False(t, ok)
}

func TestSetFieldCreatesIntermediateMaps(t *testing.T) {
	doc := Document{}
	SetField(doc, "a.b.c", 42)

	got, ok := GetField(doc, "a.b.c")
	assert.True(t, ok)
	assert.Equal(t, 42, got)
}

func TestSetFieldOverwritesLeaf(t *testing.T) {
	doc := Document{"a": map[string]any{"b": "lama"}}
	SetField(doc, "a.b", "baru")

	got, _ := GetField(doc, "a.b")
	assert.Equal(t, "baru", got)
}

func TestDeleteFieldMissingPathIsNoop(t *testing.T) {
	doc := Document{"a": map[string]any{"b": 1}}
	DeleteField(doc, "x.y.z")
	DeleteField(doc, "a.b")

	_, ok := GetField(doc, "a.b")
	assert.False(t, ok)
}

func TestApplyFieldsSentinels(t *testing.T) {
	doc := Document{
		"name": "batch A",
		"tags": []any{"satu"},
		"meta": map[string]any{"stale": true},
	}

	ApplyFields(doc, map[string]any{
		"name":       "batch B",
		"meta.stale": Delete,
		"tags":       ArrayUnion("dua", "satu"),
	})

	name, _ := GetField(doc, "name")
	assert.Equal(t, "batch B", name)

	_, ok := GetField(doc, "meta.stale")
	assert.False(t, ok)

	tags, _ := GetField(doc, "tags")
	assert.Equal(t, []any{"satu", "dua"}, tags)
}

func TestArrayUnionDeepEquality(t *testing.T) {
	doc := Document{"students": []any{map[string]any{"user_id": "u1"}}}

	ApplyFields(doc, map[string]any{
		"students": ArrayUnion(map[string]any{"user_id": "u1"}, map[string]any{"user_id": "u2"}),
	})

	arr, _ := GetField(doc, "students")
	assert.Len(t, arr, 2)
}
