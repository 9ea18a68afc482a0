package analyzer

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/mcncl/pastejson/internal/errors"
	"github.com/mcncl/pastejson/internal/models"
	"github.com/mcncl/pastejson/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseValue parses jsonInput and returns the value under key in the root object
func parseValue(t *testing.T, jsonInput, key string) models.JSONValue {
	t.Helper()
	ir, err := parser.ParseString(jsonInput)
	require.NoError(t, err)
	root, ok := ir.Root.(*models.JSONObject)
	require.True(t, ok)
	value, ok := root.Get(key)
	require.True(t, ok)
	return value
}

// requireViolation runs fn and returns the InvariantViolation it panics with
func requireViolation(t *testing.T, fn func()) (violation *errors.InvariantViolation) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		var ok bool
		violation, ok = r.(*errors.InvariantViolation)
		require.True(t, ok, "panic value is %T, want *errors.InvariantViolation", r)
	}()
	fn()
	return nil
}

func TestResolveType_Primitives(t *testing.T) {
	tests := []struct {
		name     string
		value    models.JSONValue
		expected string
	}{
		{"string", "hello", "string"},
		{"bool", true, "bool"},
		{"int", json.Number("5"), "int"},
		{"negative int", json.Number("-42"), "int"},
		{"float with zero fraction", json.Number("5.0"), "float"},
		{"float", json.Number("5.5"), "float"},
		{"exponent", json.Number("1e3"), "float"},
		{"max int64", json.Number("9223372036854775807"), "int"},
		{"beyond int64", json.Number("9223372036854775808"), "uint"},
		{"max uint64", json.Number("18446744073709551615"), "uint"},
		{"beyond uint64", json.Number("18446744073709551616"), "float"},
		{"beyond negative int64", json.Number("-9223372036854775809"), "float"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q WorkQueue
			typeInfo := ResolveType("value", tt.value, &q)
			assert.Equal(t, models.Primitive, typeInfo.Kind)
			assert.Equal(t, tt.expected, typeInfo.String())
			assert.Equal(t, 0, q.Len())
		})
	}
}

func TestResolveType_Arrays(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected string
	}{
		{"strings", `{"v": ["a", "b"]}`, "string[]"},
		{"nested ints", `{"v": [[1, 2], [3]]}`, "int[][]"},
		{"first element decides", `{"v": [1, "two", true]}`, "int[]"},
		{"first element at every level", `{"v": [[[1.5]], []]}`, "float[][][]"},
		{"bools", `{"v": [false]}`, "bool[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q WorkQueue
			typeInfo := ResolveType("v", parseValue(t, tt.json, "v"), &q)
			assert.Equal(t, models.Custom, typeInfo.Kind)
			assert.Equal(t, tt.expected, typeInfo.String())
			assert.Equal(t, 0, q.Len())
		})
	}
}

func TestResolveType_ObjectEnqueues(t *testing.T) {
	value := parseValue(t, `{"address": {"city": "Seattle", "zip": 98105}}`, "address")

	var q WorkQueue
	typeInfo := ResolveType("address", value, &q)
	assert.Equal(t, models.TypeInfo{Kind: models.Custom, Name: "Address"}, typeInfo)

	require.Equal(t, 1, q.Len())
	item, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "Address", item.Name)
	assert.Equal(t, []string{"city", "zip"}, item.Shape.Keys())
}

func TestResolveType_ArrayOfObjects(t *testing.T) {
	value := parseValue(t, `{"weather": [[{"main": "Rain"}], [{"other": 1}]]}`, "weather")

	var q WorkQueue
	typeInfo := ResolveType("weather", value, &q)
	assert.Equal(t, "Weather[][]", typeInfo.String())

	// only the first element is inspected
	require.Equal(t, 1, q.Len())
	item, _ := q.Pop()
	assert.Equal(t, "Weather", item.Name)
	assert.Equal(t, []string{"main"}, item.Shape.Keys())
}

func TestResolveType_SameNameEnqueuesEveryTime(t *testing.T) {
	first := models.NewJSONObject()
	first.Set("a", "x")
	second := models.NewJSONObject()
	second.Set("b", json.Number("1"))

	var q WorkQueue
	ResolveType("data", first, &q)
	ResolveType("data", second, &q)

	require.Equal(t, 2, q.Len())
	one, _ := q.Pop()
	two, _ := q.Pop()
	assert.Equal(t, "Data", one.Name)
	assert.Equal(t, "Data", two.Name)
	assert.Same(t, first, one.Shape)
	assert.Same(t, second, two.Shape)
}

func TestResolveType_NullPanics(t *testing.T) {
	var q WorkQueue
	violation := requireViolation(t, func() { ResolveType("city", nil, &q) })
	assert.Equal(t, "city", violation.Key)
	assert.ErrorIs(t, violation, errors.ErrNullValue)
}

func TestResolveType_EmptyArrayPanics(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"empty", `{"tags": []}`},
		{"empty nested", `{"tags": [[]]}`},
		{"null element", `{"tags": [null]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := parseValue(t, tt.json, "tags")
			var q WorkQueue
			violation := requireViolation(t, func() { ResolveType("tags", value, &q) })
			assert.Equal(t, "tags", violation.Key)
		})
	}

	var q WorkQueue
	violation := requireViolation(t, func() { ResolveType("tags", models.JSONArray{}, &q) })
	assert.ErrorIs(t, violation, errors.ErrEmptyArray)
}

func TestClassName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"address", "Address"},
		{"Address", "Address"},
		{"user_profile", "User_profile"},
		{"firstName", "FirstName"},
		{"1st", "1st"},
		{"_meta", "_meta"},
		{"élan", "élan"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassName(tt.input))
		})
	}
}

func TestPropertyName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"id", "id"},
		{"FirstName", "firstname"},
		{"USER_ID", "user_id"},
		{"has space", "has space"},
		{"Ünïcode", "Ünïcode"},
		{"dash-Case", "dash-case"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, PropertyName(tt.input))
		})
	}
}

func TestWorkQueue_FIFO(t *testing.T) {
	var q WorkQueue
	_, ok := q.Pop()
	assert.False(t, ok)

	q.Enqueue(models.ClassWorkItem{Name: "A"})
	q.Enqueue(models.ClassWorkItem{Name: "B"})
	q.Enqueue(models.ClassWorkItem{Name: "C"})

	var names []string
	for {
		item, ok := q.Pop()
		if !ok {
			break
		}
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
	assert.Equal(t, 0, q.Len())
}
