// Package analyzer resolves the C# type of a JSON value and schedules nested
// object shapes for class generation.
package analyzer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mcncl/pastejson/internal/errors"
	"github.com/mcncl/pastejson/internal/models"
)

// Enqueuer accepts newly discovered object shapes.
type Enqueuer interface {
	Enqueue(item models.ClassWorkItem)
}

// WorkQueue is a FIFO of class work items. The zero value is ready to use.
type WorkQueue struct {
	items []models.ClassWorkItem
}

// Enqueue appends item to the back of the queue.
func (q *WorkQueue) Enqueue(item models.ClassWorkItem) {
	q.items = append(q.items, item)
}

// Pop removes and returns the front item.
func (q *WorkQueue) Pop() (models.ClassWorkItem, bool) {
	if len(q.items) == 0 {
		return models.ClassWorkItem{}, false
	}
	item := q.items[0]
	q.items[0] = models.ClassWorkItem{}
	q.items = q.items[1:]
	return item, true
}

// Len returns the number of pending items.
func (q *WorkQueue) Len() int {
	return len(q.items)
}

// ResolveType returns the C# type for the property name holding value.
// Every object reached, directly or as the innermost element of an array,
// is handed to q under a class name derived from name, with no deduplication.
//
// Null values and empty arrays are not modelled: ResolveType panics with an
// *errors.InvariantViolation for them.
func ResolveType(name string, value models.JSONValue, q Enqueuer) models.TypeInfo {
	switch v := value.(type) {
	case string:
		return models.TypeInfo{Kind: models.Primitive, Name: models.TypeString}
	case json.Number:
		return models.TypeInfo{Kind: models.Primitive, Name: ClassifyNumber(v)}
	case bool:
		return models.TypeInfo{Kind: models.Primitive, Name: models.TypeBool}
	case models.JSONArray:
		return resolveArray(name, v, q)
	case *models.JSONObject:
		className := ClassName(name)
		q.Enqueue(models.ClassWorkItem{Name: className, Shape: v})
		return models.TypeInfo{Kind: models.Custom, Name: className}
	case nil:
		panic(&errors.InvariantViolation{Key: name, Err: errors.ErrNullValue})
	default:
		panic(&errors.InvariantViolation{Key: name, Err: fmt.Errorf("unexpected json value type: %T", v)})
	}
}

// resolveArray strips array levels by following the first element and resolves
// the innermost value.
func resolveArray(name string, arr models.JSONArray, q Enqueuer) models.TypeInfo {
	depth := 0
	var current models.JSONValue = arr
	for {
		inner, ok := current.(models.JSONArray)
		if !ok {
			break
		}
		if len(inner) == 0 {
			panic(&errors.InvariantViolation{Key: name, Err: errors.ErrEmptyArray})
		}
		current = inner[0]
		depth++
	}

	elem := ResolveType(name, current, q)
	return models.TypeInfo{
		Kind:       models.Custom,
		Name:       elem.Name,
		ArrayDepth: elem.ArrayDepth + depth,
	}
}

// ClassifyNumber picks int, float or uint for a number literal. A literal with a
// fraction or exponent is a float; an integral literal is an int when it fits
// int64, a uint when it only fits uint64, and a float otherwise.
func ClassifyNumber(num json.Number) string {
	s := string(num)
	if strings.ContainsAny(s, ".eE") {
		return models.TypeFloat
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.TypeInt
	}
	if _, err := strconv.ParseUint(s, 10, 64); err == nil {
		return models.TypeUint
	}
	return models.TypeFloat
}

// ClassName upper-cases the first character of a property name when it is an
// ASCII letter. The rest of the name is kept as is.
func ClassName(name string) string {
	if name == "" {
		return name
	}
	first := name[0]
	if first >= 'a' && first <= 'z' {
		return string(first-'a'+'A') + name[1:]
	}
	return name
}

// PropertyName lower-cases every ASCII letter of a JSON key.
func PropertyName(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
