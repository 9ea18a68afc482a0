package generator

import (
	"bytes"
	"fmt"

	"github.com/mcncl/pastejson/internal/analyzer"
	"github.com/mcncl/pastejson/internal/errors"
	"github.com/mcncl/pastejson/internal/models"
)

// RootClassName is the name of the class generated for the top-level object.
const RootClassName = "Root"

// Generator enumerates C# classes from a parsed JSON document.
// It keeps no state between calls.
type Generator struct{}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns the C# source for root: the Root class followed by one class
// per nested object, breadth-first in discovery order.
func (g *Generator) Generate(root models.JSONValue) (string, error) {
	classes, err := g.Enumerate(root)
	if err != nil {
		return "", err
	}
	return Render(classes), nil
}

// Enumerate walks root and returns its classes in emission order. Root must be a
// JSON object. Null values and empty arrays panic with *errors.InvariantViolation.
func (g *Generator) Enumerate(root models.JSONValue) ([]models.ClassDef, error) {
	rootObj, ok := root.(*models.JSONObject)
	if !ok {
		return nil, errors.NewStructureError(
			fmt.Sprintf("cannot generate classes from a top-level %s", describe(root)),
			errors.ErrRootNotObject,
		)
	}

	var queue analyzer.WorkQueue
	classes := []models.ClassDef{enumerateClass(RootClassName, rootObj, &queue)}
	for {
		item, ok := queue.Pop()
		if !ok {
			break
		}
		classes = append(classes, enumerateClass(item.Name, item.Shape, &queue))
	}
	return classes, nil
}

// enumerateClass resolves every property of shape, in key order.
func enumerateClass(name string, shape *models.JSONObject, q analyzer.Enqueuer) models.ClassDef {
	class := models.ClassDef{
		Name:       name,
		Properties: make([]models.PropertyDef, 0, shape.Len()),
	}
	for _, key := range shape.Keys() {
		value, _ := shape.Get(key)
		class.Properties = append(class.Properties, models.PropertyDef{
			JSONKey: key,
			Name:    analyzer.PropertyName(key),
			Type:    analyzer.ResolveType(key, value, q),
		})
	}
	return class
}

// Render writes classes as C# class blocks separated by a blank line.
func Render(classes []models.ClassDef) string {
	var buf bytes.Buffer
	for i, class := range classes {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "public class %s\n{\n", class.Name)
		for _, prop := range class.Properties {
			fmt.Fprintf(&buf, "    public %s %s { get; set; }\n", prop.Type, prop.Name)
		}
		buf.WriteString("}\n")
	}
	return buf.String()
}

func describe(value models.JSONValue) string {
	switch value.(type) {
	case models.JSONArray:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "number"
	}
}
