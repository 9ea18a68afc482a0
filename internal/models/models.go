package models

import (
	"sort"
	"strings"
)

// JSONValue is a generic type to represent any JSON value.
// This can be a string, json.Number, bool, nil, *JSONObject, or JSONArray.
type JSONValue interface{}

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// JSONObject represents a JSON object. Keys are iterated in the order they were set;
// setting an existing key replaces its value but keeps its position.
type JSONObject struct {
	keys   []string
	values map[string]JSONValue
}

// NewJSONObject creates an empty JSONObject.
func NewJSONObject() *JSONObject {
	return &JSONObject{values: make(map[string]JSONValue)}
}

// Set stores value under key.
func (o *JSONObject) Set(key string, value JSONValue) {
	if o.values == nil {
		o.values = make(map[string]JSONValue)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *JSONObject) Get(key string) (JSONValue, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in iteration order. The returned slice must not be modified.
func (o *JSONObject) Keys() []string {
	return o.keys
}

// Len returns the number of keys.
func (o *JSONObject) Len() int {
	return len(o.keys)
}

// SortKeys reorders the keys by byte-wise comparison.
func (o *JSONObject) SortKeys() {
	sort.Strings(o.keys)
}

// IntermediateRepresentation holds the parsed JSON document handed to the generator.
type IntermediateRepresentation struct {
	Root JSONValue
	// RootIsObject is true when the top-level value is a JSON object
	RootIsObject bool
}

// TypeKind distinguishes built-in C# types from generated ones.
type TypeKind int

const (
	// Primitive is one of the fixed built-in type names.
	Primitive TypeKind = iota
	// Custom is a generated class name, or any type carrying [] suffixes.
	Custom
)

// Primitive C# type names.
const (
	TypeString = "string"
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeUint   = "uint"
	TypeBool   = "bool"
)

// TypeInfo is the resolved C# type of one property.
type TypeInfo struct {
	Kind TypeKind
	// Name is the element name: a primitive name or a generated class name.
	Name string
	// ArrayDepth is the number of [] suffixes.
	ArrayDepth int
}

// String returns the C# type text, e.g. "Weather[][]".
func (t TypeInfo) String() string {
	return t.Name + strings.Repeat("[]", t.ArrayDepth)
}

// ClassWorkItem is an object shape waiting to be emitted as a class.
type ClassWorkItem struct {
	Name  string
	Shape *JSONObject
}

// PropertyDef is one generated auto-property.
type PropertyDef struct {
	JSONKey string
	Name    string
	Type    TypeInfo
}

// ClassDef is one generated class, in emission order.
type ClassDef struct {
	Name       string
	Properties []PropertyDef
}
