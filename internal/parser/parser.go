package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/goccy/go-json"
	"github.com/mcncl/pastejson/internal/errors" // Custom errors package
	"github.com/mcncl/pastejson/internal/models"
)

// KeyOrder controls the iteration order of object keys in the parsed tree.
type KeyOrder string

const (
	// KeyOrderSorted orders keys by byte-wise comparison.
	KeyOrderSorted KeyOrder = "sorted"
	// KeyOrderDocument keeps the order in which keys first appear in the source text.
	KeyOrderDocument KeyOrder = "document"
)

// ParseKeyOrder validates a key order name.
func ParseKeyOrder(s string) (KeyOrder, error) {
	switch KeyOrder(s) {
	case KeyOrderSorted, KeyOrderDocument:
		return KeyOrder(s), nil
	case "":
		return KeyOrderSorted, nil
	default:
		return "", fmt.Errorf("unknown key order %q (want %q or %q)", s, KeyOrderSorted, KeyOrderDocument)
	}
}

// Parser turns JSON text into an IntermediateRepresentation.
type Parser struct {
	KeyOrder KeyOrder
}

// NewParser creates a Parser using the given key order.
func NewParser(order KeyOrder) *Parser {
	if order == "" {
		order = KeyOrderSorted
	}
	return &Parser{KeyOrder: order}
}

// Parse converts JSON data from an io.Reader into an IntermediateRepresentation
// with sorted keys.
func Parse(reader io.Reader) (models.IntermediateRepresentation, error) {
	return NewParser(KeyOrderSorted).Parse(reader)
}

// ParseString parses JSON from a string with sorted keys.
func ParseString(jsonString string) (models.IntermediateRepresentation, error) {
	return NewParser(KeyOrderSorted).ParseString(jsonString)
}

// ParseFile parses JSON from a file path with sorted keys.
func ParseFile(filePath string) (models.IntermediateRepresentation, error) {
	return NewParser(KeyOrderSorted).ParseFile(filePath)
}

// Parse converts JSON data from an io.Reader into an IntermediateRepresentation
func (p *Parser) Parse(reader io.Reader) (models.IntermediateRepresentation, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read input", err)
	}
	if err := validate(data); err != nil {
		return models.IntermediateRepresentation{}, err
	}

	// The document is known to be a single well-formed value, so the token walk
	// below only has to build the ordered tree.
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	rootValue, err := p.readValue(decoder)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewParsingError("failed to decode JSON", err)
	}

	_, isObject := rootValue.(*models.JSONObject)
	return models.IntermediateRepresentation{
		Root:         rootValue,
		RootIsObject: isObject,
	}, nil
}

// validate decodes the document once to report syntax errors, empty input and
// trailing values the way users expect.
func validate(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var probe interface{}
	if err := decoder.Decode(&probe); err != nil {
		if stderrors.Is(err, io.EOF) {
			return errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		return errors.NewParsingError("failed to decode JSON", err)
	}

	if decoder.More() {
		var trailingValue interface{}
		if err := decoder.Decode(&trailingValue); err != nil {
			if !stderrors.Is(err, io.EOF) {
				return errors.NewParsingError("invalid trailing data after first JSON value", err)
			}
		} else {
			return errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
	}
	return nil
}

func (p *Parser) readValue(decoder *json.Decoder) (models.JSONValue, error) {
	tok, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return p.readObject(decoder)
		case '[':
			return p.readArray(decoder)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(v))
		}
	case json.Number:
		return v, nil
	case float64:
		return json.Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case string, bool, nil:
		return v, nil
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

func (p *Parser) readObject(decoder *json.Decoder) (*models.JSONObject, error) {
	obj := models.NewJSONObject()
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %T", tok)
		}
		value, err := p.readValue(decoder)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		obj.Set(key, value)
	}
	// closing '}'
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}

	if p.KeyOrder != KeyOrderDocument {
		obj.SortKeys()
	}
	return obj, nil
}

func (p *Parser) readArray(decoder *json.Decoder) (models.JSONArray, error) {
	arr := models.JSONArray{}
	for decoder.More() {
		value, err := p.readValue(decoder)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", len(arr), err)
		}
		arr = append(arr, value)
	}
	// closing ']'
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// ParseString parses JSON from a string
func (p *Parser) ParseString(jsonString string) (models.IntermediateRepresentation, error) {
	// An empty string reader gives io.EOF to Decode, but whitespace might not.
	if strings.TrimSpace(jsonString) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}
	return p.Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func (p *Parser) ParseFile(filePath string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.IntermediateRepresentation{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return p.Parse(file)
}
