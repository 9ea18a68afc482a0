package formatter

import (
	"strings"
	"testing"

	"github.com/mcncl/pastejson/internal/generator"
	"github.com/mcncl/pastejson/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_ParserGeneratorFormatter(t *testing.T) {
	jsonInput := `{
		"user_id": 123,
		"username": "johndoe",
		"profile": {
			"full_name": "John Doe",
			"email": "john.doe@example.com"
		}
	}`

	ir, err := parser.ParseString(jsonInput)
	require.NoError(t, err)

	code, err := generator.NewGenerator().Generate(ir.Root)
	require.NoError(t, err)

	formatted, err := NewFormatter("Generated from users.json", LineEndingsCRLF).Format(code)
	require.NoError(t, err)

	expected := strings.Join([]string{
		"// Generated from users.json",
		"",
		"public class Root",
		"{",
		"    public Profile profile { get; set; }",
		"    public int user_id { get; set; }",
		"    public string username { get; set; }",
		"}",
		"",
		"public class Profile",
		"{",
		"    public string email { get; set; }",
		"    public string full_name { get; set; }",
		"}",
		"",
	}, "\r\n")
	assert.Equal(t, expected, formatted)
}
