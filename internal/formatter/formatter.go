package formatter

import (
	"fmt"
	"strings"
)

// Line ending names understood by the Formatter.
const (
	LineEndingsLF   = "lf"
	LineEndingsCRLF = "crlf"
)

// Formatter post-processes generated C# source for writing: an optional
// comment header and the requested line endings.
type Formatter struct {
	FileHeader  string
	LineEndings string
}

// NewFormatter creates a new Formatter instance
func NewFormatter(fileHeader, lineEndings string) *Formatter {
	return &Formatter{FileHeader: fileHeader, LineEndings: lineEndings}
}

// Format returns code with the file header prepended and line endings applied.
func (f *Formatter) Format(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	var newline string
	switch f.LineEndings {
	case LineEndingsLF, "":
		newline = "\n"
	case LineEndingsCRLF:
		newline = "\r\n"
	default:
		return "", fmt.Errorf("unknown line endings %q", f.LineEndings)
	}

	result := strings.ReplaceAll(code, "\r\n", "\n")
	if header := f.formatHeader(); header != "" {
		result = header + "\n" + result
	}

	if newline != "\n" {
		result = strings.ReplaceAll(result, "\n", newline)
	}
	return result, nil
}

// formatHeader renders FileHeader as // comment lines, each ending in \n.
func (f *Formatter) formatHeader() string {
	header := strings.TrimRight(strings.ReplaceAll(f.FileHeader, "\r\n", "\n"), "\n")
	if strings.TrimSpace(header) == "" {
		return ""
	}

	var b strings.Builder
	for _, line := range strings.Split(header, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			b.WriteString("//\n")
			continue
		}
		b.WriteString("// ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
