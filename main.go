package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/iancoleman/strcase"
	"github.com/mcncl/pastejson/internal/config"
	"github.com/mcncl/pastejson/internal/errors"
	"github.com/mcncl/pastejson/internal/formatter"
	"github.com/mcncl/pastejson/internal/generator"
	"github.com/mcncl/pastejson/internal/models"
	"github.com/mcncl/pastejson/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	File        string `arg:"" optional:"" help:"Path to input JSON file. If not specified, reads from stdin." type:"path"`
	Input       string `help:"Path to input JSON file (same as the positional argument)." short:"i" type:"path"`
	Output      string `help:"Path to output C# file or directory. If not specified, writes to stdout." short:"o"`
	Config      string `help:"Path to a YAML config file. Defaults to the nearest .pastejson.yml." short:"c" type:"path"`
	KeyOrder    string `help:"Property order within a class: sorted or document." short:"k"`
	Header      string `help:"Comment written above the generated classes."`
	CRLF        bool   `help:"Write CRLF line endings." name:"crlf"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *slog.Logger
}

// Version information
const (
	Version = "0.1.0"
)

const helpExamples = `Generates C# classes to represent the given JSON.

Examples:
  pastejson weather.json
  cat weather.json | pastejson
  pastejson weather.json -o Models/`

func main() {
	parser := kong.Must(&CLI,
		kong.Name("pastejson"),
		kong.Description(helpExamples),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("pastejson version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	ctx := &Context{
		Debug:  cfg.Dev.Debug,
		Config: cfg,
		Logger: newLogger(cfg.Dev.Debug),
	}
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: pastejson --help\n")
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flags that were set
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	overrides := config.CLIOverrides{KeyOrder: CLI.KeyOrder}
	if CLI.Header != "" {
		overrides.FileHeader = &CLI.Header
	}
	if CLI.CRLF {
		overrides.CRLF = &CLI.CRLF
	}
	if CLI.Debug {
		overrides.Debug = &CLI.Debug
	}

	cfg, err := config.LoadConfigWithCLI(configPath, overrides)
	if err != nil {
		return nil, err
	}
	if cfg.Dev.Debug && configPath != "" {
		newLogger(true).Debug("loaded config", "path", configPath)
	}
	return cfg, nil
}

func newLogger(debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	if ctx.Logger == nil {
		ctx.Logger = newLogger(ctx.Debug)
	}
	logger := ctx.Logger

	// 1. Parse JSON input
	ir, err := parseInput(ctx.Config.ParsedKeyOrder())
	if err != nil {
		return err
	}
	logger.Debug("parsed input", "source", inputDescription(), "key_order", ctx.Config.KeyOrder, "root_is_object", ir.RootIsObject)

	// 2. Enumerate and render C# classes
	code, err := generateClasses(ir.Root, logger)
	if err != nil {
		return err
	}

	// 3. Apply header and line endings
	formatterInst := formatter.NewFormatter(ctx.Config.Output.FileHeader, ctx.Config.Output.LineEndings)
	code, err = formatterInst.Format(code)
	if err != nil {
		return errors.NewFormatError("failed to format C# code", err)
	}

	// 4. Output the result
	destination := outputPath()
	if destination == "" {
		destination = "stdout"
	}
	logger.Debug("writing output", "destination", destination, "bytes", len(code))
	return writeOutput(code)
}

// generateClasses runs the class generator and turns an invariant violation
// panic into an error. Any other panic is re-raised.
func generateClasses(root models.JSONValue, logger *slog.Logger) (code string, err error) {
	defer func() {
		if r := recover(); r != nil {
			violation, ok := r.(*errors.InvariantViolation)
			if !ok {
				panic(r)
			}
			logger.Debug("generation aborted", "key", violation.Key, "error", violation.Err)
			code, err = "", errors.NewInvariantError("cannot infer a C# type", violation)
		}
	}()

	classes, err := generator.NewGenerator().Enumerate(root)
	if err != nil {
		return "", err
	}
	for _, class := range classes {
		logger.Debug("enumerated class", "name", class.Name, "properties", len(class.Properties))
	}
	return generator.Render(classes), nil
}

// inputPath returns the JSON file to read, or "" for stdin
func inputPath() string {
	if CLI.Input != "" {
		return CLI.Input
	}
	return CLI.File
}

func inputDescription() string {
	if path := inputPath(); path != "" {
		return path
	}
	return "stdin"
}

// parseInput reads JSON from file or stdin
func parseInput(order parser.KeyOrder) (models.IntermediateRepresentation, error) {
	p := parser.NewParser(order)

	if path := inputPath(); path != "" {
		return p.ParseFile(path)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		if CLI.Interactive {
			return readInteractiveInput(p)
		}
		return models.IntermediateRepresentation{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return p.ParseString(string(jsonData))
}

// outputPath resolves --output. A directory (existing, or written with a
// trailing separator) gets a file named after the input.
func outputPath() string {
	if CLI.Output == "" {
		return ""
	}
	isDir := strings.HasSuffix(CLI.Output, string(os.PathSeparator)) || strings.HasSuffix(CLI.Output, "/")
	if info, err := os.Stat(CLI.Output); err == nil && info.IsDir() {
		isDir = true
	}
	if !isDir {
		return CLI.Output
	}
	return filepath.Join(CLI.Output, outputFileName(inputPath()))
}

// outputFileName derives "WeatherReport.cs" from "weather_report.json"
func outputFileName(input string) string {
	name := ""
	if input != "" {
		base := filepath.Base(input)
		name = strcase.ToCamel(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if name == "" {
		name = generator.RootClassName
	}
	return name + ".cs"
}

// writeOutput writes code to file or stdout
func writeOutput(code string) error {
	if path := outputPath(); path != "" {
		err := os.WriteFile(path, []byte(code), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		fmt.Fprintf(os.Stderr, "Generated C# code written to %s\n", path)
		return nil
	}

	if _, err := fmt.Print(code); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput(p *parser.Parser) (models.IntermediateRepresentation, error) {
	fmt.Fprintln(os.Stderr, "pastejson Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.IntermediateRepresentation{}, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if strings.TrimSpace(jsonData) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return p.ParseString(jsonData)
}
