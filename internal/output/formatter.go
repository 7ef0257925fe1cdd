// Package output renders simulation results for the command line.
// Formatters are registered by name and looked up case-insensitively,
// with a small alias table for common spellings.
package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fincity/investing-engine/internal/domain"
)

// Formatter renders a simulation result into a byte slice.
type Formatter interface {
	Format(result *domain.SimulationResult) ([]byte, error)
	Name() string
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(result *domain.SimulationResult) ([]byte, error)
}

func (ff FormatterFunc) Name() string { return ff.ID }

func (ff FormatterFunc) Format(result *domain.SimulationResult) ([]byte, error) {
	return ff.F(result)
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	JSONFormatter{},
	CSVFormatter{},
}

// aliasMap maps alternate spellings to canonical formatter names.
var aliasMap = map[string]string{
	"text":        "console",
	"table":       "console",
	"plain":       "console",
	"json-pretty": "json",
	"csv-simple":  "csv",
}

// NormalizeFormatName lowercases the name and resolves known aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliasMap[n]; ok {
		return canonical
	}
	return n
}

// GetFormatterByName returns the registered formatter for name.
func GetFormatterByName(name string) (Formatter, error) {
	normalized := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == normalized {
			return f, nil
		}
	}
	return nil, fmt.Errorf("unknown output format %q (available: %s)",
		name, strings.Join(AvailableFormatterNames(), ", "))
}

// AvailableFormatterNames lists the canonical formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted alias spellings, sorted.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(aliasMap))
	for a := range aliasMap {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders the result with the named formatter. Console
// output goes to stdout; other formats are written to a timestamped
// file in the current directory and the path is printed.
func WriteFormatted(result *domain.SimulationResult, formatName string) error {
	formatter, err := GetFormatterByName(formatName)
	if err != nil {
		return err
	}

	data, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("formatting as %s: %w", formatter.Name(), err)
	}

	if formatter.Name() == "console" {
		_, err = os.Stdout.Write(data)
		return err
	}

	filename := fmt.Sprintf("simulation_%s.%s",
		time.Now().Format("2006-01-02_15-04-05"), fileExtension(formatter.Name()))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	fmt.Printf("Wrote %s\n", filename)
	return nil
}

func fileExtension(formatName string) string {
	switch formatName {
	case "csv":
		return "csv"
	case "json":
		return "json"
	default:
		return "txt"
	}
}
