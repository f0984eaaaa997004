package report

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/skilltracker/pkg/analysis"
	"github.com/Sumatoshi-tech/skilltracker/pkg/plotpage"
)

// Output formats.
const (
	FormatPlot = "plot"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// ErrUnsupportedFormat is returned for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported format")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Formats lists the accepted format names.
func Formats() []string {
	return []string{FormatPlot, FormatJSON, FormatYAML, FormatText}
}

// ValidateFormat normalizes and checks a format name.
func ValidateFormat(format string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if !slices.Contains(Formats(), normalized) {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, format, strings.Join(Formats(), ", "))
	}

	return normalized, nil
}

// WriteOptions tunes the rendering of text and plot output.
type WriteOptions struct {
	Theme   plotpage.Theme
	Colored bool
}

// Write renders res in format.
func Write(w io.Writer, res *analysis.Result, format string, opts WriteOptions) error {
	format, err := ValidateFormat(format)
	if err != nil {
		return err
	}

	if format == FormatPlot {
		return WritePlot(w, res, opts.Theme)
	}

	rep, err := Build(res)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if encErr := enc.Encode(rep); encErr != nil {
			return fmt.Errorf("json encode: %w", encErr)
		}

		return nil
	case FormatYAML:
		data, marshalErr := yaml.Marshal(rep)
		if marshalErr != nil {
			return fmt.Errorf("yaml marshal: %w", marshalErr)
		}

		if _, writeErr := w.Write(data); writeErr != nil {
			return fmt.Errorf("yaml write: %w", writeErr)
		}

		return nil
	default:
		return WriteText(w, rep, opts.Colored)
	}
}
