package trends

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/skilltracker/pkg/report"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Write renders r in one of the report formats.
func (r *Result) Write(w io.Writer, format string, opts report.WriteOptions) error {
	format, err := report.ValidateFormat(format)
	if err != nil {
		return err
	}

	switch format {
	case report.FormatPlot:
		return r.WritePlot(w, opts.Theme)
	case report.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("json encode: %w", err)
		}

		return nil
	case report.FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}

		return nil
	default:
		return r.WriteText(w, opts.Colored)
	}
}
