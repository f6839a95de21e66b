package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
	FormatPDF      Format = "pdf"
)

var AllFormats = []Format{FormatText, FormatHTML, FormatMarkdown, FormatYAML, FormatJSON, FormatPDF}

// ErrNeedsFile is returned for formats that cannot be streamed
var ErrNeedsFile = errors.New("this format must be written to a file")

type Options struct {
	// TemplatePath overrides the embedded markdown template
	TemplatePath string
	// ImageName is mentioned in reports
	ImageName string
}

// Write renders view in format. PDF is written with WritePDF.
func Write(w io.Writer, format Format, view View, options Options) error {
	switch format {
	case FormatText, "":
		return NewTextRenderer().Write(w, view)
	case FormatHTML:
		if err := WriteHTML(w, view); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	case FormatMarkdown:
		return WriteMarkdown(w, view, options)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(view); err != nil {
			return fmt.Errorf("yaml.Encode > %w", err)
		}
		return encoder.Close()
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(view); err != nil {
			return fmt.Errorf("json.Encode > %w", err)
		}
		return nil
	case FormatPDF:
		return ErrNeedsFile
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
