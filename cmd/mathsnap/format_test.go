package main

import (
	"testing"

	"github.com/at-ishikawa/mathsnap/internal/render"
	"github.com/stretchr/testify/assert"
)

func TestFormat_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Format
		wantErr bool
	}{
		{
			name:  "text",
			value: "text",
			want:  Format(render.FormatText),
		},
		{
			name:  "pdf",
			value: "pdf",
			want:  Format(render.FormatPDF),
		},
		{
			name:    "invalid format value",
			value:   "docx",
			wantErr: true,
		},
		{
			name:    "formats are case sensitive",
			value:   "JSON",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var format Format
			err := format.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid format")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, format)
		})
	}
}

func TestFormat_String(t *testing.T) {
	format := Format(render.FormatMarkdown)
	assert.Equal(t, "markdown", format.String())
}

func TestFormat_Type(t *testing.T) {
	format := Format(render.FormatText)
	assert.Equal(t, "format", format.Type())
}

func TestNewSolveCommand(t *testing.T) {
	cmd := newSolveCommand()

	assert.Equal(t, "solve <image>", cmd.Use)
	formatFlag := cmd.Flags().Lookup("format")
	if assert.NotNil(t, formatFlag) {
		assert.Equal(t, "text", formatFlag.DefValue)
		assert.Equal(t, "f", formatFlag.Shorthand)
	}
	assert.NotNil(t, cmd.Flags().Lookup("output"))
	assert.NotNil(t, cmd.Flags().Lookup("content-type"))
}
