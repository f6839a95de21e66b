package main

import (
	"fmt"

	"github.com/at-ishikawa/mathsnap/internal/render"
	"github.com/spf13/pflag"
)

type Format render.Format

func (f *Format) Set(val string) error {
	for _, format := range render.AllFormats {
		if val == string(format) {
			*f = Format(format)
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s", val)
}

func (f Format) String() string {
	return string(f)
}

func (f *Format) Type() string {
	return "format"
}

var _ pflag.Value = (*Format)(nil)
