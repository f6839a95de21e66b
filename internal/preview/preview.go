// Package preview builds the local preview of a selected image from its bytes,
// without any round-trip to the server.
package preview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/at-ishikawa/mathsnap/internal/upload"
	"github.com/dustin/go-humanize"
)

type Preview struct {
	Name        string
	ContentType string
	Size        int64
	// Format, Width and Height are empty when the image could not be decoded,
	// the same way a browser shows a broken image.
	Format  string
	Width   int
	Height  int
	DataURL string
}

func (p Preview) Decoded() bool {
	return p.Format != ""
}

func Build(img upload.SelectedImage) Preview {
	p := Preview{
		Name:        img.Name,
		ContentType: img.ContentType,
		Size:        img.Size,
		DataURL:     "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data),
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err == nil {
		p.Format = format
		p.Width = cfg.Width
		p.Height = cfg.Height
	}
	return p
}

func (p Preview) String() string {
	if !p.Decoded() {
		return fmt.Sprintf("%s (%s, %s, not decodable)", p.Name, p.ContentType, HumanSize(p.Size))
	}
	return fmt.Sprintf("%s (%s %dx%d, %s)", p.Name, strings.ToUpper(p.Format), p.Width, p.Height, HumanSize(p.Size))
}

// HumanSize formats a byte count with binary units, like "1.5 KiB".
func HumanSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
