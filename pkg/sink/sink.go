// Package sink encodes rendered boards into downloadable artifacts.
//
// Boards are rasterised by pkg/render; a sink only wraps the pixels in a
// file format. PNG keeps them as is. PDF places the raster on a single
// page sized to the image, one pixel to 0.75 points (96 dpi).
package sink

import (
	"bytes"
	"image"
	"image/png"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/sketchboard/pkg/errors"
)

// Format is an export file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatPNG, FormatPDF}

// pointsPerPixel maps CSS pixels (96 dpi) to PDF points (72 dpi).
const pointsPerPixel = 0.75

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	default:
		return "image/png"
	}
}

// ParseFormats parses a comma-separated list such as "png,pdf".
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))
		if f == "" {
			continue
		}
		if f != FormatPNG && f != FormatPDF {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want png or pdf)", part)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no export format given")
	}
	return out, nil
}

// Encode writes img in format f.
func Encode(f Format, img image.Image) ([]byte, error) {
	switch f {
	case FormatPNG:
		return EncodePNG(img)
	case FormatPDF:
		return EncodePDF(img)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// EncodePDF encodes img as a one-page PDF the size of the image.
func EncodePDF(img image.Image) ([]byte, error) {
	raster, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	w := float64(b.Dx()) * pointsPerPixel
	h := float64(b.Dy()) * pointsPerPixel

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("sketchboard", true)
	pdf.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("board", opt, bytes.NewReader(raster))
	pdf.ImageOptions("board", 0, 0, w, h, false, opt, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode pdf")
	}
	return out.Bytes(), nil
}
