package controller

import (
	"bytes"
	"encoding/base64"
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/errors"
	"github.com/matzehuels/sketchboard/pkg/render"
)

// Inserted images are scaled to fit this box on the board.
const (
	MaxImageWidth  = 400
	MaxImageHeight = 300
)

// Payloads beyond these limits are downsampled before embedding so a
// board stays within storage quotas.
const (
	maxPayloadWidth  = 800
	maxPayloadHeight = 600
	maxPayloadBytes  = 1 << 20
)

// PrepareImage decodes an image file and builds the ImageChosen event
// that embeds it. Decoding can be slow; hosts call this off their input
// loop.
func PrepareImage(raw []byte) (ImageChosen, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return ImageChosen{}, errors.Wrap(errors.ErrCodeDecode, err, "decode image")
	}
	b := img.Bounds()

	var payload string
	if b.Dx() > maxPayloadWidth || b.Dy() > maxPayloadHeight || len(raw) > maxPayloadBytes {
		img = imaging.Fit(img, maxPayloadWidth, maxPayloadHeight, imaging.Lanczos)
		if payload, err = render.EncodePNGDataURL(img); err != nil {
			return ImageChosen{}, errors.Wrap(errors.ErrCodeInternal, err, "encode image")
		}
	} else {
		payload = "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(raw)
	}

	// Display size follows the original aspect, not the downsampled one.
	w, h := fitSize(float64(b.Dx()), float64(b.Dy()), MaxImageWidth, MaxImageHeight)
	return ImageChosen{DataURL: payload, Width: w, Height: h}, nil
}

// fitSize scales (w,h) down to fit (maxW,maxH), keeping the aspect ratio.
// Images that already fit keep their size.
func fitSize(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := min(maxW/w, maxH/h, 1)
	return w * scale, h * scale
}

func (c *Controller) insertImage(e ImageChosen) {
	at := c.pendingAt
	c.pendingAt = nil
	if at == nil {
		c.logger.Debug("image chosen without a pending position")
		return
	}
	w, h := e.Width, e.Height
	if w <= 0 || h <= 0 {
		img, _, err := render.DecodeDataURL(e.DataURL)
		if err != nil {
			c.logger.Warn("image insert failed", "err", err)
			return
		}
		b := img.Bounds()
		w, h = float64(b.Dx()), float64(b.Dy())
	}
	w, h = fitSize(w, h, MaxImageWidth, MaxImageHeight)
	if w == 0 || h == 0 {
		return
	}

	s := board.NewShape(board.KindImage, at.X, at.Y, c.style)
	s.X2, s.Y2 = at.X+w, at.Y+h
	s.ImageDataURL = e.DataURL
	c.shapes = append(c.shapes, s)
	c.selected = s.ID
	c.commit("image", "w", w, "h", h)
}
