package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("TGA data truncated")

// DecodeTGA decodes a true-color TGA image, uncompressed (type 2) or
// RLE compressed (type 10), 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	r := &tgaReader{
		src:   data[offset:],
		bpp:   bpp / 8,
		img:   image.NewNRGBA(image.Rect(0, 0, width, height)),
		flipY: !topToBottom,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = r.readRaw(width * height)
	} else {
		err = r.readRLE(width * height)
	}
	if err != nil {
		return nil, err
	}
	return r.img, nil
}

// tgaReader walks BGR(A) pixel data and writes it in scanline order.
type tgaReader struct {
	src   []byte
	pos   int
	bpp   int
	img   *image.NRGBA
	flipY bool
	next  int
}

func (r *tgaReader) pixel() (color.NRGBA, error) {
	if r.pos+r.bpp > len(r.src) {
		return color.NRGBA{}, errTGATruncated
	}
	p := r.src[r.pos : r.pos+r.bpp]
	r.pos += r.bpp
	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c, nil
}

func (r *tgaReader) put(c color.NRGBA) {
	w := r.img.Rect.Dx()
	h := r.img.Rect.Dy()
	x, y := r.next%w, r.next/w
	if r.flipY {
		y = h - 1 - y
	}
	r.img.SetNRGBA(x, y, c)
	r.next++
}

func (r *tgaReader) readRaw(count int) error {
	for r.next < count {
		c, err := r.pixel()
		if err != nil {
			return err
		}
		r.put(c)
	}
	return nil
}

func (r *tgaReader) readRLE(count int) error {
	for r.next < count {
		if r.pos >= len(r.src) {
			return errTGATruncated
		}
		packet := r.src[r.pos]
		r.pos++
		n := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, err := r.pixel()
			if err != nil {
				return err
			}
			for i := 0; i < n && r.next < count; i++ {
				r.put(c)
			}
			continue
		}
		for i := 0; i < n && r.next < count; i++ {
			c, err := r.pixel()
			if err != nil {
				return err
			}
			r.put(c)
		}
	}
	return nil
}
