package render

import (
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// JPEGQuality is used for .jpg output.
const JPEGQuality = 95

var ErrUnsupportedFormat = errors.New("unsupported image format")

// EncodePNG writes f as PNG.
func EncodePNG(w io.Writer, f *Frame) error { return png.Encode(w, f.Image()) }

// EncodeJPEG writes f as JPEG at JPEGQuality.
func EncodeJPEG(w io.Writer, f *Frame) error {
	return jpeg.Encode(w, f.Image(), &jpeg.Options{Quality: JPEGQuality})
}

// EncodeBMP writes f as BMP.
func EncodeBMP(w io.Writer, f *Frame) error { return bmp.Encode(w, f.Image()) }

// Encode writes f in the named format: png, jpg, jpeg or bmp.
func Encode(w io.Writer, f *Frame, format string) error {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "png":
		return EncodePNG(w, f)
	case "jpg", "jpeg":
		return EncodeJPEG(w, f)
	case "bmp":
		return EncodeBMP(w, f)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SaveFrame writes f to path, picking the format from the extension.
func SaveFrame(path string, f *Frame) error {
	ext := filepath.Ext(path)
	if ext == "" {
		return fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := Encode(out, f, ext); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return err
	}
	return out.Close()
}
