package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"
)

const DefaultMaxDimension = 3840

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image exceeds size limit")
)

var allowedContentTypes = map[string]string{
	"image/jpeg": "image/jpeg",
	"image/jpg":  "image/jpeg",
	"image/png":  "image/png",
	"image/gif":  "image/gif",
	"image/webp": "image/webp",
}

type Photo struct {
	Bytes       []byte
	ContentType string
	Width       int
	Height      int
}

// ValidatePhoto reads and decodes an uploaded image, rejecting unsupported
// formats, byte sizes over maxBytes, and frames wider or taller than
// maxDimension. The decoded header, not the declared content type, decides
// the stored content type.
func ValidatePhoto(r io.Reader, size, maxBytes int64, contentType string, maxDimension int) (*Photo, error) {
	if _, ok := allowedContentTypes[contentType]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	if maxBytes > 0 && size > maxBytes {
		return nil, ErrTooLarge
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}

	limit := maxBytes
	if limit <= 0 {
		limit = size
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	if cfg.Width > maxDimension || cfg.Height > maxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %dpx", ErrTooLarge, cfg.Width, cfg.Height, maxDimension)
	}

	return &Photo{
		Bytes:       data,
		ContentType: "image/" + format,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
