package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Conversion sizes. "full" is always the original, never re-encoded.
const (
	ThumbSize = 300
	CardSize  = 600
	WebSize   = 1200
)

type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor(maxSize int64) *ImageProcessor {
	return &ImageProcessor{MaxSize: maxSize}
}

// ValidateUpload checks size and sniffs the payload type. Images must decode
// as jpeg/png/webp/gif; videos are recognized by container signature
// (mp4/quicktime/webm). Returns the mime type and whether renditions apply.
func (p *ImageProcessor) ValidateUpload(data []byte) (mimeType string, isImage bool, err error) {
	if int64(len(data)) > p.MaxSize {
		return "", false, fmt.Errorf("file exceeds %dMB", p.MaxSize/(1024*1024))
	}
	if _, format, derr := image.DecodeConfig(bytes.NewReader(data)); derr == nil {
		switch format {
		case "jpeg", "png", "gif", "webp":
			return "image/" + format, true, nil
		default:
			return "", false, fmt.Errorf("image format %s not allowed", format)
		}
	}
	if mime := sniffVideo(data); mime != "" {
		return mime, false, nil
	}
	return "", false, fmt.Errorf("file is not an accepted image or video")
}

// sniffVideo detects accepted video containers by signature. Videos are stored
// as-is; renditions are never generated, lookups serve the original.
func sniffVideo(data []byte) string {
	switch {
	case len(data) >= 12 && bytes.Equal(data[4:8], []byte("ftyp")):
		if bytes.HasPrefix(data[8:12], []byte("qt")) {
			return "video/quicktime"
		}
		return "video/mp4"
	case len(data) >= 4 && bytes.Equal(data[:4], []byte{0x1A, 0x45, 0xDF, 0xA3}):
		return "video/webm"
	}
	return ""
}

// ProcessImage resizes into named conversions, JPEG quality 90.
func (p *ImageProcessor) ProcessImage(data []byte) (map[string][]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	sizes := map[string]int{"thumb": ThumbSize, "card": CardSize, "web": WebSize}
	conversions := map[string][]byte{}
	for name, size := range sizes {
		resized := imaging.Fit(img, size, size, imaging.Lanczos)
		b := new(bytes.Buffer)
		if err := jpeg.Encode(b, resized, &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("cannot encode %s: %w", name, err)
		}
		conversions[name] = b.Bytes()
	}
	return conversions, nil
}
