package storage

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/nfnt/resize"
)

// MaxImageWidth is the widest image kept as uploaded; wider JPEG and PNG
// files are scaled down before they are stored.
const MaxImageWidth = 1280

func readUpload(file *multipart.FileHeader) ([]byte, string, error) {
	f, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}

	return content, detectContentType(content), nil
}

func detectContentType(content []byte) string {
	contentType := mimetype.Detect(content).String()
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return contentType
}

func prepareImage(content []byte, contentType string) []byte {
	var (
		img image.Image
		err error
	)
	switch contentType {
	case "image/png":
		img, err = png.Decode(bytes.NewReader(content))
	case "image/jpeg":
		img, err = jpeg.Decode(bytes.NewReader(content))
	default:
		return content
	}
	if err != nil || img.Bounds().Dx() <= MaxImageWidth {
		return content
	}

	resized := resize.Resize(MaxImageWidth, 0, img, resize.Lanczos3)

	out := new(bytes.Buffer)
	if contentType == "image/png" {
		err = png.Encode(out, resized)
	} else {
		err = jpeg.Encode(out, resized, &jpeg.Options{Quality: 80})
	}
	if err != nil {
		return content
	}
	return out.Bytes()
}

func extensionFor(contentType, filename string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	return strings.ToLower(filepath.Ext(filename))
}
