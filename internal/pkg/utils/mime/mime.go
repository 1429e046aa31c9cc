package mime

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const PDF = "application/pdf"

// extMimeMap refines generic sniffing results for formats phones commonly produce.
var extMimeMap = map[string]string{
	".heic": "image/heic",
	".heif": "image/heif",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".pdf":  PDF,
}

// DetectMimeType sniffs content and falls back to the file extension when
// sniffing only yields application/octet-stream.
func DetectMimeType(content []byte, filename string) string {
	contentType := mimetype.Detect(content).String()
	if contentType != "application/octet-stream" {
		return contentType
	}
	if refined, ok := extMimeMap[strings.ToLower(filepath.Ext(filename))]; ok {
		return refined
	}
	return contentType
}

func baseType(contentType string) string {
	return strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
}

// IsReceipt reports whether a MIME type is acceptable for a payment receipt.
func IsReceipt(contentType string) bool {
	return IsImage(contentType) || baseType(contentType) == PDF
}

// IsImage reports whether a MIME type is an image. Site images use it.
func IsImage(contentType string) bool {
	return strings.HasPrefix(baseType(contentType), "image/")
}
