package mime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestDetectMimeType(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		filename string
		want     string
	}{
		{"png by content", pngHeader, "slip.bin", "image/png"},
		{"pdf by content", []byte("%PDF-1.7\n%âãÏÓ\n"), "receipt", PDF},
		{"unknown bytes with heic ext", []byte{0x00, 0x01, 0x02, 0x03}, "IMG_0001.HEIC", "image/heic"},
		{"unknown bytes unknown ext", []byte{0x00, 0x01, 0x02, 0x03}, "blob.xyz", "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMimeType(tt.content, tt.filename))
		})
	}
}

func TestIsReceipt(t *testing.T) {
	assert.True(t, IsReceipt("image/jpeg"))
	assert.True(t, IsReceipt("application/pdf"))
	assert.True(t, IsReceipt("application/pdf; charset=binary"))
	assert.False(t, IsReceipt("text/plain; charset=utf-8"))
	assert.False(t, IsReceipt("application/zip"))
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/webp"))
	assert.True(t, IsImage(" image/png; charset=binary"))
	assert.False(t, IsImage(PDF))
	assert.False(t, IsImage("text/plain"))
}
