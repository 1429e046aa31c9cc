package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"objects path", "/objects/receipts/abc", "receipts/abc", nil},
		{"bare key", "receipts/abc", "receipts/abc", nil},
		{"presigned url", "https://bucket.s3.test/objects/receipts/abc?X-Amz-Signature=1", "receipts/abc", nil},
		{"traversal", "/objects/../secrets", "", ErrPathTraversal},
		{"empty", "/objects/", "", ErrEmptyPath},
		{"null byte", "receipts/a\x00b", "", ErrInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ObjectKey(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestObjectPath(t *testing.T) {
	assert.Equal(t, "/objects/receipts/abc", ObjectPath("receipts/abc"))
	assert.Equal(t, "/objects/receipts/abc", ObjectPath("/receipts/abc"))
}
