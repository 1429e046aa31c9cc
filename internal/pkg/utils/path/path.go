package path

import (
	"errors"
	"strings"
)

// ObjectsPrefix is the public URL prefix under which stored objects are served.
const ObjectsPrefix = "/objects/"

var (
	ErrEmptyPath     = errors.New("path cannot be empty")
	ErrInvalidPath   = errors.New("path format is invalid")
	ErrPathTraversal = errors.New("path contains directory traversal")
)

// ValidateKey rejects empty keys, traversal segments and null bytes.
func ValidateKey(key string) error {
	if strings.Trim(key, "/") == "" {
		return ErrEmptyPath
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" {
			continue
		}
		if strings.Trim(part, ".") == "" {
			return ErrPathTraversal
		}
		if strings.Contains(part, "\x00") {
			return ErrInvalidPath
		}
	}
	return nil
}

// ObjectKey extracts the bucket key from a stored receipt path. It accepts
// "/objects/<key>", a bare "<key>" or a full URL whose path holds "/objects/<key>".
func ObjectKey(p string) (string, error) {
	p = strings.TrimSpace(p)
	if i := strings.Index(p, "?"); i >= 0 {
		p = p[:i]
	}
	if i := strings.Index(p, ObjectsPrefix); i >= 0 {
		p = p[i+len(ObjectsPrefix):]
	}
	key := strings.TrimLeft(p, "/")
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// ObjectPath is the inverse of ObjectKey.
func ObjectPath(key string) string {
	return ObjectsPrefix + strings.TrimLeft(key, "/")
}
