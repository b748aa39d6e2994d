package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/oklog/ulid/v2"
)

const maxFilenameLength = 128

// OrderKey builds the object key for a file attached to an order.
// Layout: orders/{orderID}/{role}/{ulid}-{filename}.
func OrderKey(orderID uint, role, filename string) string {
	return fmt.Sprintf("orders/%d/%s/%s-%s", orderID, role, ulid.Make().String(), SanitizeFilename(filename))
}

// StagingKey builds the key for a source file uploaded before its order exists.
func StagingKey(userID uint, filename string) string {
	return fmt.Sprintf("staging/%d/source/%s-%s", userID, ulid.Make().String(), SanitizeFilename(filename))
}

// SanitizeFilename strips directories and anything outside [A-Za-z0-9._-] so the
// result is safe as the last key segment.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}

	out := strings.Trim(b.String(), ".")
	if out == "" {
		out = "file"
	}
	if len(out) > maxFilenameLength {
		out = out[len(out)-maxFilenameLength:]
	}
	return out
}
