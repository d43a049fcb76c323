package util

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return info.IsDir()
}

// TruncateString cuts s to keep characters plus an ellipsis when it is
// longer than max. Used to keep logged webservice URLs readable.
func TruncateString(s string, max, keep int) string {
	if len(s) <= max {
		return s
	}
	return s[:keep] + "..."
}

// SanitizeIdent makes an arbitrary table/column name safe to splice into a
// sqlite DDL statement: anything outside [A-Za-z0-9_] becomes "_".
func SanitizeIdent(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
