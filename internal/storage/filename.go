package storage

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces name to a flat ASCII file name: slashes become
// spaces, runs of whitespace become a single underscore, characters outside
// [A-Za-z0-9_.-] are dropped and leading or trailing dots and underscores are
// trimmed. The result may be empty.
func SecureFilename(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	name = b.String()

	name = strings.ReplaceAll(name, "/", " ")
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// UploadName is the stored name for a screenshot uploaded at t.
func UploadName(t time.Time, original string) string {
	return SecureFilename(fmt.Sprintf("%d_%s", t.Unix(), original))
}
