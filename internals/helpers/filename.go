package helper

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
var repeatedUnderscores = regexp.MustCompile(`_{2,}`)

// SanitizeFilename strips URL encoding and anything unsafe for object keys.
func SanitizeFilename(filename string) string {
	if filename == "" {
		return "unnamed_file"
	}
	if decoded, err := url.QueryUnescape(filename); err == nil {
		filename = decoded
	}

	// Drop any client-supplied directory components.
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = path.Base(filename)
	if filename == "/" || filename == "." {
		return "unnamed_file"
	}

	name := filename
	ext := ""
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		name, ext = filename[:idx], filename[idx:]
		ext = unsafeFilenameChars.ReplaceAllString(ext, "")
	}

	name = strings.ReplaceAll(name, " ", "")
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = repeatedUnderscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "file"
	}
	if len(name) > 50 {
		name = name[:50]
	}
	return strings.ToLower(name + ext)
}

// GenerateUniqueFilename prefixes the sanitized name with a date and uuid so
// object keys never collide.
func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), SanitizeFilename(originalFilename))
}
