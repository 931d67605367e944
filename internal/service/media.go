package service

import (
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases s and collapses anything non-alphanumeric into
// single hyphens.
func slugify(s string) string {
	slug := nonSlugRe.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

// UserImagePath builds the storage path for a user's profile image.
// A random suffix keeps successive uploads from colliding.
func UserImagePath(username, filename string) string {
	return mediaPath("media/uploads/users", username, filename)
}

// PostImagePath builds the storage path for a post's media image.
func PostImagePath(username, filename string) string {
	return mediaPath("media/uploads/posts", username, filename)
}

func mediaPath(prefix, owner, filename string) string {
	ext := path.Ext(filename)
	base := slugify(strings.TrimSuffix(path.Base(filename), ext))
	if base == "" {
		base = "upload"
	}
	name := base + "-" + uuid.New().String()[:8] + ext
	return path.Join(prefix, slugify(owner), name)
}
