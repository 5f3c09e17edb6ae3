package ingest

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// DecodeObjectKey decodes the URL-encoded object key carried by bucket
// notifications ('+' for spaces, percent-escapes for the rest).
func DecodeObjectKey(raw string) (string, error) {
	key, err := url.QueryUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("invalid object key %q: %w", raw, err)
	}
	return key, nil
}

// PublishedKey derives the destination key for a processed derivative:
// the incoming prefix becomes the published prefix and the file extension
// becomes the output format's. Deterministic, so re-delivered events
// overwrite the same object.
func PublishedKey(incomingKey, incomingPrefix, publishedPrefix string) string {
	rel := strings.TrimPrefix(incomingKey, incomingPrefix)
	rel = strings.TrimSuffix(rel, path.Ext(rel)) + OutputExtension
	return publishedPrefix + rel
}
