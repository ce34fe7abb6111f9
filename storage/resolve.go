package storage

import (
	"net/url"
	"strings"
)

// publicMarker is the fixed segment the storage service places before the
// bucket name in public object URLs.
const publicMarker = "/storage/v1/object/public/"

// ResolveObjectPath maps a stored public URL back to the object path inside
// expectedBucket. It returns ok=false when the URL is empty, malformed, does
// not contain the public marker, or names a different bucket. All of those
// mean "nothing to delete", never an error. Many videos legitimately point at
// external hosts or have no stored file at all.
func ResolveObjectPath(publicURL, expectedBucket string) (string, bool) {
	if publicURL == "" || expectedBucket == "" {
		return "", false
	}

	u, err := url.Parse(publicURL)
	if err != nil {
		return "", false
	}

	// Work on the escaped form so the single decode below cannot double-decode
	p := u.EscapedPath()
	idx := strings.Index(p, publicMarker)
	if idx < 0 {
		return "", false
	}

	rest := p[idx+len(publicMarker):]
	bucket, objectPath, found := strings.Cut(rest, "/")
	if !found || bucket != expectedBucket || objectPath == "" {
		return "", false
	}

	decoded, err := url.PathUnescape(objectPath)
	if err != nil {
		return "", false
	}
	return decoded, true
}
