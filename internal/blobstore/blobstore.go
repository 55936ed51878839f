// Package blobstore abstracts the external object storage holding uploaded
// credential files. The core only ever deletes objects; uploads happen on the
// applicant side.
package blobstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Deleter removes one object by its storage name. Implementations treat
// deleting an already-deleted object as success, so duplicate cleanup
// attempts are no-ops.
type Deleter interface {
	Delete(ctx context.Context, objectName string) error
}

// ObjectNameFromURL derives the storage object name from a download URL:
// the object path travels URL-encoded as the last path component, so we take
// that component and decode it.
func ObjectNameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse blob url: %w", err)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	encoded := segments[len(segments)-1]
	if encoded == "" {
		return "", fmt.Errorf("blob url %q has no object segment", rawURL)
	}
	name, err := url.PathUnescape(encoded)
	if err != nil {
		return "", fmt.Errorf("decode blob object name: %w", err)
	}
	return name, nil
}
