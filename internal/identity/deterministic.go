package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Keys are namespaced by callers (see PostUUID) so that ids of different
// entities never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// NormalizeSourceID lower-cases a Notion id and drops its dashes, so the
// dashed and compact spellings of the same page map to one key.
func NormalizeSourceID(id string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), "-", "")
}

// PostUUID is the id of the post imported from a Notion page.
func PostUUID(sourceID string) uuid.UUID {
	normalized := NormalizeSourceID(sourceID)
	if normalized == "" {
		return uuid.Nil
	}
	return UUID("notion2wp:post:" + normalized)
}
