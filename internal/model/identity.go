package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// AttentionID derives the content-addressed identifier for an item from its
// four identity fields. The digest is stable across processes, which is what
// lets overlay rows written against one computation address items produced
// by a later, independent one.
//
// Each field is length-prefixed before hashing so the encoding is injective:
// ("a|b", "c") and ("a", "b|c") hash differently no matter what bytes the
// values contain.
func AttentionID(sourceType SourceType, sourceID string, attentionType AttentionType, reasonCode string) string {
	h := sha256.New()
	for _, field := range []string{string(sourceType), sourceID, string(attentionType), reasonCode} {
		h.Write([]byte(strconv.Itoa(len(field))))
		h.Write([]byte(":"))
		h.Write([]byte(field))
	}
	return hex.EncodeToString(h.Sum(nil))[:32]
}

// EnsureID fills in the item's AttentionID from its identity fields.
// Collectors call this after classification; an already-set id is recomputed
// so a stale value can never diverge from the identity fields.
func (it *AttentionItem) EnsureID() {
	it.AttentionID = AttentionID(it.SourceType, it.SourceID, it.AttentionType, it.ReasonCode)
}
