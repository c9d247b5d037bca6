// Package canonjson renders JSON documents in a canonical form so that
// byte-level comparison and content hashing are stable across payloads
// that differ only in key order or whitespace.
package canonjson

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
)

var api = sonic.Config{
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

// Marshal encodes v compactly with object keys sorted.
func Marshal(v any) ([]byte, error) {
	out, err := api.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "canonjson: marshal")
	}
	return out, nil
}

// Normalize re-encodes a raw JSON document into canonical form. Numbers
// are carried through as-is rather than round-tripped via float64.
func Normalize(raw []byte) ([]byte, error) {
	var doc any
	if err := api.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "canonjson: parse")
	}
	return Marshal(doc)
}

// Hash returns the hex sha256 digest of the canonical encoding of v,
// along with the canonical bytes themselves.
func Hash(v any) ([]byte, string, error) {
	canonical, err := Marshal(v)
	if err != nil {
		return nil, "", err
	}
	sum := sha256.Sum256(canonical)
	return canonical, hex.EncodeToString(sum[:]), nil
}
