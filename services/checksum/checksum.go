package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"facilityops/pkg/errutil"
)

// Compute returns the hex sha256 digest of the canonical JSON encoding of v.
// Snapshot types use only structs and slices, so encoding/json yields a stable
// byte sequence and the digest is deterministic.
func Compute(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", errutil.Serialization("failed to serialize dataset for checksum", errutil.WithErr(err))
	}

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
