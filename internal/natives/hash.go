package natives

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"minilang/internal/value"
)

// registerHash wires the "hash" module: sha3(s) returns the hex-encoded
// SHA3-256 digest of a Str as a Str.
func registerHash(r *Registry) {
	r.register("hash", "sha3", func(args []value.Object) (value.Object, error) {
		s, err := argStr(args, 0)
		releaseArgs(args)
		if err != nil {
			return nil, err
		}
		sum := sha3.Sum256([]byte(s))
		return value.NewStr(hex.EncodeToString(sum[:])), nil
	})
}
