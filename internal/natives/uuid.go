package natives

import (
	"github.com/google/uuid"

	"minilang/internal/value"
)

// registerUUID wires the "uuid" module: uuid() returns a fresh random
// UUID as a Str.
func registerUUID(r *Registry) {
	r.register("uuid", "uuid", func(args []value.Object) (value.Object, error) {
		releaseArgs(args)
		return value.NewStr(uuid.NewString()), nil
	})
}
