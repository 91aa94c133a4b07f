package natives

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"minilang/internal/value"
)

// DumpLiveObjects writes the debug side-channel line reporting how many
// refcounted objects are still outstanding when the interpreter shuts
// down, with a human-readable byte estimate of their resident size.
func DumpLiveObjects(w io.Writer) {
	n := value.LiveObjects()
	const approxBytesPerObject = 48
	size := uint64(n) * approxBytesPerObject
	fmt.Fprintf(w, "%d live objects, %s resident\n", n, humanize.Bytes(size))
}
