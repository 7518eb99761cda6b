package checkpointer

import (
	"fmt"

	"github.com/google/uuid"
)

// fileEnumerator enumerates filenames
type fileEnumerator struct {
	i         int
	name      string
	extension string
}

// filename returns the name of the next consecutive enumerated file
func (f *fileEnumerator) filename() string {
	f.i++
	return fmt.Sprintf("%s%d%s", f.name, f.i, f.extension)
}

// FilenameEnumerator returns a function which will return filenames
// with a counter integer suffix. Each time the returned function is
// called, the counter suffix will be one higher than on the previous
// call, with the first call returning start+1. The filename parameter
// is the full filename with its path, while the extension parameter
// determines the file extension.
func FilenameEnumerator(start int, filename, extension string) func() string {
	enum := fileEnumerator{i: start, name: filename, extension: extension}
	return enum.filename
}

// RunEnumerator is like FilenameEnumerator but places the run ID
// between the filename and the counter, so that runs sharing a
// directory do not overwrite each other's checkpoints
func RunEnumerator(run uuid.UUID, filename, extension string) func() string {
	return FilenameEnumerator(0, fmt.Sprintf("%s-%s-", filename, run),
		extension)
}
