package callback

import (
	"github.com/oxhq/refract/internal/pattern"
	"github.com/oxhq/refract/internal/xerrors"
)

// Move always fails with ErrUnimplemented. The original implementation's
// move() appended a no-op callback — it validated its arguments and the
// selector kind but never actually relocated anything, leaving physically
// moving a class or function across files as unfinished work upstream
// too. Rather than port a no-op under a name that promises to move code,
// this port surfaces the gap explicitly so a caller can't mistake
// "compiled without error" for "moved the code".
func Move(newModule, filename string) func(m pattern.Match, currentFile string) error {
	return func(m pattern.Match, currentFile string) error {
		return xerrors.NewErrUnimplemented("move")
	}
}
