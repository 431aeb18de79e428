package artifact

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/RyanBlaney/exptable/logging"
)

// Stdout is the destination name that sends the artifact to the writer's stdout
const Stdout = "-"

// Emitter writes rendered artifacts to their destination
type Emitter struct {
	stdout io.Writer
	logger logging.Logger
}

// NewEmitter creates an emitter. stdout receives artifacts whose destination is "-".
func NewEmitter(stdout io.Writer, logger logging.Logger) *Emitter {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	return &Emitter{
		stdout: stdout,
		logger: logger.WithFields(logging.Fields{"component": "emitter"}),
	}
}

// CheckDestination fails when path exists but cannot be overwritten. A missing path is
// fine; problems with its directory surface on write.
func CheckDestination(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return classify(path, err)
	}

	if info.IsDir() {
		return &UnexpectedIOError{Path: path, Err: errors.New("destination is a directory")}
	}
	// a file with every write bit cleared is locked on purpose, even for root
	if perm := info.Mode().Perm(); perm&0o222 == 0 {
		return &PermissionError{Path: path, Err: fmt.Errorf("file is write-protected (mode %v)", perm)}
	}
	if err := accessWritable(path); err != nil {
		return &PermissionError{Path: path, Err: err}
	}

	return nil
}

// Emit checks the destination and then overwrites it with data. The file is truncated
// and rewritten in place, so an interrupted write can leave it partial; re-running the
// generator restores it.
func (e *Emitter) Emit(path string, data []byte) error {
	if path == Stdout {
		if _, err := e.stdout.Write(data); err != nil {
			return &UnexpectedIOError{Path: "stdout", Err: err}
		}
		return nil
	}

	if err := CheckDestination(path); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return classify(path, err)
	}

	e.logger.Info("artifact written", logging.Fields{
		"path":  path,
		"bytes": len(data),
	})
	return nil
}
