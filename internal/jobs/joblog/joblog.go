// Package joblog appends lines to the log files written by the maintenance jobs.
package joblog

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// Appender appends lines to a single file, creating it when missing.
type Appender struct {
	fs   afero.Fs
	path string
}

// NewAppender creates an Appender for path on fs.
func NewAppender(fs afero.Fs, path string) *Appender {
	return &Appender{fs: fs, path: path}
}

// Path returns the file the appender writes to.
func (a *Appender) Path() string {
	return a.path
}

// Append writes each line followed by a newline in a single write.
func (a *Appender) Append(lines ...string) error {
	if len(lines) == 0 {
		return nil
	}

	f, err := a.fs.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", a.path, err)
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()

		return fmt.Errorf("failed to write %s: %w", a.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", a.path, err)
	}

	return nil
}
