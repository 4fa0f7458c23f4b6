// Package logging routes the standard logger to a per-command file under the log directory
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lixenwraith/genopt/parameter"
)

// MaxLogSize is the size above which an existing log file is rotated on setup
const MaxLogSize = 10 * 1024 * 1024

// Setup sends log output to <LogDir>/fileName in debug mode and discards it otherwise.
// An oversized existing file is renamed with a timestamp suffix first.
// The returned file is nil unless logging is enabled.
func Setup(debug bool, fileName string) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(parameter.LogDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(parameter.LogDir, fileName)
	rotate(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

// rotate renames path when it exceeds MaxLogSize; failures leave the file in place
func rotate(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= MaxLogSize {
		return
	}

	ext := filepath.Ext(path)
	rotated := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(path, ext), time.Now().Format("20060102-150405"), ext)
	_ = os.Rename(path, rotated)
}
