package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted stores code go/format rejected as
// <name>.unformatted.go in dir, so the template output can be inspected.
// Errors are ignored by callers; the formatting error is what gets reported.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(dir, debugName), content, filePerm)
}
