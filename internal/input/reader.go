package input

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/Taichi-iskw/yt-export/internal/errors"
)

// commentPrefix marks lines that are ignored
const commentPrefix = "#"

// ReadFile reads channel references from a text file, one per line
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidArg, "failed to open input file")
	}
	defer f.Close()

	return Read(f)
}

// Read returns the trimmed lines of r in order, without blank lines and
// lines starting with '#'
func Read(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to read input")
	}

	return lines, nil
}
