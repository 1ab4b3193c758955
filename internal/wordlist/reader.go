// Package wordlist turns dictionary files into candidate-secret
// streams for the cracker. Files are read line by line through an
// afero filesystem so tests can run against in-memory fixtures.
package wordlist

import (
	"bufio"
	"io"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/paradoxis/flask-unsign/pkg/cracker"
)

// maxLineSize bounds a single wordlist entry. Secret keys longer than
// this are not realistic dictionary material.
const maxLineSize = 1 << 20

// Reader streams candidates from a wordlist file. It implements
// cracker.Source; a Reader closed mid-run reports ErrSourceClosed on
// subsequent pulls, which the cracker treats as a clean abort.
type Reader struct {
	mu      sync.Mutex
	file    afero.File
	scanner *bufio.Scanner
	parse   bool
	closed  bool
}

// Open opens a wordlist. When parseLines is true each line is
// interpreted as a Python string literal (see Parse); otherwise lines
// are used verbatim after whitespace trimming.
func Open(fs afero.Fs, path string, parseLines bool) (*Reader, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{
		file:    file,
		scanner: scanner,
		parse:   parseLines,
	}, nil
}

// Next returns the next candidate. io.EOF signals exhaustion.
func (r *Reader) Next() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, cracker.ErrSourceClosed
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			if r.closed || isClosedFile(err) {
				return nil, cracker.ErrSourceClosed
			}
			return nil, err
		}
		return nil, io.EOF
	}
	line := r.scanner.Text()
	if r.parse {
		return Parse(line), nil
	}
	return []byte(strings.TrimSpace(line)), nil
}

// Close tears down the underlying file. Safe to call while a crack
// run is still pulling; readers observe ErrSourceClosed afterwards.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

func isClosedFile(err error) bool {
	return strings.Contains(err.Error(), "file already closed") ||
		strings.Contains(err.Error(), "closed")
}
