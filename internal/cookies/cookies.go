// Package cookies extracts a named session cookie from browser cookie
// stores: Chrome and Firefox SQLite databases and Netscape-format
// text files. SQLite stores are copied to a temporary location before
// opening so a running browser holding the file does not interfere.
package cookies

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Format identifies the layout of a cookie store file.
type Format int

const (
	FormatUnknown Format = iota
	FormatChrome
	FormatFirefox
	FormatNetscape
)

func (f Format) String() string {
	switch f {
	case FormatChrome:
		return "Chrome"
	case FormatFirefox:
		return "Firefox"
	case FormatNetscape:
		return "Netscape"
	default:
		return "unknown"
	}
}

// chromeEpochOffsetSeconds is the number of seconds between the
// Windows NT epoch (1601-01-01) and the Unix epoch. Chrome stores
// cookie expiry as microseconds since the former.
const chromeEpochOffsetSeconds int64 = 11_644_473_600

var sqliteMagic = []byte("SQLite format 3\x00")

var ErrUnknownStore = errors.New("unrecognized cookie store format")

// Lookup returns the value of the named cookie for a domain from a
// browser cookie store, preferring the most specific path and the
// latest expiry when several rows match.
func Lookup(storePath, domain, name string) (string, error) {
	isSQLite, err := hasSQLiteMagic(storePath)
	if err != nil {
		return "", err
	}
	if !isSQLite {
		return lookupNetscape(storePath, domain, name)
	}

	copied, cleanup, err := safeCopy(storePath)
	if err != nil {
		return "", err
	}
	defer cleanup()

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?immutable=1", copied))
	if err != nil {
		return "", fmt.Errorf("cannot open cookie database: %w", err)
	}
	defer db.Close()

	format, err := detectSchema(db)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatChrome:
		return lookupChrome(db, domain, name)
	case FormatFirefox:
		return lookupFirefox(db, domain, name)
	default:
		return "", ErrUnknownStore
	}
}

// hasSQLiteMagic reports whether the file starts with the SQLite
// header.
func hasSQLiteMagic(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, len(sqliteMagic))
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return bytes.Equal(header[:n], sqliteMagic), nil
}

// detectSchema distinguishes Chrome's `cookies` table from Firefox's
// `moz_cookies`.
func detectSchema(db *sql.DB) (Format, error) {
	rows, err := db.Query(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('cookies', 'moz_cookies')`)
	if err != nil {
		return FormatUnknown, fmt.Errorf("cannot inspect cookie database schema: %w", err)
	}
	defer rows.Close()

	format := FormatUnknown
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return FormatUnknown, err
		}
		switch table {
		case "cookies":
			format = FormatChrome
		case "moz_cookies":
			format = FormatFirefox
		}
	}
	return format, rows.Err()
}

// safeCopy copies a SQLite store (plus its -wal/-shm sidecars when
// present) into a temporary directory and returns the copied path and
// a cleanup function.
func safeCopy(sourcePath string) (string, func(), error) {
	tempDir, err := os.MkdirTemp("", "flask-unsign-cookies-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(tempDir) }

	dest := filepath.Join(tempDir, filepath.Base(sourcePath))
	if err := copyFile(sourcePath, dest); err != nil {
		cleanup()
		return "", nil, err
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if _, err := os.Stat(sourcePath + suffix); err == nil {
			if err := copyFile(sourcePath+suffix, dest+suffix); err != nil {
				cleanup()
				return "", nil, err
			}
		}
	}
	return dest, cleanup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func notFound(domain, name string) error {
	return fmt.Errorf("no cookie named %q for domain %q in the cookie store", name, domain)
}
