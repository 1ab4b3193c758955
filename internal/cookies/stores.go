package cookies

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// row is one candidate cookie considered during lookup.
type row struct {
	host   string
	path   string
	value  string
	expiry int64 // unix seconds, 0 = session cookie
}

// pick returns the best matching value: the most specific path, then
// the latest expiry. Domain matching happens here rather than in SQL
// so a `.example.com` cookie covers `app.example.com` the way a
// browser would send it.
func pick(rows []row, domain, name string) (string, error) {
	var (
		found bool
		best  row
	)
	now := time.Now().Unix()
	for _, r := range rows {
		if !domainMatches(r.host, domain) {
			continue
		}
		if r.expiry != 0 && r.expiry <= now {
			continue
		}
		if !found ||
			len(r.path) > len(best.path) ||
			(len(r.path) == len(best.path) && r.expiry > best.expiry) {
			found = true
			best = r
		}
	}
	if !found {
		return "", notFound(domain, name)
	}
	return best.value, nil
}

// lookupChrome reads the named cookie from a Chrome cookies database.
// Encrypted rows (empty value column) cannot be used and are skipped.
func lookupChrome(db *sql.DB, domain, name string) (string, error) {
	res, err := db.Query(`
        SELECT host_key, path, value, expires_utc
        FROM cookies
        WHERE name = ? AND value != ''
    `, name)
	if err != nil {
		return "", fmt.Errorf("failed to query Chrome cookies: %w", err)
	}
	defer res.Close()

	var rows []row
	for res.Next() {
		var r row
		var expiresUTC int64
		if err := res.Scan(&r.host, &r.path, &r.value, &expiresUTC); err != nil {
			return "", fmt.Errorf("failed to scan Chrome cookie row: %w", err)
		}
		// Chrome stores expiry as microseconds since 1601-01-01.
		r.expiry = expiresUTC/1_000_000 - chromeEpochOffsetSeconds
		rows = append(rows, r)
	}
	if err := res.Err(); err != nil {
		return "", fmt.Errorf("failed to iterate Chrome cookie rows: %w", err)
	}
	return pick(rows, domain, name)
}

// lookupFirefox reads the named cookie from a Firefox cookies.sqlite
// database.
func lookupFirefox(db *sql.DB, domain, name string) (string, error) {
	res, err := db.Query(`
        SELECT host, path, value, expiry
        FROM moz_cookies
        WHERE name = ?
    `, name)
	if err != nil {
		return "", fmt.Errorf("failed to query Firefox cookies: %w", err)
	}
	defer res.Close()

	var rows []row
	for res.Next() {
		var r row
		if err := res.Scan(&r.host, &r.path, &r.value, &r.expiry); err != nil {
			return "", fmt.Errorf("failed to scan Firefox cookie row: %w", err)
		}
		rows = append(rows, r)
	}
	if err := res.Err(); err != nil {
		return "", fmt.Errorf("failed to iterate Firefox cookie rows: %w", err)
	}
	return pick(rows, domain, name)
}

// lookupNetscape scans a Netscape-format cookie file: seven
// tab-separated fields per line, `#` comments, with the #HttpOnly_
// prefix convention on domains.
func lookupNetscape(path, domain, name string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var rows []row
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")

		if strings.HasPrefix(line, "#HttpOnly_") {
			line = strings.TrimPrefix(line, "#HttpOnly_")
		} else if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			return "", fmt.Errorf("malformed Netscape cookie line: expected 7 fields, got %d", len(fields))
		}
		expiry, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return "", fmt.Errorf("malformed Netscape cookie expiry %q", fields[4])
		}
		if fields[5] != name {
			continue
		}
		rows = append(rows, row{
			host:   fields[0],
			path:   fields[2],
			value:  fields[6],
			expiry: expiry,
		})
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return pick(rows, domain, name)
}

// domainMatches reports whether a cookie host covers the requested
// domain, honoring the leading-dot convention for subdomain cookies.
func domainMatches(host, domain string) bool {
	host = strings.TrimPrefix(host, ".")
	return host == domain || strings.HasSuffix(domain, "."+host)
}
