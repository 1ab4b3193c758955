// Package fetch harvests session cookies from remote HTTP(S)
// endpoints that hand them out in Set-Cookie headers.
package fetch

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// DefaultTimeout bounds the whole request; one GET should never take
// longer than this.
const DefaultTimeout = 30 * time.Second

// Options control how the cookie request is made.
type Options struct {
	// UserAgent overrides the request User-Agent header when set.
	UserAgent string

	// Proxy is an optional http://, https:// or socks5:// proxy URL.
	Proxy string

	// Insecure disables TLS certificate verification.
	Insecure bool

	// Timeout replaces DefaultTimeout when positive.
	Timeout time.Duration
}

// Cookie requests rawURL and returns the value of the named cookie
// from the response. Redirects are not followed: session cookies are
// set on the first response, and following a redirect would discard
// its headers.
func Cookie(rawURL, name string, opts *Options) (string, error) {
	if opts == nil {
		opts = &Options{}
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: opts.Insecure},
	}
	if opts.Proxy != "" {
		cfg, err := ParseProxyURL(opts.Proxy)
		if err != nil {
			return "", err
		}
		if err := cfg.apply(transport); err != nil {
			return "", err
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	cookies := resp.Cookies()
	for _, c := range cookies {
		if c.Name == name {
			return c.Value, nil
		}
	}

	if len(cookies) == 0 {
		return "", fmt.Errorf("server did not set any cookies, is %q the right endpoint?", rawURL)
	}
	names := make([]string, len(cookies))
	for i, c := range cookies {
		names[i] = c.Name
	}
	sort.Strings(names)
	return "", fmt.Errorf(
		"server did not set a cookie named %q, got: %s "+
			"(use --cookie-name to pick one of these)",
		name, strings.Join(names, ", "))
}
