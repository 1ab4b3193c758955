package fetch

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func cookieServer(t *testing.T, cookies ...*http.Cookie) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, c := range cookies {
			http.SetCookie(w, c)
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCookieFound(t *testing.T) {
	srv := cookieServer(t,
		&http.Cookie{Name: "tracking", Value: "x"},
		&http.Cookie{Name: "session", Value: "eyJhIjoxfQ.XDuWxQ.sig"},
	)
	defer srv.Close()

	got, err := Cookie(srv.URL, "session", nil)
	if err != nil {
		t.Fatalf("Cookie: %v", err)
	}
	if got != "eyJhIjoxfQ.XDuWxQ.sig" {
		t.Errorf("value = %q", got)
	}
}

func TestCookieMissingNameListsCandidates(t *testing.T) {
	srv := cookieServer(t, &http.Cookie{Name: "sess_id", Value: "x"})
	defer srv.Close()

	_, err := Cookie(srv.URL, "session", nil)
	if err == nil {
		t.Fatal("expected an error for a missing cookie")
	}
	if !strings.Contains(err.Error(), "sess_id") {
		t.Errorf("error should name the cookies that were seen, got: %v", err)
	}
}

func TestCookieNoCookiesAtAll(t *testing.T) {
	srv := cookieServer(t)
	defer srv.Close()

	if _, err := Cookie(srv.URL, "session", nil); err == nil {
		t.Fatal("expected an error when the server sets no cookies")
	}
}

func TestCookieDoesNotFollowRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "first-response"})
			http.Redirect(w, r, "/next", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	got, err := Cookie(srv.URL, "session", nil)
	if err != nil {
		t.Fatalf("Cookie: %v", err)
	}
	if got != "first-response" {
		t.Errorf("value = %q, want the cookie from the first response", got)
	}
}

func TestCookieUserAgent(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("User-Agent")
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "x"})
	}))
	defer srv.Close()

	if _, err := Cookie(srv.URL, "session", &Options{UserAgent: "Flask-Unsign/test"}); err != nil {
		t.Fatalf("Cookie: %v", err)
	}
	if seen != "Flask-Unsign/test" {
		t.Errorf("User-Agent = %q", seen)
	}
}

func TestCookieTLSVerification(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "x"})
	}))
	defer srv.Close()

	if _, err := Cookie(srv.URL, "session", nil); err == nil {
		t.Error("self-signed certificate should fail without --insecure")
	}
	if _, err := Cookie(srv.URL, "session", &Options{Insecure: true}); err != nil {
		t.Errorf("insecure mode should accept a self-signed certificate, got %v", err)
	}
}

func TestCookieBadProxy(t *testing.T) {
	if _, err := Cookie("http://example.invalid", "session", &Options{Proxy: "ftp://nope"}); err != ErrUnsupportedScheme {
		t.Errorf("err = %v, want ErrUnsupportedScheme", err)
	}
}
