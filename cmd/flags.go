package cmd

import "github.com/urfave/cli"

var (
	cookieValue   string
	serverURL     string
	cookieName    string
	userAgent     string
	proxyURL      string
	insecure      bool
	browserStore  string
	browserDomain string
	quiet         bool

	secretValue   string
	saltValue     string
	legacy        bool
	noLiteralEval bool

	wordlistPath string
	threads      int
	chunkSize    int
)

// cookieSourceFlags are shared by every command that needs to obtain
// a cookie: an explicit value, stdin, a remote server or a local
// browser cookie store.
var cookieSourceFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "cookie, c",
		Usage:       "session cookie string (read from stdin when omitted)",
		Destination: &cookieValue,
	},
	cli.StringFlag{
		Name:        "server",
		Usage:       "fetch the session cookie from a remote HTTP(S) server that returns a Set-Cookie header",
		Destination: &serverURL,
	},
	cli.StringFlag{
		Name:        "cookie-name",
		Usage:       "name of the cookie holding the session, for --server and --browser-store",
		Value:       "session",
		Destination: &cookieName,
	},
	cli.StringFlag{
		Name:        "user-agent, U",
		Usage:       "custom User-Agent for --server requests",
		Destination: &userAgent,
	},
	cli.StringFlag{
		Name:        "proxy, p",
		Usage:       "http://, https:// or socks5:// proxy for --server requests",
		Destination: &proxyURL,
	},
	cli.BoolFlag{
		Name:        "insecure, k",
		Usage:       "disable TLS certificate verification for --server requests",
		Destination: &insecure,
	},
	cli.StringFlag{
		Name:        "browser-store",
		Usage:       "path to a Chrome/Firefox SQLite or Netscape cookie store to pull the session cookie from",
		Destination: &browserStore,
	},
	cli.StringFlag{
		Name:        "browser-domain",
		Usage:       "domain to look up in the --browser-store file",
		Destination: &browserDomain,
	},
	cli.BoolFlag{
		Name:        "quiet, q",
		Usage:       "disable verbose logging, only print usable output",
		Destination: &quiet,
	},
}

var signingFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "salt",
		Usage:       "custom key-derivation salt (rarely changed from the framework default)",
		Destination: &saltValue,
	},
	cli.BoolFlag{
		Name:        "legacy, l",
		Usage:       "use the legacy timestamp epoch of pre-fix signer versions",
		Destination: &legacy,
	},
	cli.BoolFlag{
		Name:        "no-literal-eval, E",
		Usage:       "use secrets, salts and wordlist lines verbatim instead of parsing them as quoted literals",
		Destination: &noLiteralEval,
	},
}

var decodeFlags = cookieSourceFlags

var signFlags = append([]cli.Flag{
	cli.StringFlag{
		Name:        "secret, S",
		Usage:       "secret key to sign the session with, generally uncovered with unsign",
		Destination: &secretValue,
	},
	cli.StringFlag{
		Name:        "cookie, c",
		Usage:       "JSON session value to sign (read from stdin when omitted)",
		Destination: &cookieValue,
	},
	cli.BoolFlag{
		Name:        "quiet, q",
		Usage:       "disable verbose logging, only print usable output",
		Destination: &quiet,
	},
}, signingFlags...)

var unsignFlags = append(append([]cli.Flag{
	cli.StringFlag{
		Name:        "wordlist, w",
		Usage:       "wordlist of candidate secret keys, one quoted literal per line",
		Destination: &wordlistPath,
	},
	cli.IntFlag{
		Name:        "threads, t",
		Usage:       "number of workers to brute-force the secret key with",
		Destination: &threads,
	},
	cli.IntFlag{
		Name:        "chunk-size",
		Usage:       "number of candidates a worker pulls per cycle",
		Destination: &chunkSize,
	},
}, signingFlags...), cookieSourceFlags...)
