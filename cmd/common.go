package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/paradoxis/flask-unsign/internal/cookies"
	"github.com/paradoxis/flask-unsign/internal/fetch"
	"github.com/paradoxis/flask-unsign/internal/wordlist"
	"github.com/paradoxis/flask-unsign/pkg/logger"
	"github.com/paradoxis/flask-unsign/pkg/session"
)

func usageErrorCallback(ctx *cli.Context, err error, _ bool) error {
	if ctx.Command.Name != "" {
		return printErrWithCmdHelp(ctx, err)
	}
	return printErrWithHelp(ctx, err)
}

func printErrWithCmdHelp(ctx *cli.Context, err error) error {
	fmt.Printf("error: %s\n\n", err)
	if herr := cli.ShowCommandHelp(ctx, ctx.Command.Name); herr != nil {
		fmt.Println(herr.Error())
	}
	return cli.NewExitError("", 1)
}

func printErrWithHelp(ctx *cli.Context, err error) error {
	fmt.Printf("error: %s\n\n", err)
	if herr := cli.ShowAppHelp(ctx); herr != nil {
		fmt.Println(herr.Error())
	}
	return cli.NewExitError("", 1)
}

func newLogger() *logger.ConsoleLogger {
	return logger.NewConsoleLogger(os.Stderr, quiet)
}

// resolveCookie obtains the target cookie, in order of precedence:
// the --cookie flag, a --browser-store lookup, a --server fetch,
// and finally stdin.
func resolveCookie(log logger.Logger) (string, error) {
	switch {
	case cookieValue != "":
		return strings.TrimSpace(cookieValue), nil

	case browserStore != "":
		if browserDomain == "" {
			return "", fmt.Errorf("--browser-store requires --browser-domain")
		}
		log.Info("Looking up %q for %s in %s", cookieName, browserDomain, browserStore)
		return cookies.Lookup(browserStore, browserDomain, cookieName)

	case serverURL != "":
		log.Info("Fetching cookie %q from %s", cookieName, serverURL)
		return fetch.Cookie(serverURL, cookieName, &fetch.Options{
			UserAgent: effectiveUserAgent(),
			Proxy:     proxyURL,
			Insecure:  insecure,
		})

	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		cookie := strings.TrimSpace(string(data))
		if cookie == "" {
			return "", fmt.Errorf("no cookie provided, pass one with --cookie or on stdin")
		}
		return cookie, nil
	}
}

// effectiveSalt resolves the salt with literal parsing applied, then
// the config file, then the framework default.
func effectiveSalt() string {
	if saltValue != "" {
		if noLiteralEval {
			return saltValue
		}
		return string(wordlist.Parse(saltValue))
	}
	if userCfg.Salt != "" {
		return userCfg.Salt
	}
	return session.DefaultSalt
}

func effectiveUserAgent() string {
	if userAgent != "" {
		return userAgent
	}
	if userCfg.UserAgent != "" {
		return userCfg.UserAgent
	}
	return "Flask-Unsign/" + version
}

// quoteSecret renders a discovered secret the way wordlists store
// them: as a quoted literal that survives a copy-paste back into
// --secret.
func quoteSecret(secret []byte) string {
	return strconv.Quote(string(secret))
}
