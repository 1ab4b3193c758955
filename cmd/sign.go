package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/paradoxis/flask-unsign/internal/wordlist"
	"github.com/paradoxis/flask-unsign/pkg/session"
)

func sign(ctx *cli.Context) error {
	log := newLogger()
	defer log.Close()

	if secretValue == "" {
		return printErrWithCmdHelp(ctx, errors.New("the sign command requires --secret"))
	}

	raw := cookieValue
	if raw == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Error("%s", err)
			return cli.NewExitError("", 1)
		}
		raw = string(data)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return printErrWithCmdHelp(ctx, errors.New("no session value provided, pass JSON with --cookie or on stdin"))
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var value interface{}
	if err := dec.Decode(&value); err != nil {
		log.Error("session value is not valid JSON: %s", err)
		return cli.NewExitError("", 1)
	}

	var secret interface{} = secretValue
	if !noLiteralEval {
		secret = wordlist.Parse(secretValue)
	}

	cookie, err := session.Sign(value, secret, effectiveSalt(), legacy)
	if err != nil {
		log.Error("%s", err)
		return cli.NewExitError("", 1)
	}

	log.Info("Session signed successfully")
	fmt.Println(cookie)
	return nil
}
