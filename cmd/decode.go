package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/paradoxis/flask-unsign/pkg/session"
)

func decode(ctx *cli.Context) error {
	log := newLogger()
	defer log.Close()

	cookie, err := resolveCookie(log)
	if err != nil {
		log.Error("%s", err)
		return cli.NewExitError("", 1)
	}

	value, err := session.Decode(cookie)
	if err != nil {
		log.Error("%s", err)
		return cli.NewExitError("", 1)
	}

	var out []byte
	if quiet {
		out, err = json.Marshal(value)
	} else {
		out, err = json.MarshalIndent(value, "", "    ")
	}
	if err != nil {
		log.Error("decoded value cannot be rendered as JSON: %s", err)
		return cli.NewExitError("", 1)
	}
	fmt.Println(string(out))
	return nil
}
