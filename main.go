package main

import (
	"fmt"
	"os"

	"github.com/paradoxis/flask-unsign/cmd"
)

func main() {
	err := cmd.Execute(os.Args)
	if err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Printf("flask-unsign: %s\n", msg)
		}
		os.Exit(1)
	}
}
