package cmd

import (
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/paradoxis/flask-unsign/internal/wordlist"
	"github.com/paradoxis/flask-unsign/pkg/cracker"
)

func unsign(ctx *cli.Context) error {
	log := newLogger()
	defer log.Close()

	path := wordlistPath
	if path == "" {
		path = userCfg.Wordlist
	}
	if path == "" {
		return printErrWithCmdHelp(ctx, errors.New("the unsign command requires --wordlist"))
	}

	cookie, err := resolveCookie(log)
	if err != nil {
		log.Error("%s", err)
		return cli.NewExitError("", 1)
	}

	reader, err := wordlist.Open(afero.NewOsFs(), path, !noLiteralEval)
	if err != nil {
		log.Error("%s", err)
		return cli.NewExitError("", 1)
	}
	defer reader.Close()

	workerCount := threads
	if workerCount <= 0 {
		workerCount = userCfg.Threads
	}
	if workerCount <= 0 {
		workerCount = cracker.DefaultThreads
	}
	batchSize := chunkSize
	if batchSize <= 0 {
		batchSize = userCfg.ChunkSize
	}
	if batchSize <= 0 {
		batchSize = cracker.DefaultChunkSize
	}

	var bar *attemptBar
	opts := &cracker.Options{
		Salt:      effectiveSalt(),
		Legacy:    legacy,
		Threads:   workerCount,
		ChunkSize: batchSize,
		Logger:    log,
	}
	if !quiet {
		bar = newAttemptBar()
		opts.Progress = bar
	}

	engine := cracker.New(cookie, opts)

	// SIGINT tears down the wordlist under the workers; the cracker
	// reports that as a clean cancellation.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)
	go func() {
		if _, ok := <-interrupt; ok {
			engine.Cancel()
			reader.Close()
		}
	}()

	log.Info("Starting brute-forcer with %d threads...", opts.Threads)
	secret, err := engine.Crack(reader)
	if bar != nil {
		bar.Finish()
	}

	switch {
	case secret != nil:
		log.Success("Found secret key after %d attempts", engine.Attempts())
		os.Stdout.WriteString(quoteSecret(secret) + "\n")
		return nil

	case errors.Is(err, cracker.ErrCancelled):
		log.Write("Aborted.")
		return cli.NewExitError("", 1)

	case err != nil:
		log.Error("%s", err)
		var fault *cracker.Fault
		if errors.As(err, &fault) && fault.Stack != nil {
			log.Write("%s", fault.Stack)
		}
		return cli.NewExitError("", 1)

	default:
		log.Error("Failed to find secret key after %d attempts", engine.Attempts())
		return cli.NewExitError("", 1)
	}
}
