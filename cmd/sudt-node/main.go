package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"sudt.dev/validator/consensus"
	"sudt.dev/validator/node"
)

// exitError is returned for failures that are not a token verdict: bad flags,
// unreadable files, store errors. Verdict statuses occupy 1..7.
const exitError = 64

type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	flags      node.Config

	cfg    node.Config
	logger *zap.Logger
	exit   int
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		var te *consensus.TxError
		if errors.As(err, &te) {
			if status, ok := te.Code.Status(); ok {
				return int(status)
			}
		}
		return exitError
	}
	return a.exit
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
