package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sudt.dev/validator/crypto"
	"sudt.dev/validator/node"
	"sudt.dev/validator/node/store"
)

func (a *app) rootCmd() *cobra.Command {
	defaults := node.DefaultConfig()
	root := &cobra.Command{
		Use:           "sudt-node",
		Short:         "Validate sUDT token transactions against a local cell store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "JSON config file")
	f.StringVar(&a.flags.DataDir, "datadir", defaults.DataDir, "node data directory")
	f.StringVar(&a.flags.LogLevel, "log-level", defaults.LogLevel, "log level: debug|info|warn|error")
	f.StringVar(&a.flags.LogFile, "log-file", "", "rotated JSON log file")
	f.StringVar(&a.flags.HashAlgo, "hash-algo", defaults.HashAlgo, "script hash algorithm: blake2b|sha3")
	f.StringVar(&a.flags.CodeHashHex, "code-hash", defaults.CodeHashHex, "sUDT script code hash (hex)")
	f.StringVar(&a.flags.HashType, "hash-type", defaults.HashType, "sUDT script hash type")
	f.StringVar(&a.flags.MetricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after validate")

	root.AddCommand(
		a.validateCmd(),
		a.importCmd(),
		a.cellsCmd(),
		a.lockHashCmd(),
		a.configCmd(),
	)
	return root
}

// loadConfig layers explicitly set flags over the config file, or over the
// defaults when no file is given.
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg := node.DefaultConfig()
	if a.configPath != "" {
		loaded, err := node.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	overrides := []struct {
		name string
		dst  *string
		val  string
	}{
		{"datadir", &cfg.DataDir, a.flags.DataDir},
		{"log-level", &cfg.LogLevel, a.flags.LogLevel},
		{"log-file", &cfg.LogFile, a.flags.LogFile},
		{"hash-algo", &cfg.HashAlgo, a.flags.HashAlgo},
		{"code-hash", &cfg.CodeHashHex, a.flags.CodeHashHex},
		{"hash-type", &cfg.HashType, a.flags.HashType},
		{"metrics-textfile", &cfg.MetricsTextfile, a.flags.MetricsTextfile},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.name) {
			*o.dst = o.val
		}
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := node.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger, err := node.NewLogger(cfg)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) openStore() (*store.DB, error) {
	hasher, err := crypto.ProviderByName(a.cfg.HashAlgo)
	if err != nil {
		return nil, err
	}
	return store.Open(a.cfg.DataDir, hasher)
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.printJSON(a.cfg)
		},
	}
}

func (a *app) lockHashCmd() *cobra.Command {
	var s node.ScriptJSON
	cmd := &cobra.Command{
		Use:   "lock-hash",
		Short: "Print the credential hash of a script",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			script, err := s.Script()
			if err != nil {
				return err
			}
			hasher, err := crypto.ProviderByName(a.cfg.HashAlgo)
			if err != nil {
				return err
			}
			h := script.Hash(hasher)
			_, err = fmt.Fprintf(a.stdout, "0x%x\n", h)
			return err
		},
	}
	// Flag names differ from the root's --code-hash/--hash-type, which select
	// the sUDT script rather than the script being hashed.
	cmd.Flags().StringVar(&s.CodeHash, "script-code-hash", "", "code hash of the script (hex)")
	cmd.Flags().StringVar(&s.HashType, "script-hash-type", "type", "hash type of the script")
	cmd.Flags().StringVar(&s.Args, "script-args", "", "script args (hex)")
	_ = cmd.MarkFlagRequired("script-code-hash")
	return cmd
}
