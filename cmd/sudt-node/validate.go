package main

import (
	"encoding/hex"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sudt.dev/validator/node"
	"sudt.dev/validator/node/store"
)

type groupOut struct {
	TypeHash  string   `json:"type_hash"`
	Args      string   `json:"args"`
	Status    int8     `json:"status"`
	Accepted  bool     `json:"accepted"`
	OwnerMode bool     `json:"owner_mode"`
	InputSum  string   `json:"input_sum,omitempty"`
	OutputSum string   `json:"output_sum,omitempty"`
	Trace     []string `json:"trace,omitempty"`
	Err       string   `json:"err,omitempty"`
}

type validateOut struct {
	TxHash  string     `json:"tx_hash"`
	Status  int8       `json:"status"`
	Groups  []groupOut `json:"groups"`
	Applied bool       `json:"applied,omitempty"`
}

func (a *app) validateCmd() *cobra.Command {
	var txPath string
	var apply bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate every sUDT group of a transaction",
		Long: "Validate every sUDT group of a transaction. Inputs given as previous_output\n" +
			"are resolved from the cell store. The exit status is that of the first\n" +
			"rejected group, 0 when all groups accept.",
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.validate(txPath, apply)
		},
	}
	cmd.Flags().StringVar(&txPath, "tx", "", "transaction JSON file")
	cmd.Flags().BoolVar(&apply, "apply", false, "commit an accepted transaction to the cell store")
	_ = cmd.MarkFlagRequired("tx")
	return cmd
}

func (a *app) validate(txPath string, apply bool) error {
	var j node.TxJSON
	if err := node.ReadJSONFile(txPath, &j); err != nil {
		return err
	}

	var db *store.DB
	if apply || referencesStore(j) {
		var err error
		db, err = a.openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
	}

	var resolver node.CellResolver
	if db != nil {
		resolver = db
	}
	tx, err := j.Transaction(resolver)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	ev, err := node.NewEvaluatorFromConfig(a.cfg, a.logger, reg)
	if err != nil {
		return err
	}
	results, err := ev.EvaluateTx(tx)
	if err != nil {
		return err
	}

	txHash := tx.Hash(ev.Hasher())
	out := validateOut{
		TxHash: "0x" + hex.EncodeToString(txHash[:]),
		Status: node.FirstFailure(results),
		Groups: make([]groupOut, 0, len(results)),
	}
	for _, r := range results {
		out.Groups = append(out.Groups, groupToOut(r))
	}

	if apply && out.Status == 0 {
		if err := db.ApplyTx(txHash, tx); err != nil {
			return fmt.Errorf("apply: %w", err)
		}
		out.Applied = true
		a.logger.Info("transaction applied",
			zap.String("tx_hash", out.TxHash),
			zap.Int("inputs", len(tx.Inputs)),
			zap.Int("outputs", len(tx.Outputs)))
	}

	if a.cfg.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(a.cfg.MetricsTextfile, reg); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}
	if err := a.printJSON(out); err != nil {
		return err
	}
	a.exit = int(out.Status)
	return nil
}

func referencesStore(j node.TxJSON) bool {
	for _, in := range j.Inputs {
		if in.PreviousOutput != nil {
			return true
		}
	}
	return false
}

func groupToOut(r node.GroupResult) groupOut {
	g := groupOut{
		TypeHash: "0x" + hex.EncodeToString(r.TypeHash[:]),
		Args:     "0x" + hex.EncodeToString(r.Script.Args),
		Status:   r.Status,
	}
	if r.Err != nil {
		g.Err = r.Err.Error()
	}
	if v := r.Verdict; v != nil {
		g.Accepted = v.Accepted
		g.OwnerMode = v.OwnerMode
		if v.InputSum != nil {
			g.InputSum = v.InputSum.Dec()
		}
		if v.OutputSum != nil {
			g.OutputSum = v.OutputSum.Dec()
		}
		for _, s := range v.Trace {
			g.Trace = append(g.Trace, s.String())
		}
	}
	return g
}
