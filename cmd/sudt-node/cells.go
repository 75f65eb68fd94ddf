package main

import (
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sudt.dev/validator/node"
)

type importOut struct {
	Imported int      `json:"imported"`
	Tokens   []string `json:"tokens,omitempty"`
	Live     int      `json:"live"`
}

func (a *app) importCmd() *cobra.Command {
	var cellsPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store live cells and register the sUDT tokens they carry",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.importCells(cellsPath)
		},
	}
	cmd.Flags().StringVar(&cellsPath, "cells", "", "JSON array of cells with out_point set")
	_ = cmd.MarkFlagRequired("cells")
	return cmd
}

func (a *app) importCells(path string) error {
	var js []node.CellJSON
	if err := node.ReadJSONFile(path, &js); err != nil {
		return err
	}
	cells := make([]node.Cell, 0, len(js))
	for i, j := range js {
		if j.OutPoint == nil {
			return fmt.Errorf("cell %d: out_point required", i)
		}
		c, err := j.Cell()
		if err != nil {
			return fmt.Errorf("cell %d: %w", i, err)
		}
		cells = append(cells, c)
	}

	ev, err := node.NewEvaluatorFromConfig(a.cfg, a.logger, nil)
	if err != nil {
		return err
	}
	db, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var tokens []node.Script
	for _, c := range cells {
		if !ev.IsToken(c.Output.Type) || slices.ContainsFunc(tokens, c.Output.Type.Equal) {
			continue
		}
		tokens = append(tokens, *c.Output.Type)
	}
	hashes, err := db.ImportCells(cells, tokens)
	if err != nil {
		return err
	}

	out := importOut{Imported: len(cells)}
	for _, h := range hashes {
		out.Tokens = append(out.Tokens, "0x"+hex.EncodeToString(h[:]))
	}
	if out.Live, err = db.CountCells(); err != nil {
		return err
	}
	a.logger.Info("cells imported", zap.Int("count", out.Imported), zap.Int("tokens", len(out.Tokens)))
	return a.printJSON(out)
}

func (a *app) cellsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cells",
		Short: "List the live cells of the store",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			db, err := a.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			cells, err := db.LoadCells()
			if err != nil {
				return err
			}
			out := make([]node.CellJSON, 0, len(cells))
			for _, c := range cells {
				out = append(out, node.CellToJSON(c))
			}
			return a.printJSON(out)
		},
	}
}
