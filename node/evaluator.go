package node

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"sudt.dev/validator/consensus"
	"sudt.dev/validator/crypto"
)

// GroupResult is the verdict for one sUDT type script in a transaction.
type GroupResult struct {
	Script   Script
	TypeHash [32]byte
	Verdict  *consensus.Verdict
	Err      error
	Status   int8
}

// Evaluator runs the sUDT rule once per token group of a transaction. It
// keeps no state between transactions beyond its metrics.
type Evaluator struct {
	codeHash [32]byte
	hashType HashType
	hasher   crypto.HashProvider
	logger   *zap.Logger
	metrics  *Metrics
}

func NewEvaluator(codeHash [32]byte, hashType HashType, hasher crypto.HashProvider, logger *zap.Logger, reg prometheus.Registerer) (*Evaluator, error) {
	if hasher == nil {
		return nil, errors.New("evaluator: nil hash provider")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m, err := NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("evaluator metrics: %w", err)
	}
	return &Evaluator{
		codeHash: codeHash,
		hashType: hashType,
		hasher:   hasher,
		logger:   logger,
		metrics:  m,
	}, nil
}

// NewEvaluatorFromConfig wires an Evaluator from the node config.
func NewEvaluatorFromConfig(cfg Config, logger *zap.Logger, reg prometheus.Registerer) (*Evaluator, error) {
	codeHash, err := cfg.CodeHash()
	if err != nil {
		return nil, err
	}
	hashType, err := ParseHashType(cfg.HashType)
	if err != nil {
		return nil, err
	}
	hasher, err := crypto.ProviderByName(cfg.HashAlgo)
	if err != nil {
		return nil, err
	}
	return NewEvaluator(codeHash, hashType, hasher, logger, reg)
}

func (e *Evaluator) Hasher() crypto.HashProvider { return e.hasher }

// IsToken reports whether s is an sUDT type script.
func (e *Evaluator) IsToken(s *Script) bool {
	return s != nil && s.Is(e.codeHash, e.hashType)
}

// Groups returns the distinct sUDT type scripts of tx in first-seen order,
// inputs before outputs.
func (e *Evaluator) Groups(tx *Transaction) []Script {
	var out []Script
	add := func(cells []Cell) {
		for _, c := range cells {
			if !e.IsToken(c.Output.Type) {
				continue
			}
			seen := false
			for _, s := range out {
				if s.Equal(*c.Output.Type) {
					seen = true
					break
				}
			}
			if !seen {
				out = append(out, *c.Output.Type)
			}
		}
	}
	add(tx.Inputs)
	add(tx.Outputs)
	return out
}

// EvaluateTx validates every sUDT group of tx. The returned error is non-nil
// only for transactions the evaluator cannot process at all.
func (e *Evaluator) EvaluateTx(tx *Transaction) ([]GroupResult, error) {
	if tx == nil {
		return nil, errors.New("evaluate: nil transaction")
	}
	groups := e.Groups(tx)
	results := make([]GroupResult, 0, len(groups))
	for _, script := range groups {
		results = append(results, e.evaluateGroup(tx, script))
	}
	return results, nil
}

func (e *Evaluator) evaluateGroup(tx *Transaction, script Script) GroupResult {
	typeHash := script.Hash(e.hasher)
	log := e.logger.With(zap.String("type_hash", hex.EncodeToString(typeHash[:])))

	view := NewTxView(tx, script, e.hasher)
	verdict, err := consensus.Validate(view, consensus.WithLogger(log))
	status := consensus.ExitCode(err)

	nIn, nOut := view.GroupSize()
	e.metrics.observe(status, nIn, nOut)

	if err != nil {
		log.Info("sudt group rejected", zap.Int8("status", status), zap.Error(err))
	} else {
		log.Debug("sudt group accepted", zap.Bool("owner_mode", verdict.OwnerMode))
	}
	return GroupResult{
		Script:   script,
		TypeHash: typeHash,
		Verdict:  verdict,
		Err:      err,
		Status:   status,
	}
}

// FirstFailure returns the status of the first rejected group, or 0.
func FirstFailure(results []GroupResult) int8 {
	for _, r := range results {
		if r.Status != consensus.StatusOK {
			return r.Status
		}
	}
	return consensus.StatusOK
}
