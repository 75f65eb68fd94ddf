package consensus

import (
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

// CredentialHashSize is the width of a lock hash and of the script args that
// name the owner lock.
const CredentialHashSize = 32

type State uint8

const (
	StateStart State = iota
	StateCheckingAuthorization
	StateAggregatingInputs
	StateAggregatingOutputs
	StateComparing
	StateAccepted
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateCheckingAuthorization:
		return "checking_authorization"
	case StateAggregatingInputs:
		return "aggregating_inputs"
	case StateAggregatingOutputs:
		return "aggregating_outputs"
	case StateComparing:
		return "comparing"
	case StateAccepted:
		return "accepted"
	case StateRejected:
		return "rejected"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Verdict is the outcome of one evaluation. InputSum and OutputSum are set
// only when the corresponding aggregation ran to completion.
type Verdict struct {
	Accepted  bool
	OwnerMode bool
	InputSum  *uint256.Int
	OutputSum *uint256.Int
	Trace     []State
}

type options struct {
	logger *zap.Logger
}

type Option func(*options)

// WithLogger routes debug output of the evaluation to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// ValidateArgs checks the configured script args. A token deployed with args
// of the wrong width can never be checked, so hosts call this before
// accepting the deployment as well.
func ValidateArgs(args []byte) error {
	if len(args) != CredentialHashSize {
		return txerr(TX_ERR_ARGS_LEN, fmt.Sprintf("script args must be %d bytes, got %d", CredentialHashSize, len(args)))
	}
	return nil
}

type run struct {
	v   *Verdict
	log *zap.Logger
}

func (r *run) enter(s State) {
	r.v.Trace = append(r.v.Trace, s)
	r.log.Debug("sudt state", zap.Stringer("state", s))
}

func (r *run) reject(err error) (*Verdict, error) {
	r.enter(StateRejected)
	return r.v, err
}

// Validate evaluates the token-conservation rule against src. It returns the
// verdict together with the rejection error, if any. Host errors are returned
// as reported.
func Validate(src RecordSource, opts ...Option) (*Verdict, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	r := &run{v: &Verdict{}, log: o.logger}
	r.enter(StateStart)

	args, err := src.LoadScriptArgs()
	if err != nil {
		return r.reject(err)
	}
	r.log.Debug("sudt script args", zap.String("args", hex.EncodeToString(args)))
	if err := ValidateArgs(args); err != nil {
		return r.reject(err)
	}

	r.enter(StateCheckingAuthorization)
	owner, err := CheckOwnerMode(src, args)
	if err != nil {
		return r.reject(err)
	}
	if owner {
		r.v.OwnerMode = true
		r.v.Accepted = true
		r.enter(StateAccepted)
		return r.v, nil
	}

	r.enter(StateAggregatingInputs)
	in, err := GatherAmount(src, SourceGroupInput)
	if err != nil {
		return r.reject(err)
	}
	r.v.InputSum = in

	r.enter(StateAggregatingOutputs)
	out, err := GatherAmount(src, SourceGroupOutput)
	if err != nil {
		return r.reject(err)
	}
	r.v.OutputSum = out

	r.enter(StateComparing)
	if in.Lt(out) {
		return r.reject(txerr(TX_ERR_AMOUNT, fmt.Sprintf("inputs %s < outputs %s", in.Dec(), out.Dec())))
	}
	r.v.Accepted = true
	r.enter(StateAccepted)
	return r.v, nil
}
