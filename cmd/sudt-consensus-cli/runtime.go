package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/holiman/uint256"

	"sudt.dev/validator/consensus"
)

type Request struct {
	Op      string       `json:"op"`
	DataHex string       `json:"data_hex,omitempty"`
	Amount  string       `json:"amount,omitempty"`
	ArgsHex string       `json:"args,omitempty"`
	Inputs  []RecordJSON `json:"inputs,omitempty"`
	Outputs []RecordJSON `json:"outputs,omitempty"`
	Code    string       `json:"code,omitempty"`
}

// RecordJSON is one cell as the rule sees it. Group marks cells that belong
// to the executing script's group.
type RecordJSON struct {
	LockHash string `json:"lock_hash"`
	DataHex  string `json:"data"`
	Group    bool   `json:"group,omitempty"`
}

type Response struct {
	Ok        bool     `json:"ok"`
	Err       string   `json:"err,omitempty"`
	Status    int8     `json:"status"`
	Amount    string   `json:"amount,omitempty"`
	DataHex   string   `json:"data_hex,omitempty"`
	OwnerMode bool     `json:"owner_mode,omitempty"`
	InputSum  string   `json:"input_sum,omitempty"`
	OutputSum string   `json:"output_sum,omitempty"`
	Trace     []string `json:"trace,omitempty"`
}

func writeResp(w io.Writer, resp Response) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}

func writeConsensusErr(w io.Writer, err error) {
	if te, ok := err.(*consensus.TxError); ok {
		status, _ := te.Code.Status()
		writeResp(w, Response{Ok: false, Err: string(te.Code), Status: status})
		return
	}
	writeResp(w, Response{Ok: false, Err: err.Error()})
}

func parseHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
}

type record struct {
	lockHash []byte
	data     []byte
}

// recordSource serves fixed records over the four channels.
type recordSource struct {
	args        []byte
	inputs      []record
	outputs     []record
	groupInput  []record
	groupOutput []record
}

func newRecordSource(req Request) (*recordSource, error) {
	args, err := parseHex(req.ArgsHex)
	if err != nil {
		return nil, fmt.Errorf("bad args")
	}
	src := &recordSource{args: args}
	load := func(side string, in []RecordJSON, all, group *[]record) error {
		for i, r := range in {
			lock, err := parseHex(r.LockHash)
			if err != nil {
				return fmt.Errorf("bad %s %d lock_hash", side, i)
			}
			data, err := parseHex(r.DataHex)
			if err != nil {
				return fmt.Errorf("bad %s %d data", side, i)
			}
			rec := record{lockHash: lock, data: data}
			*all = append(*all, rec)
			if r.Group {
				*group = append(*group, rec)
			}
		}
		return nil
	}
	if err := load("input", req.Inputs, &src.inputs, &src.groupInput); err != nil {
		return nil, err
	}
	if err := load("output", req.Outputs, &src.outputs, &src.groupOutput); err != nil {
		return nil, err
	}
	return src, nil
}

func (s *recordSource) channel(source consensus.Source) ([]record, error) {
	switch source {
	case consensus.SourceInput:
		return s.inputs, nil
	case consensus.SourceOutput:
		return s.outputs, nil
	case consensus.SourceGroupInput:
		return s.groupInput, nil
	case consensus.SourceGroupOutput:
		return s.groupOutput, nil
	default:
		return nil, &consensus.SysError{Kind: consensus.SysItemMissing}
	}
}

func (s *recordSource) at(index int, source consensus.Source) (record, error) {
	ch, err := s.channel(source)
	if err != nil {
		return record{}, err
	}
	if index < 0 || index >= len(ch) {
		return record{}, consensus.ErrIndexOutOfBound
	}
	return ch[index], nil
}

func (s *recordSource) LoadScriptArgs() ([]byte, error) {
	return append([]byte(nil), s.args...), nil
}

func (s *recordSource) LoadCellData(index int, source consensus.Source) ([]byte, error) {
	r, err := s.at(index, source)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), r.data...), nil
}

func (s *recordSource) LoadCellLockHash(index int, source consensus.Source) ([]byte, error) {
	r, err := s.at(index, source)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), r.lockHash...), nil
}

// validateResponse runs the rule over src. Err carries the error code of a
// rule rejection, or the host error text otherwise.
func validateResponse(src consensus.RecordSource) Response {
	verdict, err := consensus.Validate(src)
	resp := Response{Ok: err == nil, Status: consensus.ExitCode(err)}
	if te, ok := err.(*consensus.TxError); ok {
		resp.Err = string(te.Code)
	} else if err != nil {
		resp.Err = err.Error()
	}
	if verdict != nil {
		resp.OwnerMode = verdict.OwnerMode
		if verdict.InputSum != nil {
			resp.InputSum = verdict.InputSum.Dec()
		}
		if verdict.OutputSum != nil {
			resp.OutputSum = verdict.OutputSum.Dec()
		}
		for _, s := range verdict.Trace {
			resp.Trace = append(resp.Trace, s.String())
		}
	}
	return resp
}

func runFromStdin() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResp(os.Stdout, Response{Ok: false, Err: fmt.Sprintf("bad request: %v", err)})
		return
	}

	switch req.Op {
	case "decode_amount":
		b, err := parseHex(req.DataHex)
		if err != nil {
			writeResp(os.Stdout, Response{Ok: false, Err: "bad hex"})
			return
		}
		v, err := consensus.DecodeAmount(b)
		if err != nil {
			writeConsensusErr(os.Stdout, err)
			return
		}
		writeResp(os.Stdout, Response{Ok: true, Amount: v.Dec()})
		return

	case "encode_amount":
		v, err := uint256.FromDecimal(strings.TrimSpace(req.Amount))
		if err != nil {
			writeResp(os.Stdout, Response{Ok: false, Err: "bad amount"})
			return
		}
		b, err := consensus.EncodeAmount(v)
		if err != nil {
			writeConsensusErr(os.Stdout, err)
			return
		}
		writeResp(os.Stdout, Response{Ok: true, DataHex: hex.EncodeToString(b)})
		return

	case "validate":
		src, err := newRecordSource(req)
		if err != nil {
			writeResp(os.Stdout, Response{Ok: false, Err: err.Error()})
			return
		}
		writeResp(os.Stdout, validateResponse(src))
		return

	case "exit_code":
		status, ok := consensus.ErrorCode(req.Code).Status()
		if !ok {
			writeResp(os.Stdout, Response{Ok: false, Err: "unknown code"})
			return
		}
		writeResp(os.Stdout, Response{Ok: true, Status: status})
		return

	default:
		writeResp(os.Stdout, Response{Ok: false, Err: "unknown op"})
		return
	}
}
