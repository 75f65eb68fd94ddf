package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"sudt.dev/validator/consensus"
	"sudt.dev/validator/crypto"
	"sudt.dev/validator/node"
)

var (
	bucketCells  = []byte("live_cells_by_outpoint")
	bucketTokens = []byte("token_scripts_by_type_hash")
)

// ErrCellMissing is returned when an input refers to a cell that is not live.
var ErrCellMissing = errors.New("cell not found")

// DB is the live-cell set a host resolves transaction inputs from, plus the
// registry of deployed token scripts.
type DB struct {
	dir      string
	db       *bolt.DB
	hasher   crypto.HashProvider
	manifest *Manifest
}

// Open opens or creates the store under datadir. A store created with one
// hash algorithm refuses to open with another.
func Open(datadir string, hasher crypto.HashProvider) (*DB, error) {
	if datadir == "" {
		return nil, fmt.Errorf("datadir required")
	}
	if hasher == nil {
		return nil, fmt.Errorf("hash provider required")
	}
	dir := DBDir(datadir)
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	bdb, err := bolt.Open(filepath.Join(dir, "cells.db"), 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}
	d := &DB{dir: dir, db: bdb, hasher: hasher}

	if err := d.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketCells, bucketTokens} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}

	m, err := readManifest(dir)
	switch {
	case os.IsNotExist(err):
		m = &Manifest{SchemaVersion: SchemaVersionV1, HashAlgo: hasher.Name()}
		if err := writeManifestAtomic(dir, m); err != nil {
			_ = bdb.Close()
			return nil, err
		}
	case err != nil:
		_ = bdb.Close()
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if m.SchemaVersion > SchemaVersionV1 {
		_ = bdb.Close()
		return nil, fmt.Errorf("manifest schema_version %d > supported %d", m.SchemaVersion, SchemaVersionV1)
	}
	if m.HashAlgo != hasher.Name() {
		_ = bdb.Close()
		return nil, fmt.Errorf("store uses hash_algo %q, configured %q", m.HashAlgo, hasher.Name())
	}
	d.manifest = m
	return d, nil
}

func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func (d *DB) Dir() string { return d.dir }

func (d *DB) Manifest() *Manifest {
	if d == nil {
		return nil
	}
	return d.manifest
}

// PutCell stores c as live under c.OutPoint, replacing any cell there.
func (d *DB) PutCell(c node.Cell) error {
	val, err := encodeCell(c)
	if err != nil {
		return err
	}
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCells).Put(encodeOutPointKey(c.OutPoint), val)
	})
}

func (d *DB) GetCell(p node.OutPoint) (node.Cell, bool, error) {
	var out node.Cell
	var ok bool
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketCells).Get(encodeOutPointKey(p))
		if v == nil {
			return nil
		}
		c, err := decodeCell(p, v)
		if err != nil {
			return err
		}
		out, ok = c, true
		return nil
	})
	return out, ok, err
}

func (d *DB) DeleteCell(p node.OutPoint) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCells).Delete(encodeOutPointKey(p))
	})
}

// ResolveInputs returns the live cells at points, in order, from one
// consistent snapshot.
func (d *DB) ResolveInputs(points []node.OutPoint) ([]node.Cell, error) {
	out := make([]node.Cell, 0, len(points))
	err := d.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCells)
		for _, p := range points {
			v := b.Get(encodeOutPointKey(p))
			if v == nil {
				return fmt.Errorf("%w: %s", ErrCellMissing, p)
			}
			c, err := decodeCell(p, v)
			if err != nil {
				return err
			}
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyTx spends the inputs of an accepted transaction and stores its
// outputs under (txHash, index). All changes land in one bbolt transaction.
func (d *DB) ApplyTx(txHash [32]byte, t *node.Transaction) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCells)
		for _, in := range t.Inputs {
			key := encodeOutPointKey(in.OutPoint)
			if b.Get(key) == nil {
				return fmt.Errorf("%w: %s", ErrCellMissing, in.OutPoint)
			}
			if err := b.Delete(key); err != nil {
				return err
			}
		}
		for i, out := range t.Outputs {
			out.OutPoint = node.OutPoint{TxHash: txHash, Index: uint32(i)} // #nosec G115 -- output count is bounded by transaction size.
			val, err := encodeCell(out)
			if err != nil {
				return err
			}
			if err := b.Put(encodeOutPointKey(out.OutPoint), val); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *DB) CountCells() (int, error) {
	var n int
	err := d.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketCells).Stats().KeyN
		return nil
	})
	return n, err
}

// LoadCells returns every live cell.
func (d *DB) LoadCells() ([]node.Cell, error) {
	var out []node.Cell
	err := d.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCells).ForEach(func(k, v []byte) error {
			p, err := decodeOutPointKey(k)
			if err != nil {
				return err
			}
			c, err := decodeCell(p, v)
			if err != nil {
				return err
			}
			out = append(out, c)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterToken records a token type script under its type hash. Args that
// are not a credential hash are refused.
func (d *DB) RegisterToken(s node.Script) ([32]byte, error) {
	if err := consensus.ValidateArgs(s.Args); err != nil {
		return [32]byte{}, err
	}
	h := s.Hash(d.hasher)
	err := d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTokens).Put(h[:], s.Bytes())
	})
	return h, err
}

// ImportCells registers tokens and stores cells in one bbolt transaction.
// Every token is checked before anything is written, so a refused import
// leaves the store unchanged. It returns the type hash of each token.
func (d *DB) ImportCells(cells []node.Cell, tokens []node.Script) ([][32]byte, error) {
	hashes := make([][32]byte, 0, len(tokens))
	for i, s := range tokens {
		if err := consensus.ValidateArgs(s.Args); err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		hashes = append(hashes, s.Hash(d.hasher))
	}
	vals := make([][]byte, 0, len(cells))
	for i, c := range cells {
		val, err := encodeCell(c)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		vals = append(vals, val)
	}
	err := d.db.Update(func(tx *bolt.Tx) error {
		tb := tx.Bucket(bucketTokens)
		for i, s := range tokens {
			if err := tb.Put(hashes[i][:], s.Bytes()); err != nil {
				return err
			}
		}
		cb := tx.Bucket(bucketCells)
		for i, c := range cells {
			if err := cb.Put(encodeOutPointKey(c.OutPoint), vals[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hashes, nil
}

// Token looks up a registered token by type hash.
func (d *DB) Token(typeHash [32]byte) (node.Script, bool, error) {
	var out node.Script
	var ok bool
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketTokens).Get(typeHash[:])
		if v == nil {
			return nil
		}
		off := 0
		s, err := decodeScript(v, &off)
		if err != nil {
			return err
		}
		if off != len(v) {
			return fmt.Errorf("token: %d trailing bytes", len(v)-off)
		}
		out, ok = s, true
		return nil
	})
	return out, ok, err
}
