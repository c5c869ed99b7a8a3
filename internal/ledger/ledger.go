// Package ledger keeps a history of harness runs in a leveldb
// database and flags runs whose output differs from an earlier run
// over the same input.
package ledger

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"golang.org/x/crypto/blake2b"
)

var (
	runPrefix    = []byte("run/")
	outputPrefix = []byte("out/")
)

// ErrNondeterministic is returned by Record when an input produced a
// different output than the first time it was recorded.
var ErrNondeterministic = errors.New("output differs from earlier run over the same input")

// Run describes one timed prefix sum computation.
type Run struct {
	Time         time.Time
	Size         int
	Leaves       int
	ForkDepth    int
	Elapsed      time.Duration
	InputDigest  [blake2b.Size256]byte
	OutputDigest [blake2b.Size256]byte
}

func (r Run) String() string {
	return fmt.Sprintf("%s size=%d leaves=%d depth=%d elapsed=%s in=%x out=%x",
		r.Time.Format(time.RFC3339), r.Size, r.Leaves, r.ForkDepth, r.Elapsed,
		r.InputDigest[:6], r.OutputDigest[:6])
}

// record is the fixed-size on-disk form of a Run.
type record struct {
	UnixNano     int64
	Size         int64
	Leaves       int64
	ForkDepth    int64
	Elapsed      int64
	InputDigest  [blake2b.Size256]byte
	OutputDigest [blake2b.Size256]byte
}

// Digest returns the BLAKE2b-256 hash of xs in little-endian order.
func Digest(xs []int64) [blake2b.Size256]byte {
	h, _ := blake2b.New256(nil)
	var buf [8 * 512]byte
	for len(xs) > 0 {
		n := min(len(xs), 512)
		for i, x := range xs[:n] {
			binary.LittleEndian.PutUint64(buf[8*i:], uint64(x))
		}
		h.Write(buf[:8*n])
		xs = xs[n:]
	}
	var sum [blake2b.Size256]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// Ledger is a run history backed by leveldb.
type Ledger struct {
	db *leveldb.DB
}

// Open opens or creates the ledger database in dir.
func Open(dir string) (*Ledger, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{
		Compression: opt.NoCompression,
	})
	if err != nil {
		return nil, err
	}
	return &Ledger{db: db}, nil
}

// OpenMem opens a ledger that lives only in memory.
func OpenMem() (*Ledger, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &Ledger{db: db}, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record stores r. The run is stored even when ErrNondeterministic is
// returned, so the history shows both outputs.
func (l *Ledger) Record(r Run) error {
	rec := record{
		UnixNano:     r.Time.UnixNano(),
		Size:         int64(r.Size),
		Leaves:       int64(r.Leaves),
		ForkDepth:    int64(r.ForkDepth),
		Elapsed:      int64(r.Elapsed),
		InputDigest:  r.InputDigest,
		OutputDigest: r.OutputDigest,
	}
	value := new(bytes.Buffer)
	if err := binary.Write(value, binary.BigEndian, &rec); err != nil {
		return err
	}

	outKey := append(append([]byte{}, outputPrefix...), r.InputDigest[:]...)
	seen, err := l.db.Get(outKey, nil)
	switch {
	case err == leveldb.ErrNotFound:
		seen = nil
	case err != nil:
		return err
	}

	batch := new(leveldb.Batch)
	batch.Put(runKey(rec), value.Bytes())
	if seen == nil {
		batch.Put(outKey, r.OutputDigest[:])
	}
	if err := l.db.Write(batch, nil); err != nil {
		return err
	}

	if seen != nil && !bytes.Equal(seen, r.OutputDigest[:]) {
		return fmt.Errorf("%w: input %x, first output %x, now %x",
			ErrNondeterministic, r.InputDigest[:6], seen[:6], r.OutputDigest[:6])
	}
	return nil
}

// runKey orders runs by time; the input digest prefix separates runs
// recorded within the same nanosecond.
func runKey(rec record) []byte {
	key := make([]byte, 0, len(runPrefix)+8+8)
	key = append(key, runPrefix...)
	key = binary.BigEndian.AppendUint64(key, uint64(rec.UnixNano))
	return append(key, rec.InputDigest[:8]...)
}

// Runs returns every recorded run, oldest first.
func (l *Ledger) Runs() ([]Run, error) {
	iter := l.db.NewIterator(util.BytesPrefix(runPrefix), nil)
	defer iter.Release()

	var runs []Run
	for iter.Next() {
		var rec record
		if err := binary.Read(bytes.NewReader(iter.Value()), binary.BigEndian, &rec); err != nil {
			return nil, fmt.Errorf("corrupt run %x: %w", iter.Key(), err)
		}
		runs = append(runs, Run{
			Time:         time.Unix(0, rec.UnixNano),
			Size:         int(rec.Size),
			Leaves:       int(rec.Leaves),
			ForkDepth:    int(rec.ForkDepth),
			Elapsed:      time.Duration(rec.Elapsed),
			InputDigest:  rec.InputDigest,
			OutputDigest: rec.OutputDigest,
		})
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return runs, nil
}
