// Package archive captures the extended attributes of many paths into a
// snapshot file and applies such a snapshot again.
package archive

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/exattr/exattr/internal/debug"
	"github.com/exattr/exattr/internal/errors"
)

// Version is the snapshot format written by this package.
const Version = 1

// compressedSuffix selects zstd compression for snapshot files.
const compressedSuffix = ".zst"

// Attribute is one captured extended attribute.
type Attribute struct {
	Name  string `json:"name"`
	Value []byte `json:"value"`
	// XXH64 is the hex encoded xxHash64 digest of Value.
	XXH64 string `json:"xxh64"`
}

// Entry holds the attributes of a single path.
type Entry struct {
	Path       string      `json:"path"`
	Attributes []Attribute `json:"attributes"`
}

// Snapshot is the document stored in a snapshot file.
type Snapshot struct {
	Version  int       `json:"version"`
	Time     time.Time `json:"time"`
	Hostname string    `json:"hostname,omitempty"`
	Entries  []Entry   `json:"entries"`
}

// Digest returns the hex encoded xxHash64 digest of value.
func Digest(value []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(value))
}

// NewAttribute returns an Attribute with its digest filled in.
func NewAttribute(name string, value []byte) Attribute {
	if value == nil {
		value = []byte{}
	}
	return Attribute{Name: name, Value: value, XXH64: Digest(value)}
}

// Verify checks the format version and the digest of every value.
func (sn *Snapshot) Verify() error {
	if sn.Version != Version {
		return errors.Fatalf("unsupported snapshot version %d", sn.Version)
	}

	for _, e := range sn.Entries {
		for _, a := range e.Attributes {
			if a.Name == "" {
				return errors.Fatalf("empty attribute name for %v", e.Path)
			}
			if d := Digest(a.Value); d != a.XXH64 {
				debug.Log("digest mismatch for %v %v: want %v, got %v", e.Path, a.Name, a.XXH64, d)
				return errors.Fatalf("checksum mismatch for attribute %q of %v", a.Name, e.Path)
			}
		}
	}

	return nil
}

// Count returns the number of attributes in sn.
func (sn *Snapshot) Count() int {
	n := 0
	for _, e := range sn.Entries {
		n += len(e.Attributes)
	}
	return n
}

// IsCompressed reports whether filename selects a zstd compressed snapshot.
func IsCompressed(filename string) bool {
	return strings.HasSuffix(filename, compressedSuffix)
}

// Write encodes sn as indented JSON to wr, compressed with zstd if compress
// is set.
func Write(wr io.Writer, sn *Snapshot, compress bool) error {
	if !compress {
		return encode(wr, sn)
	}

	enc, err := zstd.NewWriter(wr)
	if err != nil {
		return errors.WithStack(err)
	}
	err = encode(enc, sn)
	if err != nil {
		_ = enc.Close()
		return err
	}
	return errors.WithStack(enc.Close())
}

func encode(wr io.Writer, sn *Snapshot) error {
	enc := json.NewEncoder(wr)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(sn), "encode snapshot")
}

// Read decodes and verifies a snapshot from rd.
func Read(rd io.Reader, compressed bool) (*Snapshot, error) {
	if compressed {
		dec, err := zstd.NewReader(rd)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		defer dec.Close()
		rd = dec
	}

	var sn Snapshot
	err := json.NewDecoder(rd).Decode(&sn)
	if err != nil {
		return nil, errors.Fatalf("invalid snapshot: %v", err)
	}

	if err := sn.Verify(); err != nil {
		return nil, err
	}
	return &sn, nil
}

// Save writes sn to filename. A filename ending in ".zst" is compressed.
func Save(filename string, sn *Snapshot) error {
	debug.Log("save snapshot with %d entries to %v", len(sn.Entries), filename)

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return errors.WithStack(err)
	}

	bw := bufio.NewWriter(f)
	err = Write(bw, sn, IsCompressed(filename))
	if err == nil {
		err = errors.WithStack(bw.Flush())
	}
	if err != nil {
		_ = f.Close()
		return err
	}

	return errors.WithStack(f.Close())
}

// Load reads and verifies the snapshot stored in filename.
func Load(filename string) (*Snapshot, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Fatalf("cannot read snapshot: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sn, err := Read(bufio.NewReader(f), IsCompressed(filename))
	if err != nil {
		return nil, err
	}
	debug.Log("loaded snapshot with %d entries from %v", len(sn.Entries), filename)
	return sn, nil
}
