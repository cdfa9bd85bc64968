package protocol

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/diegok/pongish/internal/game"
)

// Codec handles envelope encoding/decoding
type Codec struct {
	enc *gob.Encoder
	dec *gob.Decoder
}

// NewCodec creates a codec for the given read/writer
func NewCodec(rw io.ReadWriter) *Codec {
	return &Codec{
		enc: gob.NewEncoder(rw),
		dec: gob.NewDecoder(rw),
	}
}

// NewEncoder creates an encoder-only codec
func NewEncoder(w io.Writer) *Codec {
	return &Codec{
		enc: gob.NewEncoder(w),
	}
}

// NewDecoder creates a decoder-only codec
func NewDecoder(r io.Reader) *Codec {
	return &Codec{
		dec: gob.NewDecoder(r),
	}
}

// Encode writes an envelope
func (c *Codec) Encode(env *Envelope) error {
	if c.enc == nil {
		return errors.New("codec has no encoder")
	}
	return c.enc.Encode(env)
}

// Decode reads an envelope and checks its version
func (c *Codec) Decode() (*Envelope, error) {
	if c.dec == nil {
		return nil, errors.New("codec has no decoder")
	}
	var env Envelope
	if err := c.dec.Decode(&env); err != nil {
		return nil, err
	}
	if env.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSnapshotVersion, env.Version, SnapshotVersion)
	}
	return &env, nil
}

// SaveSnapshot writes snap to w as a versioned envelope.
func SaveSnapshot(w io.Writer, snap game.Snapshot, sessionID uuid.UUID) error {
	env := NewEnvelope(snap, sessionID)
	if err := NewEncoder(w).Encode(&env); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads an envelope written by SaveSnapshot.
func LoadSnapshot(r io.Reader) (Envelope, error) {
	env, err := NewDecoder(r).Decode()
	if err != nil {
		return Envelope{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return *env, nil
}

// SaveFile writes the snapshot to path, replacing any previous file only
// once the new one is complete.
func SaveFile(path string, snap game.Snapshot, sessionID uuid.UUID) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := SaveSnapshot(tmp, snap, sessionID); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}
	return nil
}

// LoadFile reads a snapshot saved with SaveFile. A missing file yields an
// error matching fs.ErrNotExist.
func LoadFile(path string) (Envelope, error) {
	f, err := os.Open(path)
	if err != nil {
		return Envelope{}, err
	}
	defer f.Close()
	return LoadSnapshot(f)
}
