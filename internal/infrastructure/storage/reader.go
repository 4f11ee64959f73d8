package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gridbugs/gws/internal/engine"
)

var (
	ErrInvalidMagic   = errors.New("invalid magic")
	ErrHeaderMismatch = errors.New("header does not match snapshot body")
)

func (s *FileStore) Load(name string) (engine.Snapshot, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return engine.Snapshot{}, err
	}
	defer f.Close()

	return ReadSnapshot(f)
}

// ReadSnapshot читает и проверяет заголовок, затем тело.
func ReadSnapshot(r io.Reader) (engine.Snapshot, error) {
	// 1. Читаем заголовок целиком
	var header SnapshotFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return engine.Snapshot{}, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return engine.Snapshot{}, ErrInvalidMagic
	}
	if header.Version != Version1 {
		return engine.Snapshot{}, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	// 2. Тело
	var snap engine.Snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return engine.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	// 3. Заголовок и тело должны описывать один и тот же уровень
	size := snap.World.Size
	if int(header.Width) != size.Width || int(header.Height) != size.Height ||
		int(header.Level) != snap.Level || header.Turn != snap.Turn || header.Epoch != snap.VisibilityEpoch {
		return engine.Snapshot{}, ErrHeaderMismatch
	}
	return snap, nil
}

// DecodeSnapshot - ReadSnapshot из памяти.
func DecodeSnapshot(data []byte) (engine.Snapshot, error) {
	return ReadSnapshot(bytes.NewReader(data))
}
