package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gridbugs/gws/internal/engine"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/sirupsen/logrus"
)

const (
	MagicHeader string = `GWSS` // 4 байта
	Version1    uint32 = 1

	// FileExt расширение файлов сохранений
	FileExt = ".gwss"
)

// SnapshotFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type SnapshotFileHeader struct {
	Magic   [4]byte // 4 байта
	Version uint32  // 4 байта
	Width   int32   // 4 байта
	Height  int32   // 4 байта
	Level   int32   // 4 байта
	Turn    uint64  // 8 байт
	Epoch   uint64  // 8 байт (эпоха видимости)
}

// FileStore хранит сохранения файлами в каталоге.
type FileStore struct {
	SaveDir string
}

func NewFileStore(dir string) (*FileStore, error) {
	// Создаем папку если нет
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create save dir: %w", err)
	}
	return &FileStore{SaveDir: dir}, nil
}

// Path возвращает путь файла сохранения по имени.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.SaveDir, name+FileExt)
}

func (s *FileStore) Save(name string, snap engine.Snapshot) error {
	path := s.Path(name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteSnapshot(f, snap); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	logger.For("storage").WithFields(logrus.Fields{
		"path":  path,
		"level": snap.Level,
		"turn":  snap.Turn,
	}).Info("Snapshot saved")
	return nil
}

// WriteSnapshot пишет заголовок и gob-тело снапшота.
func WriteSnapshot(w io.Writer, snap engine.Snapshot) error {
	// 1. Заголовок
	header := SnapshotFileHeader{
		Version: Version1,
		Width:   int32(snap.World.Size.Width),
		Height:  int32(snap.World.Size.Height),
		Level:   int32(snap.Level),
		Turn:    snap.Turn,
		Epoch:   snap.VisibilityEpoch,
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Тело
	if err := gob.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// EncodeSnapshot - WriteSnapshot в память (для слотов).
func EncodeSnapshot(snap engine.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
