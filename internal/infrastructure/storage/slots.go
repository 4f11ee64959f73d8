package storage

import (
	"errors"
	"fmt"

	"github.com/gridbugs/gws/internal/engine"
	"github.com/quasilyte/gdata/v2"
)

const slotObject = "saves"

var ErrSlotEmpty = errors.New("save slot is empty")

// SlotStore хранит сохранения в именованных слотах каталога данных приложения.
type SlotStore struct {
	manager *gdata.Manager
}

// OpenSlotStore открывает (или создаёт) каталог данных приложения appName.
func OpenSlotStore(appName string) (*SlotStore, error) {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open app data %q: %w", appName, err)
	}
	return &SlotStore{manager: manager}, nil
}

func (s *SlotStore) Has(slot string) bool {
	return s.manager.ObjectPropExists(slotObject, slot)
}

func (s *SlotStore) Save(slot string, snap engine.Snapshot) error {
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := s.manager.SaveObjectProp(slotObject, slot, data); err != nil {
		return fmt.Errorf("failed to save slot %q: %w", slot, err)
	}
	return nil
}

func (s *SlotStore) Load(slot string) (engine.Snapshot, error) {
	if !s.Has(slot) {
		return engine.Snapshot{}, fmt.Errorf("%q: %w", slot, ErrSlotEmpty)
	}
	data, err := s.manager.LoadObjectProp(slotObject, slot)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("failed to load slot %q: %w", slot, err)
	}
	return DecodeSnapshot(data)
}
