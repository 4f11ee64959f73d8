package types

import (
	"fmt"
	"strconv"
)

// EntityID - 64-битный ключ сущности в арене мира.
//
// Сущности и источники света ссылаются друг на друга только через такие
// идентификаторы, никогда через указатели.
//
// Формат битов (от старших к младшим):
//
//	[ Reserved (8) | Type (8) | Generation (16) | Index (32) ]
//
// Где:
//   - Type - вид переднего тайла сущности (enums.ForegroundTile)
//   - Generation - поколение слота, защищает от устаревших ссылок после RemoveEntity
//   - Index - порядковый номер сущности в мире
type EntityID uint64

// NilEntityID - нулевой идентификатор (сущность отсутствует).
const NilEntityID EntityID = 0

const (
	bitsIndex = 32
	bitsGen   = 16
	bitsType  = 8

	shiftGen  = bitsIndex
	shiftType = bitsIndex + bitsGen

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
	maskType  = (1 << bitsType) - 1
)

// PackEntityID собирает EntityID из составных частей.
// Проверок диапазонов нет: лишние старшие биты отбрасываются масками.
func PackEntityID(typeID uint8, gen uint16, index uint32) EntityID {
	return EntityID(
		(uint64(typeID)&maskType)<<shiftType |
			(uint64(gen)&maskGen)<<shiftGen |
			uint64(index)&maskIndex,
	)
}

// Index возвращает порядковый номер сущности.
func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

// Generation возвращает поколение слота.
func (id EntityID) Generation() uint16 {
	return uint16((id >> shiftGen) & maskGen)
}

// Type возвращает вид сущности.
func (id EntityID) Type() uint8 {
	return uint8((id >> shiftType) & maskType)
}

func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String для логов: [type=.. gen=.. idx=..]
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("[type=%d gen=%d idx=%d]", id.Type(), id.Generation(), id.Index())
}

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших uint64.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает как строку, так и число.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		*id = NilEntityID
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*id = EntityID(v)
	return nil
}

// LightID - индекс источника света в таблице света мира.
type LightID uint32
