package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/internal/systems"
	"gopkg.in/yaml.v3"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него будут зависеть все уровни.
	// Level N Seed = MasterSeed + N
	Seed int64 `yaml:"seed"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	VisionDistance2 int   `yaml:"vision_distance2"` // Квадрат радиуса зрения игрока
	AmbientFloor    uint8 `yaml:"ambient_floor"`    // 0 - без фоновой подсветки
	Omniscient      bool  `yaml:"omniscient"`       // Отладка: видно всю карту

	MaxSearchDepth int `yaml:"max_search_depth"`
	MaxBlinkRange  int `yaml:"max_blink_range"`

	// TickPeriod - шаг часов анимаций в цикле инстанса
	TickPeriod time.Duration `yaml:"tick_period"`

	// Terrain - ASCII-арена вместо генератора (см. dungeon.ParseTerrain)
	Terrain []string `yaml:"terrain"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:            time.Now().UnixNano(),
		Width:           40,
		Height:          25,
		VisionDistance2: domain.VisionDistance2,
		MaxSearchDepth:  domain.MaxSearchDepth,
		MaxBlinkRange:   domain.MaxBlinkRange,
		TickPeriod:      50 * time.Millisecond,
	}
}

// LoadConfig читает YAML поверх значений по умолчанию.
// Незаданные в файле поля остаются дефолтными.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read engine config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse engine config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid engine config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Width < 8 || c.Height < 8:
		return fmt.Errorf("map size %dx%d is too small (min 8x8)", c.Width, c.Height)
	case c.VisionDistance2 <= 0:
		return fmt.Errorf("vision_distance2 must be positive, got %d", c.VisionDistance2)
	case c.MaxSearchDepth <= 0:
		return fmt.Errorf("max_search_depth must be positive, got %d", c.MaxSearchDepth)
	case c.MaxBlinkRange < 0:
		return fmt.Errorf("max_blink_range must not be negative, got %d", c.MaxBlinkRange)
	case c.TickPeriod <= 0:
		return fmt.Errorf("tick_period must be positive, got %s", c.TickPeriod)
	}
	return nil
}

// visibilityConfig - параметры поля видимости игрока.
func (c Config) visibilityConfig() systems.VisibilityConfig {
	return systems.VisibilityConfig{
		Distance2:    c.VisionDistance2,
		AmbientFloor: c.AmbientFloor,
		Omniscient:   c.Omniscient,
	}
}
