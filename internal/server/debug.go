package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/gridbugs/gws/internal/engine"
	"github.com/gridbugs/gws/pkg/logger"
)

// Имя слота попадает в путь файла
var slotName = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,32}$`)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
	Saves   SnapshotSaver
}

func NewDebugHandler(s *engine.GameService, saves SnapshotSaver) *DebugHandler {
	return &DebugHandler{Service: s, Saves: saves}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/level", h.handleLevel)
	mux.HandleFunc("/debug/snapshot", h.handleSnapshot)
	mux.HandleFunc("/debug/save", h.handleSave)
}

// LevelSummary - краткая сводка текущего уровня
type LevelSummary struct {
	Level           int            `json:"level"`
	Turn            uint64         `json:"turn"`
	Width           int            `json:"width"`
	Height          int            `json:"height"`
	Entities        map[string]int `json:"entities"`
	Discovered      int            `json:"discovered"`
	VisibilityEpoch uint64         `json:"visibility_epoch"`
	CommitmentEpoch uint64         `json:"commitment_epoch"`
}

func summarize(snap engine.Snapshot) LevelSummary {
	s := LevelSummary{
		Level:           snap.Level,
		Turn:            snap.Turn,
		Width:           snap.World.Size.Width,
		Height:          snap.World.Size.Height,
		Entities:        make(map[string]int),
		VisibilityEpoch: snap.VisibilityEpoch,
		CommitmentEpoch: snap.CommitmentEpoch,
	}
	for _, e := range snap.World.Entities {
		s.Entities[e.Foreground.String()]++
	}
	for _, c := range snap.Visibility {
		if c.LastSeen > 0 {
			s.Discovered++
		}
	}
	return s
}

func (h *DebugHandler) snapshot(w http.ResponseWriter, r *http.Request) (engine.Snapshot, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	snap, err := h.Service.Snapshot(ctx)
	if err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		http.Error(w, err.Error(), status)
		return engine.Snapshot{}, false
	}
	return snap, true
}

// /debug/level - сводка по текущему уровню
func (h *DebugHandler) handleLevel(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, summarize(snap))
}

// /debug/snapshot - полный дамп уровня, включая то, чего игрок не видит
func (h *DebugHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, snap)
}

// POST /debug/save?slot=name - сохранить текущий уровень
func (h *DebugHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	if h.Saves == nil {
		http.Error(w, "saving is disabled", http.StatusNotImplemented)
		return
	}
	slot := r.URL.Query().Get("slot")
	if slot == "" {
		slot = "quick"
	}
	if !slotName.MatchString(slot) {
		http.Error(w, "invalid slot name", http.StatusBadRequest)
		return
	}

	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	if err := h.Saves.Save(slot, snap); err != nil {
		logger.For("debug").WithError(err).Error("Save failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{
		"slot":  slot,
		"level": snap.Level,
		"turn":  snap.Turn,
	})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.For("debug").WithError(err).Warn("Failed to encode debug response")
	}
}
