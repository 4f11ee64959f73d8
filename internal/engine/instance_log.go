package engine

import (
	"fmt"
	"time"

	"github.com/gridbugs/gws/pkg/api"
	"github.com/sirupsen/logrus"
)

// AddLog добавляет лог в историю инстанса
func (i *Instance) AddLog(text, logType string) {
	if logType == "" {
		logType = "INFO"
	}
	i.Logs = append(i.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%d_%d", i.ID, time.Now().UnixNano()),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	i.log.WithFields(logrus.Fields{
		"component": "game_log",
		"log_type":  logType,
	}).Info(text)
}

// takeLogs отдаёт накопленные логи и начинает новый буфер.
// Кадр уходит в другую горутину, поэтому срез не переиспользуется.
func (i *Instance) takeLogs() []api.LogEntry {
	logs := i.Logs
	i.Logs = []api.LogEntry{}
	return logs
}
