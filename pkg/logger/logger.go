package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// Init инициализирует глобальный логгер.
// Вызывается один раз в main.go и в TestMain пакетов.
func Init() {
	Log = logrus.New()

	// 1. Уровень логирования из LOG_LEVEL (по умолчанию info).
	// Для пошаговой отладки симуляции выставляем "debug" или "trace".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Форматтер: "json" для сбора логов, иначе текст.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// For возвращает запись с полем component.
// Если Init ещё не вызывали (например, библиотеку используют снаружи), логгер создаётся лениво.
func For(component string) *logrus.Entry {
	if Log == nil {
		Init()
	}
	return Log.WithField("component", component)
}
