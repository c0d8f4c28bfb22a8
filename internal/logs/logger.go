package logs

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger - uygulama genelinde kullanılan logger (Init ile yapılandırılır)
var Logger = logrus.New()

func Init(level, format string) {
	switch level {
	case "trace":
		Logger.SetLevel(logrus.TraceLevel)
	case "debug":
		Logger.SetLevel(logrus.DebugLevel)
	case "warning", "warn":
		Logger.SetLevel(logrus.WarnLevel)
	case "error":
		Logger.SetLevel(logrus.ErrorLevel)
	default:
		Logger.SetLevel(logrus.InfoLevel)
	}

	if format == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	Logger.SetOutput(os.Stdout)
}
