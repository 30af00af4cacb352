package api

import (
	"io"
	"os"
	"path/filepath"

	"github.com/itsakphyo/myanlang-translation-platform/internal/config"
	"github.com/sirupsen/logrus"
)

const logTimestampFormat = "2006-01-02T15:04:05.000Z07:00"

var defaultLogger *logrus.Logger

// NewLogger 创建默认日志记录器 (JSON, info, stdout)
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(jsonFormatter())
	logger.SetLevel(logrus.InfoLevel)
	logger.SetOutput(os.Stdout)
	return logger
}

// NewLoggerFromConfig 根据配置创建日志记录器
// output 支持 stdout / file / both,file 写入 logs/myanlang.log
func NewLoggerFromConfig(cfg *config.LogConfig) (*logrus.Logger, error) {
	logger := logrus.New()

	switch cfg.Format {
	case "json":
		logger.SetFormatter(jsonFormatter())
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: logTimestampFormat,
			FullTimestamp:   true,
		})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	out, err := logOutput(cfg.Output)
	if err != nil {
		return nil, err
	}
	logger.SetOutput(out)

	// 日志聚合按 service 字段区分来源
	logger.AddHook(serviceFieldHook{service: "myanlang"})

	return logger, nil
}

func jsonFormatter() logrus.Formatter {
	return &logrus.JSONFormatter{
		TimestampFormat: logTimestampFormat,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "time",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "msg",
		},
	}
}

func logOutput(mode string) (io.Writer, error) {
	var writers []io.Writer
	if mode == "stdout" || mode == "both" {
		writers = append(writers, os.Stdout)
	}
	if mode == "file" || mode == "both" {
		if err := os.MkdirAll("logs", 0755); err != nil {
			return nil, err
		}
		file, err := os.OpenFile(filepath.Join("logs", "myanlang.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}
	if len(writers) == 0 {
		return os.Stdout, nil
	}
	return io.MultiWriter(writers...), nil
}

// serviceFieldHook 为每条日志附加 service 字段
type serviceFieldHook struct {
	service string
}

func (h serviceFieldHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h serviceFieldHook) Fire(entry *logrus.Entry) error {
	entry.Data["service"] = h.service
	return nil
}

// GetLogger 获取默认日志记录器
func GetLogger() *logrus.Logger {
	if defaultLogger == nil {
		defaultLogger = NewLogger()
	}
	return defaultLogger
}

// SetLoggerOutput 设置默认日志记录器的输出
func SetLoggerOutput(w io.Writer) {
	GetLogger().SetOutput(w)
}

// SetLoggerLevel 设置默认日志记录器的级别
func SetLoggerLevel(level logrus.Level) {
	GetLogger().SetLevel(level)
}
