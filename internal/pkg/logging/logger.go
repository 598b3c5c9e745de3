package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogConfig struct {
	Level      string `yaml:"level"`      // minimum level to collect, DEBUG<INFO<WARN<ERROR<FATAL
	FileName   string `yaml:"fileName"`   // log file location, empty means stdout only
	MaxSize    int    `yaml:"maxSize"`    // max size of the log file before rotation (MB)
	MaxAge     int    `yaml:"maxAge"`     // max days to retain rotated files
	MaxBackups int    `yaml:"maxBackups"` // max number of rotated files to retain
	Stdout     bool   `yaml:"stdout"`     // also write to the console
	StackTrace bool   `yaml:"stackTrace"` // append stack traces to error logs
}

// InitLogger builds the global zap logger from the config.
func InitLogger(lCfg *LogConfig) error {
	level := zapcore.InfoLevel
	if lCfg.Level != "" {
		var err error
		level, err = zapcore.ParseLevel(lCfg.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", lCfg.Level, err)
		}
	}

	writeSyncer := getLogWriter(lCfg.FileName, lCfg.MaxSize, lCfg.MaxBackups, lCfg.MaxAge, lCfg.Stdout)
	encoder := getEncoder()

	core := zapcore.NewCore(encoder, writeSyncer, level)
	var logger *zap.Logger
	if lCfg.StackTrace {
		logger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	} else {
		logger = zap.New(core, zap.AddCaller())
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// getEncoder sets the encoding of log entries.
func getEncoder() zapcore.Encoder {
	encodeConfig := zap.NewProductionEncoderConfig()
	encodeConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
	}
	encodeConfig.TimeKey = "time"
	encodeConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encodeConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewJSONEncoder(encodeConfig)
}

// getLogWriter decides where log entries are written.
func getLogWriter(filename string, maxsize, maxBackup, maxAge int, stdout bool) zapcore.WriteSyncer {
	if filename == "" {
		return zapcore.AddSync(os.Stdout)
	}
	lumberJackLogger := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxsize,
		MaxAge:     maxAge,
		MaxBackups: maxBackup,
		Compress:   true,
	}
	if stdout {
		return zapcore.NewMultiWriteSyncer(zapcore.AddSync(lumberJackLogger), zapcore.AddSync(os.Stdout))
	}
	return zapcore.AddSync(lumberJackLogger)
}
