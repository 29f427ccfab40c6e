package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// New 根据日志配置创建zap.Logger
// - format=json 使用生产环境编码（适合日志采集）
// - format=console 使用开发环境编码（彩色级别，便于本地阅读）
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if strings.EqualFold(cfg.Format, "json") {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableCaller = !cfg.EnableCaller
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.Output != "" {
		zc.OutputPaths = []string{cfg.Output}
	}

	return zc.Build()
}

// NewFromConfig wire provider：创建logger并替换zap全局logger
// response包等无法注入依赖的地方通过zap.L()使用同一个logger
func NewFromConfig(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}

	undo := zap.ReplaceGlobals(log)
	cleanup := func() {
		_ = log.Sync()
		undo()
	}
	return log, cleanup, nil
}
