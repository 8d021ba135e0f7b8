package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocrud/hookapi/config"
	"github.com/gocrud/hookapi/logging"
)

// SettingsSection 配置节名称
const SettingsSection = "hook"

// Settings 引擎配置
type Settings struct {
	Debug      bool   `json:"debug"`
	DefaultTag string `json:"defaultTag"`
	LogLevel   string `json:"logLevel"`
	// LogFormat text | json | zap | tint
	LogFormat string `json:"logFormat"`
	// LogFile 不为空时同时写入文件
	LogFile string `json:"logFile"`
}

// LoadSettings 从配置中读取引擎配置，配置节不存在时返回默认值
func LoadSettings(cfg config.Configuration) (Settings, error) {
	if cfg == nil || len(cfg.GetSection(SettingsSection).GetAll()) == 0 {
		return Settings{}, nil
	}
	return config.Load[Settings](cfg, SettingsSection)
}

// NewLoggerFactory 按配置创建日志工厂
// 配置了 LogFile 时需要调用工厂的 Close 刷新文件
func (s Settings) NewLoggerFactory() (logging.LoggerFactory, error) {
	level, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}

	builder := logging.NewLoggingBuilder().SetMinimumLevel(level)
	switch strings.ToLower(s.LogFormat) {
	case "", "text":
		builder.AddConsole()
	case "json":
		builder.AddJsonConsole(os.Stdout)
	case "zap":
		builder.AddZap(nil)
	case "tint":
		builder.AddTint(os.Stderr, false)
	default:
		return nil, fmt.Errorf("core: unknown log format %q", s.LogFormat)
	}
	if s.LogFile != "" {
		builder.AddFile(s.LogFile)
	}

	return builder.Build(), nil
}
