package hook

import (
	"github.com/gocrud/hookapi/bridge"
	"github.com/gocrud/hookapi/logging"
)

// DefaultTag 默认标签
const DefaultTag = "Default"

// Env Hook 引擎运行环境
//
// Debug 控制 Hook 成功时的调试日志，错误日志始终输出。
type Env struct {
	Bridge     bridge.Bridge
	Logger     logging.Logger
	Debug      bool
	DefaultTag string
}

// normalized 返回填充默认值后的副本
func (e *Env) normalized() *Env {
	out := Env{}
	if e != nil {
		out = *e
	}
	if out.Logger == nil {
		out.Logger = logging.NewLogger()
	}
	if out.DefaultTag == "" {
		out.DefaultTag = DefaultTag
	}
	return &out
}

// logI 调试模式下输出 Info 日志
func (e *Env) logI(msg string, fields ...logging.Field) {
	if e.Debug {
		e.Logger.Info(msg, fields...)
	}
}

// logE 输出错误日志
func (e *Env) logE(msg string, err error, fields ...logging.Field) {
	if err != nil {
		fields = append(fields, logging.Err(err))
	}
	e.Logger.Error(msg, fields...)
}
