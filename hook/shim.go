package hook

import (
	"fmt"

	"github.com/gocrud/hookapi/bridge"
)

// shim 安装到 Bridge 上的拦截器
// 回调与失败处理器在安装时固定
type shim struct {
	entry   *MemberCreator
	env     *Env
	policy  failurePolicy
	before  Callback
	after   Callback
	replace ReplaceCallback
}

func newShim(entry *MemberCreator, policy failurePolicy) *shim {
	s := &shim{entry: entry, env: entry.creator.env, policy: policy}
	switch h := entry.hooks.(type) {
	case *around:
		s.before, s.after = h.before, h.after
	case *replace:
		s.replace = h.fn
	}
	return s
}

func (s *shim) BeforeHookedMember(frame *bridge.Frame) {
	s.around(frame, s.before, "Before")
}

func (s *shim) AfterHookedMember(frame *bridge.Frame) {
	s.around(frame, s.after, "After")
}

func (s *shim) around(frame *bridge.Frame, cb Callback, stage string) {
	if cb == nil || frame == nil {
		return
	}
	param := newParam(frame)
	if err := barrier(func() error { return cb(param) }); err != nil {
		s.fail(param, err)
		return
	}
	s.done(stage)
}

// ReplaceHookedMember 回调失败时返回空值
func (s *shim) ReplaceHookedMember(frame *bridge.Frame) any {
	if s.replace == nil || frame == nil {
		return nil
	}
	param := newParam(frame)
	var result any
	err := barrier(func() error {
		var err error
		result, err = s.replace(param)
		return err
	})
	if err != nil {
		s.fail(param, err)
		return nil
	}
	s.done("Replace")
	return result
}

func (s *shim) done(stage string) {
	s.env.logI(fmt.Sprintf("%s Hook Member [%s] done [%s]", stage, s.entry.member, s.entry.Tag))
}

func (s *shim) fail(param *Param, err error) {
	s.policy.report(scopeConduct, param, s.entry.newError(ErrCallbackFailure, err), s.entry.defaultFailure)
}
