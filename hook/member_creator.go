package hook

import (
	"fmt"
	"sync/atomic"

	"github.com/gocrud/hookapi/bridge"
	"github.com/gocrud/hookapi/logging"
	"github.com/gocrud/hookapi/member"
)

const keySuffix = "#HookAPI"

// Callback Before/After 回调
type Callback func(param *Param) error

// ReplaceCallback 替换回调，返回值作为调用结果
type ReplaceCallback func(param *Param) (any, error)

// State 成员配置状态
type State int32

const (
	StateUnconfigured State = iota
	StateConfigured
	StateInstalling
	StateInstalled
	StateInstallFailed
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "Unconfigured"
	case StateConfigured:
		return "Configured"
	case StateInstalling:
		return "Installing"
	case StateInstalled:
		return "Installed"
	case StateInstallFailed:
		return "InstallFailed"
	default:
		return "Unknown"
	}
}

// interception Around 与 Replace 互斥，最后一次设置生效
type interception interface {
	mode() bridge.Mode
}

type around struct {
	before Callback
	after  Callback
}

func (*around) mode() bridge.Mode { return bridge.ModeAround }

type replace struct {
	fn ReplaceCallback
}

func (*replace) mode() bridge.Mode { return bridge.ModeReplace }

// MemberCreator 一个要 Hook 的成员
type MemberCreator struct {
	// Tag 标签，用于区分同一成员的多个 Hook
	Tag string

	creator   *Creator
	member    *member.Member
	located   bool
	locateErr error
	hooks     interception
	failures  failurePolicy
	state     atomic.Int32
}

// State 返回当前状态
func (m *MemberCreator) State() State { return State(m.state.Load()) }

// Member 返回已设置的成员
func (m *MemberCreator) Member() *member.Member { return m.member }

// Mode 返回拦截模式，未设置回调时为 Around
func (m *MemberCreator) Mode() bridge.Mode {
	if m.hooks == nil {
		return bridge.ModeAround
	}
	return m.hooks.mode()
}

// String 返回成员键
func (m *MemberCreator) String() string {
	return fmt.Sprintf("%s%s%s", m.member, m.Tag, keySuffix)
}

func (m *MemberCreator) touch() {
	m.state.CompareAndSwap(int32(StateUnconfigured), int32(StateConfigured))
}

// SetMember 手动指定成员
func (m *MemberCreator) SetMember(target *member.Member) {
	m.member = target
	m.locateErr = nil
	m.touch()
}

// Locate 使用查找器查找成员，失败时成员为空
func (m *MemberCreator) Locate(locator member.Locator) error {
	m.located = true
	m.touch()

	var found *member.Member
	err := barrier(func() error {
		var err error
		found, err = locator.Locate(m.creator.class)
		return err
	})
	if err != nil {
		found = nil
	}
	m.member, m.locateErr = found, err
	return err
}

// Method 查找方法
func (m *MemberCreator) Method(initiate func(f *member.MethodFinder)) error {
	f := member.NewMethodFinder("")
	if initiate != nil {
		initiate(f)
	}
	return m.Locate(f)
}

// Constructor 查找构造函数
func (m *MemberCreator) Constructor(initiate func(f *member.ConstructorFinder)) error {
	f := member.NewConstructorFinder()
	if initiate != nil {
		initiate(f)
	}
	return m.Locate(f)
}

func (m *MemberCreator) aroundHooks() *around {
	a, ok := m.hooks.(*around)
	if !ok {
		a = &around{}
		m.hooks = a
	}
	m.touch()
	return a
}

// Before 在原始函数体之前执行，会清除替换回调
func (m *MemberCreator) Before(cb Callback) {
	m.aroundHooks().before = cb
}

// After 在原始函数体之后执行，会清除替换回调
func (m *MemberCreator) After(cb Callback) {
	m.aroundHooks().after = cb
}

// ReplaceAny 替换原始函数体，会清除 Before/After
func (m *MemberCreator) ReplaceAny(cb ReplaceCallback) {
	m.hooks = &replace{fn: cb}
	m.touch()
}

// ReplaceUnit 替换原始函数体，返回值为空
func (m *MemberCreator) ReplaceUnit(cb Callback) {
	m.ReplaceAny(func(p *Param) (any, error) {
		return nil, cb(p)
	})
}

// ReplaceTo 替换为固定返回值
func (m *MemberCreator) ReplaceTo(v any) {
	m.ReplaceAny(func(*Param) (any, error) { return v, nil })
}

// ReplaceToTrue 替换为 true
func (m *MemberCreator) ReplaceToTrue() { m.ReplaceTo(true) }

// ReplaceToFalse 替换为 false
func (m *MemberCreator) ReplaceToFalse() { m.ReplaceTo(false) }

// Intercept 拦截调用，返回空值
func (m *MemberCreator) Intercept() { m.ReplaceTo(nil) }

func (m *MemberCreator) fields() []logging.Field {
	return []logging.Field{
		logging.F("class", m.creator.class.String()),
		logging.F("member", m.member.String()),
		logging.F("tag", m.Tag),
	}
}

func (m *MemberCreator) newError(kind, err error) *Error {
	return &Error{
		Kind:   kind,
		Class:  m.creator.class.String(),
		Member: m.member.String(),
		Tag:    m.Tag,
		Err:    err,
	}
}

// defaultFailure 没有处理器时的默认日志
func (m *MemberCreator) defaultFailure(err error) {
	m.creator.env.logE(
		fmt.Sprintf("Try to hook %s[%s] got an Exception [%s]", m.creator.class, m.member, m.Tag),
		err, m.fields()...)
}

// hook 安装到 Bridge，已安装或安装失败的不会重复安装
func (m *MemberCreator) hook() error {
	for {
		st := m.State()
		if st == StateInstalling || st == StateInstalled || st == StateInstallFailed {
			return nil
		}
		if m.state.CompareAndSwap(int32(st), int32(StateInstalling)) {
			break
		}
	}

	env := m.creator.env
	policy := m.failures

	if m.member == nil {
		kind := ErrNoTargetConfigured
		msg := "Hooked Member cannot be non-null in Class [%s] [%s]"
		if m.located {
			kind = ErrTargetNotFound
			msg = "Hooked Member with a finding error in Class [%s] [%s]"
		}
		err := m.newError(kind, m.locateErr)
		policy.report(scopeHooking, nil, err, func(err error) {
			env.logE(fmt.Sprintf(msg, m.creator.class, m.Tag), err, m.fields()...)
		})
		m.state.Store(int32(StateInstallFailed))
		return err
	}

	shim := newShim(m, policy)
	ierr := barrier(func() error {
		if env.Bridge == nil {
			return ErrNoBridge
		}
		return env.Bridge.Install(m.member, m.Mode(), shim)
	})
	if ierr != nil {
		err := m.newError(ErrBridgeInstall, ierr)
		policy.report(scopeHooking, nil, err, m.defaultFailure)
		m.state.Store(int32(StateInstallFailed))
		return err
	}

	m.state.Store(int32(StateInstalled))
	return nil
}
