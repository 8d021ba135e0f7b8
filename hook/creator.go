// Package hook 是 Hook 引擎的核心：按类型组织要 Hook 的成员，
// 在调用 Hook 时一次性安装到 Bridge。
//
//	creator := hook.NewCreator(env, member.ClassOf[*Account]())
//	creator.InjectMember("", func(m *hook.MemberCreator) {
//		m.Method(func(f *member.MethodFinder) { f.Name = "Balance" })
//		m.ReplaceTo(42)
//	}).IgnoredHookingFailure()
//	err := creator.Hook()
//
// 回调与失败处理器中的错误和 panic 都不会传播到被 Hook 的调用方。
package hook

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gocrud/hookapi/logging"
	"github.com/gocrud/hookapi/member"
	"go.uber.org/multierr"
)

// Creator 一个类型的 Hook 组
type Creator struct {
	env   *Env
	class *member.Class

	mu      sync.Mutex
	entries map[string]*MemberCreator
}

// NewCreator 创建 Hook 组
func NewCreator(env *Env, class *member.Class) *Creator {
	return &Creator{
		env:     env.normalized(),
		class:   class,
		entries: make(map[string]*MemberCreator),
	}
}

// Class 返回目标类型
func (c *Creator) Class() *member.Class { return c.class }

// Env 返回运行环境
func (c *Creator) Env() *Env { return c.env }

// InjectMember 添加一个要 Hook 的成员
// 成员键相同的条目会被替换，tag 为空时使用默认标签
func (c *Creator) InjectMember(tag string, initiate func(m *MemberCreator)) *Result {
	if tag == "" {
		tag = c.env.DefaultTag
	}
	m := &MemberCreator{Tag: tag, creator: c}
	if initiate != nil {
		initiate(m)
	}

	c.mu.Lock()
	c.entries[m.String()] = m
	c.mu.Unlock()
	return &Result{entry: m}
}

// Members 返回全部条目，按成员键排序
func (c *Creator) Members() []*MemberCreator {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*MemberCreator, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.entries[k])
	}
	return out
}

// Hook 安装全部条目
// 单个条目失败不影响其他条目，返回全部失败的合并错误
func (c *Creator) Hook() error {
	entries := c.Members()
	if len(entries) == 0 {
		err := &Error{Kind: ErrEmptyGroup, Class: c.class.String()}
		c.env.logE("Hook Members is empty, hook aborted", nil,
			logging.F("class", c.class.String()))
		return err
	}

	var errs error
	for _, m := range entries {
		errs = multierr.Append(errs, m.hook())
	}
	if errs != nil {
		c.env.logI(fmt.Sprintf("Hook Class [%s] finished with %d failure(s)", c.class, len(multierr.Errors(errs))))
	}
	return errs
}
