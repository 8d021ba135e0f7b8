package member_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gocrud/hookapi/member"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Account struct {
	Owner   string
	balance int
}

func NewAccount(owner string) *Account { return &Account{Owner: owner} }

func NewEmptyAccount() *Account { return &Account{} }

func (a *Account) Deposit(n int) int    { a.balance += n; return a.balance }
func (a *Account) Withdraw(n int) error { a.balance -= n; return nil }
func (a *Account) Balance() int         { return a.balance }
func (a *Account) IsFrozen() bool       { return false }
func (a *Account) IsClosed() bool       { return false }

var intType = reflect.TypeOf(0)

func TestClassOfMethods(t *testing.T) {
	class := member.ClassOf[*Account]()
	assert.Equal(t, "*member_test.Account", class.Name)

	var names []string
	for _, m := range class.Methods() {
		names = append(names, m.Name)
		assert.Equal(t, member.KindMethod, m.Kind)
	}
	assert.Equal(t, []string{"Balance", "Deposit", "IsClosed", "IsFrozen", "Withdraw"}, names)
}

func TestMemberString(t *testing.T) {
	m, err := member.NewMethodFinder("Deposit").Locate(member.ClassOf[*Account]())
	require.NoError(t, err)
	assert.Equal(t, "*member_test.Account.Deposit(int) int", m.String())
	assert.Equal(t, []reflect.Type{intType}, m.Params())

	var nilMember *member.Member
	assert.Equal(t, "<nil>", nilMember.String())
}

func TestMethodFinderGlob(t *testing.T) {
	class := member.ClassOf[*Account]()

	m, err := member.NewMethodFinder("Bal*").Locate(class)
	require.NoError(t, err)
	assert.Equal(t, "Balance", m.Name)

	_, err = member.NewMethodFinder("Is*").Locate(class)
	assert.True(t, errors.Is(err, member.ErrAmbiguous))

	m, err = member.NewMethodFinder("{IsFrozen,Missing}").Locate(class)
	require.NoError(t, err)
	assert.Equal(t, "IsFrozen", m.Name)
}

func TestMethodFinderSignature(t *testing.T) {
	class := member.ClassOf[*Account]()

	m, err := member.NewMethodFinder("*").Param(intType).ReturnType(intType).Locate(class)
	require.NoError(t, err)
	assert.Equal(t, "Deposit", m.Name)

	f := member.NewMethodFinder("*")
	f.ParamCount = 0
	f.Returns = intType
	m, err = f.Locate(class)
	require.NoError(t, err)
	assert.Equal(t, "Balance", m.Name)
}

func TestMethodFinderNotFound(t *testing.T) {
	_, err := member.NewMethodFinder("Transfer").Locate(member.ClassOf[*Account]())
	require.Error(t, err)
	assert.ErrorIs(t, err, member.ErrNotFound)
	assert.Contains(t, err.Error(), "Transfer")

	_, err = member.NewMethodFinder("[").Locate(member.ClassOf[*Account]())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid name pattern")
}

func TestConstructorFinder(t *testing.T) {
	class := member.ClassOf[*Account]().
		WithConstructor("NewAccount", NewAccount).
		WithConstructor("NewEmptyAccount", NewEmptyAccount)

	_, err := member.NewConstructorFinder().Locate(class)
	assert.ErrorIs(t, err, member.ErrAmbiguous)

	f := member.NewConstructorFinder().Param(reflect.TypeOf(""))
	m, err := f.Locate(class)
	require.NoError(t, err)
	assert.Equal(t, "NewAccount", m.Name)
	assert.Equal(t, member.KindConstructor, m.Kind)
	assert.Equal(t, "*member_test.Account.NewAccount(string) *member_test.Account", m.String())
}

func TestWithConstructorRejectsNonFunc(t *testing.T) {
	assert.Panics(t, func() {
		member.ClassOf[*Account]().WithConstructor("bad", 42)
	})
	assert.Panics(t, func() {
		member.ClassOf[*Account]().WithConstructor("wrong", func() string { return "" })
	})
}

func TestLocatorFunc(t *testing.T) {
	class := member.ClassOf[*Account]()
	var l member.Locator = member.LocatorFunc(func(c *member.Class) (*member.Member, error) {
		return c.Methods()[0], nil
	})
	m, err := l.Locate(class)
	require.NoError(t, err)
	assert.Equal(t, "Balance", m.Name)
}

func TestMemberKey(t *testing.T) {
	a, err := member.NewMethodFinder("Deposit").Locate(member.ClassOf[*Account]())
	require.NoError(t, err)
	b, err := member.NewMethodFinder("Dep*").Locate(member.ClassOf[*Account]())
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Equal(t, a.Key(), b.Key())

	c, err := member.NewMethodFinder("Withdraw").Locate(member.ClassOf[*Account]())
	require.NoError(t, err)
	assert.NotEqual(t, a.Key(), c.Key())

	var nilMember *member.Member
	assert.Equal(t, member.Key{}, nilMember.Key())
}
