package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/mpetrov/taskkeeper/internal/client/codec"
	"github.com/mpetrov/taskkeeper/internal/client/local"
	"github.com/mpetrov/taskkeeper/internal/client/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInputs replaces the interactive input seams with queued answers.
// Text prompts and password prompts consume from separate queues.
func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()

	origText := getSimpleText
	origPassword := getPassword
	origPrint := printlnFn
	t.Cleanup(func() {
		getSimpleText = origText
		getPassword = origPassword
		printlnFn = origPrint
	})

	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		if len(texts) == 0 {
			t.Fatalf("unexpected text prompt: %s", prompt)
		}
		answer := texts[0]
		texts = texts[1:]
		return answer, nil
	}
	getPassword = func(prompt string, w io.Writer) (string, error) {
		if len(passwords) == 0 {
			t.Fatalf("unexpected password prompt: %s", prompt)
		}
		answer := passwords[0]
		passwords = passwords[1:]
		return answer, nil
	}
	printlnFn = func(...any) (int, error) { return 0, nil }
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	backend := local.NewService(store.NewMemoryStore(), codec.NewObfuscatingCodec(), 0)
	return &App{backend: backend, reader: bufio.NewReader(strings.NewReader(""))}
}

func TestRegister_SetsUserName(t *testing.T) {
	a := newTestApp(t)
	stubInputs(t, []string{"Ada", "ada@example.com"}, []string{"secret1"})

	require.NoError(t, a.Register(context.Background()))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "Ada", a.userName)
}

func TestRegister_FailureLeavesLoggedOut(t *testing.T) {
	a := newTestApp(t)
	stubInputs(t, []string{"Ada", "not-an-email"}, []string{"secret1"})

	require.Error(t, a.Register(context.Background()))
	assert.False(t, a.isLoggedIn())
}

func TestLoginLogout_Cycle(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	stubInputs(t,
		[]string{"Ada", "ada@example.com", "ada@example.com"},
		[]string{"secret1", "secret1"})

	require.NoError(t, a.Register(ctx))
	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())

	require.NoError(t, a.Login(ctx))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "Ada", a.userName)
}

func TestLogin_WrongPassword(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	stubInputs(t,
		[]string{"Ada", "ada@example.com", "ada@example.com"},
		[]string{"secret1", "wrong66"})

	require.NoError(t, a.Register(ctx))
	require.NoError(t, a.Logout(ctx))

	require.Error(t, a.Login(ctx))
	assert.False(t, a.isLoggedIn())
}

func TestProfile_UpdatesPromptName(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	stubInputs(t,
		[]string{"Ada", "ada@example.com", "Ada Lovelace", ""},
		[]string{"secret1"})

	require.NoError(t, a.Register(ctx))
	require.NoError(t, a.Profile(ctx))
	assert.Equal(t, "Ada Lovelace", a.userName)
}

func TestPasswd_WrongCurrentFails(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	stubInputs(t,
		[]string{"Ada", "ada@example.com"},
		[]string{"secret1", "wrong66", "newpass1"})

	require.NoError(t, a.Register(ctx))
	require.Error(t, a.Passwd(ctx))
}

func TestUnregister_RequiresConfirmation(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	stubInputs(t,
		[]string{"Ada", "ada@example.com", "no", "yes"},
		[]string{"secret1"})

	require.NoError(t, a.Register(ctx))

	// declined: still logged in
	require.NoError(t, a.Unregister(ctx))
	assert.True(t, a.isLoggedIn())

	// confirmed: account gone
	require.NoError(t, a.Unregister(ctx))
	assert.False(t, a.isLoggedIn())

	require.Error(t, a.Whoami(ctx))
}
