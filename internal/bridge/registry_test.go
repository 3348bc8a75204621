package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type echoArgs struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

func TestDispatch_TypedHandler(t *testing.T) {
	r := NewRegistry(nil)
	Register(r, "echo", func(_ context.Context, a echoArgs) (echoArgs, error) {
		return a, nil
	})

	out, err := r.Dispatch(context.Background(), "echo", json.RawMessage(`{"url":"https://a/b.png","path":"x.png"}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"url":"https://a/b.png","path":"x.png"}`, string(out))
}

func TestDispatch_NullArgsDecodeToZeroValue(t *testing.T) {
	r := NewRegistry(nil)
	var got *string
	Register(r, "opt", func(_ context.Context, a struct {
		URL *string `json:"url"`
	}) (struct{}, error) {
		got = a.URL
		return struct{}{}, nil
	})

	_, err := r.Dispatch(context.Background(), "opt", nil)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	_, err := NewRegistry(nil).Dispatch(context.Background(), "nope", nil)
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestDispatch_BadArguments(t *testing.T) {
	r := NewRegistry(nil)
	Register(r, "echo", func(_ context.Context, a echoArgs) (echoArgs, error) { return a, nil })

	_, err := r.Dispatch(context.Background(), "echo", json.RawMessage(`{"url":1}`))
	require.ErrorContains(t, err, "invalid arguments for echo")
}

func TestGo_DeliversResolveScript(t *testing.T) {
	r := NewRegistry(nil)
	Register(r, "fail", func(context.Context, echoArgs) (struct{}, error) {
		return struct{}{}, errors.New(`bad "thing"`)
	})

	got := make(chan string, 1)
	r.Go(context.Background(), 7, "fail", `{}`, func(js string) { got <- js })

	select {
	case js := <-got:
		require.Equal(t, `window.__webshell && window.__webshell.resolve(7, false, "bad \"thing\"")`, js)
	case <-time.After(2 * time.Second):
		t.Fatalf("deliver not called")
	}
}

func TestResolveScript_Success(t *testing.T) {
	js := ResolveScript(3, json.RawMessage(`{"path":"a.png"}`), nil)
	require.Equal(t, `window.__webshell && window.__webshell.resolve(3, true, {"path":"a.png"})`, js)
	require.True(t, strings.HasSuffix(ResolveScript(4, nil, nil), "resolve(4, true, null)"))
}

func TestNames_Sorted(t *testing.T) {
	r := NewRegistry(nil)
	r.Handle("b", nil)
	r.Handle("a", nil)
	require.Equal(t, []string{"a", "b"}, r.Names())
}
