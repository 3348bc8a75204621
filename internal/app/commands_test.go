package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"webshell/internal/bridge"

	"github.com/stretchr/testify/require"
)

type stubDownloader struct{ url, path string }

func (s *stubDownloader) Download(_ context.Context, u, p string) error {
	s.url, s.path = u, p
	if u == "ftp://x" {
		return errors.New("unsupported url scheme: ftp")
	}
	return nil
}

func (s *stubDownloader) ExportPDF(_ context.Context, u, p string) error {
	s.url, s.path = u, p+"#pdf"
	return nil
}

type stubSpawner struct{ target string }

func (s *stubSpawner) Open(_ context.Context, target string) (string, error) {
	s.target = target
	return "win-1", nil
}

type stubPicker struct{}

func (stubPicker) PickSavePath(_ context.Context, u string) (string, error) {
	return "/tmp/pic.png", nil
}

func (stubPicker) PickPDFPath(_ context.Context, u string) (string, error) {
	return "/tmp/pic.pdf", nil
}

func TestRegisterCommands(t *testing.T) {
	reg := bridge.NewRegistry(nil)
	dl, sp := &stubDownloader{}, &stubSpawner{target: "unset"}
	RegisterCommands(reg, dl, sp, stubPicker{})
	require.Equal(t, []string{"download_image", "export_image_pdf", "open_new_window", "pick_pdf_path", "pick_save_path"}, reg.Names())

	ctx := context.Background()
	_, err := reg.Dispatch(ctx, "download_image", json.RawMessage(`{"url":"https://a/p.png","path":"out/p.png"}`))
	require.NoError(t, err)
	require.Equal(t, "https://a/p.png", dl.url)
	require.Equal(t, "out/p.png", dl.path)

	_, err = reg.Dispatch(ctx, "download_image", json.RawMessage(`{"url":"ftp://x","path":"p"}`))
	require.EqualError(t, err, "unsupported url scheme: ftp")

	_, err = reg.Dispatch(ctx, "open_new_window", json.RawMessage(`{}`))
	require.NoError(t, err)
	require.Equal(t, "", sp.target)

	_, err = reg.Dispatch(ctx, "open_new_window", json.RawMessage(`{"url":"https://www.pinterest.com/"}`))
	require.NoError(t, err)
	require.Equal(t, "https://www.pinterest.com/", sp.target)

	out, err := reg.Dispatch(ctx, "pick_save_path", json.RawMessage(`{"url":"https://a/p"}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"path":"/tmp/pic.png"}`, string(out))

	_, err = reg.Dispatch(ctx, "export_image_pdf", json.RawMessage(`{"url":"https://a/p.png","path":"p.pdf"}`))
	require.NoError(t, err)
	require.Equal(t, "p.pdf#pdf", dl.path)

	out, err = reg.Dispatch(ctx, "pick_pdf_path", json.RawMessage(`{"url":"https://a/p"}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"path":"/tmp/pic.pdf"}`, string(out))
}
