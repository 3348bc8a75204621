package bridge

import (
	"strings"
	"testing"
)

func TestScript_RendersCommandsAndMarker(t *testing.T) {
	s := Script()
	for _, want := range []string{
		`Symbol.for("webshell.bridge.installed")`,
		`window["__webshell_invoke"]`,
		`"download_image"`,
		`"open_new_window"`,
		`"pick_save_path"`,
		`"export_image_pdf"`,
		`"pick_pdf_path"`,
		`下载失败：`,
		`addEventListener('click'`,
		`addEventListener('keydown'`,
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("script missing %q", want)
		}
	}
	if strings.Contains(s, "{{") {
		t.Fatalf("unrendered template action in script")
	}
}
