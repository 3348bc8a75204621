package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const infoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleName</key><string>WebShell</string>
	<key>CFBundleIdentifier</key><string>io.webshell.app</string>
	<key>CFBundleShortVersionString</key><string>1.2.0</string>
</dict>
</plist>`

func TestReadBundleInfo(t *testing.T) {
	contents := filepath.Join(t.TempDir(), "WebShell.app", "Contents")
	require.NoError(t, os.MkdirAll(filepath.Join(contents, "MacOS"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(contents, "Info.plist"), []byte(infoPlist), 0o644))

	info, err := ReadBundleInfo(filepath.Join(contents, "MacOS", "webshell"))
	require.NoError(t, err)
	require.Equal(t, "io.webshell.app", info.Identifier)
	require.Equal(t, "WebShell 1.2.0", info.Title("fallback"))
}

func TestReadBundleInfo_NotInBundle(t *testing.T) {
	info, err := ReadBundleInfo("/usr/local/bin/webshell")
	require.NoError(t, err)
	require.Nil(t, info)
	require.Equal(t, "fallback", info.Title("fallback"))
}
