package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"howett.net/plist"
)

// BundleInfo 是 macOS .app 包 Info.plist 中与展示相关的字段。
type BundleInfo struct {
	Name       string
	Identifier string
	Version    string
}

// ReadBundleInfo 在可执行文件位于 X.app/Contents/MacOS/ 下时读取 Info.plist。
// 不在 .app 内或 plist 不存在时返回 nil, nil（best effort）。
func ReadBundleInfo(executable string) (*BundleInfo, error) {
	macOSDir := filepath.Dir(executable)
	contents := filepath.Dir(macOSDir)
	if filepath.Base(macOSDir) != "MacOS" || filepath.Base(contents) != "Contents" {
		return nil, nil
	}
	if !strings.HasSuffix(filepath.Dir(contents), ".app") {
		return nil, nil
	}

	raw, err := os.ReadFile(filepath.Join(contents, "Info.plist"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read Info.plist: %w", err)
	}

	// Info.plist 可能是 XML 也可能是二进制 plist；howett.net/plist 两者都支持。
	var p struct {
		CFBundleDisplayName        string `plist:"CFBundleDisplayName"`
		CFBundleName               string `plist:"CFBundleName"`
		CFBundleIdentifier         string `plist:"CFBundleIdentifier"`
		CFBundleShortVersionString string `plist:"CFBundleShortVersionString"`
		CFBundleVersion            string `plist:"CFBundleVersion"`
	}
	if _, err := plist.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse Info.plist: %w", err)
	}

	info := &BundleInfo{
		Name:       firstNonEmpty(p.CFBundleDisplayName, p.CFBundleName),
		Identifier: p.CFBundleIdentifier,
		Version:    firstNonEmpty(p.CFBundleShortVersionString, p.CFBundleVersion),
	}
	return info, nil
}

// Title 按 "名称 版本" 组合窗口标题；缺字段时回落到 fallback。
func (b *BundleInfo) Title(fallback string) string {
	if b == nil {
		return fallback
	}
	name := firstNonEmpty(b.Name, fallback)
	if b.Version == "" {
		return name
	}
	return name + " " + b.Version
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
