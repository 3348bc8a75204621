//go:build !cgo

package main

import (
	"errors"

	"webshell/internal/bridge"

	"go.uber.org/zap"
)

// webview 依赖系统 WebKit/WebView2，需要 CGO；纯 Go 构建只能报错退出。
func newDesktop(_ desktopOptions, _ *bridge.Registry, _ *zap.Logger) (desktopHost, error) {
	return nil, errors.New("webshell requires a cgo build (CGO_ENABLED=1) for the embedded webview")
}
