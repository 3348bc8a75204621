//go:build cgo

package main

import (
	"context"
	"errors"
	"fmt"

	"webshell/internal/app"
	"webshell/internal/bridge"
	"webshell/internal/services/windows"

	webview "github.com/webview/webview_go"
	"go.uber.org/zap"
)

// desktop 是基于 webview_go 的宿主：主窗口 + 运行时打开的附加窗口。
//
// 说明：
//   - webview 的所有调用都必须在 UI 线程；后台 goroutine 一律经 Dispatch 切回
//   - 每个窗口都绑定同一个桥接入口，并在每次页面加载时注入桥接脚本
//   - webview_go 没有窗口定位 API，附加窗口的位置交给系统窗口管理器
type desktop struct {
	opts desktopOptions
	reg  *bridge.Registry
	log  *zap.Logger

	ctx  context.Context
	main webview.WebView

	extra  *windows.Handles[webview.WebView]
	closed chan struct{}
}

func newDesktop(opts desktopOptions, reg *bridge.Registry, log *zap.Logger) (desktopHost, error) {
	if opts.StartURL == "" {
		return nil, fmt.Errorf("webview url is empty")
	}
	return &desktop{
		opts:   opts,
		reg:    reg,
		log:    log,
		ctx:    context.Background(),
		extra:  windows.NewHandles[webview.WebView](),
		closed: make(chan struct{}),
	}, nil
}

// Run 创建主窗口并阻塞在事件循环上，直到窗口关闭或 ctx 取消。
func (d *desktop) Run(ctx context.Context) error {
	// 运行时初始化前再确认一次实例目录存在。
	if err := app.EnsureInstanceDir(d.opts.InstanceDir); err != nil {
		d.log.Warn("instance directory unavailable", zap.Error(err))
	}

	w := webview.New(d.opts.Debug)
	if w == nil {
		return errors.New("failed to create webview window")
	}
	defer w.Destroy()

	d.ctx = ctx
	d.main = w
	if err := d.install(w); err != nil {
		return err
	}
	w.SetTitle(d.opts.Title)
	w.SetSize(d.opts.Width, d.opts.Height, webview.HintNone)
	w.Navigate(d.opts.StartURL)

	stop := context.AfterFunc(ctx, func() {
		w.Dispatch(w.Terminate)
	})
	defer stop()

	w.Run()
	close(d.closed)

	// 事件循环已退出：回收运行期间打开的附加窗口。
	extra := d.extra.Drain()
	for _, nw := range extra {
		nw.Destroy()
	}
	d.log.Info("main window closed", zap.Int("extra_windows", len(extra)))
	return nil
}

// install 绑定桥接入口并注册页面加载脚本。Bind 必须先于 Init，脚本里才能拿到入口函数。
func (d *desktop) install(w webview.WebView) error {
	err := w.Bind(bridge.BindingName, func(callID int64, command, args string) {
		d.reg.Go(d.ctx, callID, command, args, func(js string) {
			w.Dispatch(func() { w.Eval(js) })
		})
	})
	if err != nil {
		return fmt.Errorf("bind %s: %w", bridge.BindingName, err)
	}
	w.Init(bridge.Script())
	return nil
}

// CreateWindow 在 UI 线程上创建附加窗口并等待结果。
// ctx 只在 UI 线程真正执行前生效；一旦开始创建，返回值如实反映窗口是否存在。
func (d *desktop) CreateWindow(ctx context.Context, spec windows.Spec) error {
	if d.main == nil {
		return errors.New("main window is not running")
	}

	done := make(chan error, 1)
	d.main.Dispatch(func() {
		if err := ctx.Err(); err != nil {
			done <- err
			return
		}
		nw := webview.New(d.opts.Debug)
		if nw == nil {
			done <- errors.New("failed to create webview window")
			return
		}
		if err := d.install(nw); err != nil {
			nw.Destroy()
			done <- err
			return
		}
		nw.SetTitle(spec.Title)
		nw.SetSize(spec.Width, spec.Height, webview.HintNone)
		nw.Navigate(spec.URL)

		d.extra.Add(spec.Label, nw)
		done <- nil
	})

	return windows.AwaitCreated(done, d.closed)
}
