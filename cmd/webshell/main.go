package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	sqliteadapter "webshell/internal/adapters/store/sqlite"
	"webshell/internal/app"
	"webshell/internal/bridge"
	"webshell/internal/logging"
	"webshell/internal/services/dialog"
	"webshell/internal/services/imagesave"
	"webshell/internal/services/windows"

	"go.uber.org/zap"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run 按固定顺序启动壳应用：
//  1. 解析实例目录并创建；设置隔离环境变量（必须早于 webview 初始化）
//  2. 打开实例历史库
//  3. 注册原生命令，启动 webview（每次页面加载注入桥接脚本）
func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("webshell", flag.ContinueOnError)
	configPath := fs.String("config", "webshell.yaml", "yaml config file (optional)")
	debug := fs.Bool("debug", false, "console logs and webview devtools")
	// 以下两个参数由 app.ResolveInstanceDir 直接扫描原始参数；这里声明只为让 flag 接受它们。
	_ = fs.String("user-data-dir", "", "explicit instance directory")
	_ = fs.String("profile", "", "named profile under the data directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	log := logging.NewOrNop(cfg.LogLevel, *debug)
	defer func() { _ = log.Sync() }()

	instanceDir := app.ResolveInstanceDir(args, cfg.DataRoot)
	isolated := true
	if err := app.EnsureInstanceDir(instanceDir); err != nil {
		// 非致命：继续运行，但失去存储隔离保证。
		log.Warn("instance directory unavailable, storage isolation disabled", zap.Error(err))
		isolated = false
	}
	if isolated {
		if applied, err := app.ApplyIsolationEnv(instanceDir); err != nil {
			log.Warn("apply isolation env failed", zap.Error(err))
		} else if applied {
			log.Debug("webview data folder redirected", zap.String("dir", instanceDir))
		}
	}

	title := cfg.WindowTitle
	if exe, err := os.Executable(); err == nil {
		info, err := app.ReadBundleInfo(exe)
		if err != nil {
			log.Warn("read bundle info failed", zap.Error(err))
		}
		title = info.Title(cfg.WindowTitle)
	}
	log.Info("starting",
		zap.String("title", title),
		zap.String("instance_dir", instanceDir),
		zap.String("start_url", cfg.StartURL),
	)

	sigCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		dlRec  imagesave.Recorder
		winRec windows.Recorder
	)
	store, err := sqliteadapter.Open(sigCtx, filepath.Join(instanceDir, cfg.HistoryDB))
	if err != nil {
		log.Warn("history store unavailable", zap.Error(err))
	} else {
		defer store.Close()
		dlRec, winRec = store, store
		logHistory(sigCtx, log, store)
	}

	reg := bridge.NewRegistry(log.Named("bridge"))
	host, err := newDesktop(desktopOptions{
		Debug:       *debug,
		Title:       title,
		Width:       cfg.WindowWidth,
		Height:      cfg.WindowHeight,
		StartURL:    cfg.StartURL,
		InstanceDir: instanceDir,
	}, reg, log.Named("desktop"))
	if err != nil {
		return err
	}

	spawner := windows.NewSpawner(windows.Options{
		AllowedHost: cfg.AllowedHost,
		DefaultURL:  cfg.DefaultURL,
		Title:       title,
		Width:       cfg.WindowWidth,
		Height:      cfg.WindowHeight,
	}, host, winRec, log.Named("windows"))
	downloader := imagesave.NewDownloader(nil, dlRec, log.Named("imagesave"))
	picker := dialog.NewService(dialog.NativeSave(title), log.Named("dialog"))
	app.RegisterCommands(reg, downloader, spawner, picker)
	log.Debug("bridge commands registered", zap.Strings("commands", reg.Names()))

	return host.Run(sigCtx)
}

// logHistory 在启动时输出本实例的历史概况。
func logHistory(ctx context.Context, log *zap.Logger, store *sqliteadapter.Store) {
	sum, err := store.Summary(ctx)
	if err != nil {
		log.Warn("read history summary failed", zap.Error(err))
		return
	}
	log.Info("instance history",
		zap.Int("windows_opened", sum.WindowsOpened),
		zap.String("last_download", sum.LastDownloadPath),
	)
}

// desktopOptions 是主窗口参数。
type desktopOptions struct {
	Debug       bool
	Title       string
	Width       int
	Height      int
	StartURL    string
	InstanceDir string
}

// desktopHost 由 webview 实现（见 webview_cgo.go）；无 CGO 构建时为占位实现。
type desktopHost interface {
	windows.Creator
	Run(ctx context.Context) error
}
