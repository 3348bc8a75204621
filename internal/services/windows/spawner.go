package windows

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"webshell/internal/domain/model"

	"go.uber.org/zap"
)

var (
	ErrInvalidURL    = errors.New("invalid url")
	ErrBlockedDomain = errors.New("blocked domain")
)

// Spec 描述一个待创建的顶层窗口。
type Spec struct {
	Label  string
	Title  string
	URL    string
	Width  int
	Height int
	Center bool
}

// Creator 由 webview 宿主实现，负责在 UI 线程上真正创建窗口。
type Creator interface {
	CreateWindow(ctx context.Context, spec Spec) error
}

// Recorder 接收成功打开窗口的留痕记录。
type Recorder interface {
	RecordWindow(ctx context.Context, w model.WindowRecord) error
}

// Options 是新窗口的固定参数。
type Options struct {
	AllowedHost string
	DefaultURL  string
	Title       string
	Width       int
	Height      int
}

// Spawner 实现 open_new_window。
// 标签计数器由 Spawner 持有，进程内单调递增，保证 win-<n> 不重复。
type Spawner struct {
	opts    Options
	creator Creator
	rec     Recorder
	log     *zap.Logger

	next atomic.Uint64
}

func NewSpawner(opts Options, creator Creator, rec Recorder, log *zap.Logger) *Spawner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Spawner{opts: opts, creator: creator, rec: rec, log: log}
}

// Open 校验目标地址并打开新窗口，返回分配的标签。
// target 为空或全空白时使用默认地址（不做白名单校验）。
func (s *Spawner) Open(ctx context.Context, target string) (string, error) {
	dest, err := s.Target(target)
	if err != nil {
		return "", err
	}

	label := s.nextLabel()
	spec := Spec{
		Label:  label,
		Title:  s.opts.Title,
		URL:    dest,
		Width:  s.opts.Width,
		Height: s.opts.Height,
		Center: true,
	}
	if err := s.creator.CreateWindow(ctx, spec); err != nil {
		return "", fmt.Errorf("create window %s: %w", label, err)
	}
	s.log.Info("window opened", zap.String("label", label), zap.String("url", dest))

	if s.rec != nil {
		if err := s.rec.RecordWindow(ctx, model.WindowRecord{Label: label, URL: dest}); err != nil {
			s.log.Warn("record window failed", zap.Error(err))
		}
	}
	return label, nil
}

// Target 返回实际要打开的地址。
// 非空地址必须能解析且主机名与白名单完全相等，否则拒绝。
func (s *Spawner) Target(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return s.opts.DefaultURL, nil
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("%w: relative url without a base", ErrInvalidURL)
	}
	// 与白名单比较的是不含端口的主机名（大小写不敏感，URL 解析后域名本就是小写语义）。
	if host := strings.ToLower(u.Hostname()); host != strings.ToLower(s.opts.AllowedHost) {
		return "", fmt.Errorf("%w: %s", ErrBlockedDomain, host)
	}
	return u.String(), nil
}

func (s *Spawner) nextLabel() string {
	return "win-" + strconv.FormatUint(s.next.Add(1), 10)
}
