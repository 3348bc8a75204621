package imagesave

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"webshell/internal/domain/model"
	"webshell/internal/platform/hash"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var (
	ErrInvalidURL        = errors.New("invalid url")
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
)

// Recorder 接收成功下载的留痕记录（实例历史库）。
type Recorder interface {
	RecordDownload(ctx context.Context, d model.DownloadRecord) error
}

// Downloader 实现 download_image：GET 图片并整体写入目标路径。
//
// 约定：
//   - 只接受 http/https
//   - 不重试、不设超时（沿用 HTTP 客户端默认值）
//   - 响应体完整读入内存后才落盘；目标已存在时直接覆盖
type Downloader struct {
	client *resty.Client
	rec    Recorder
	log    *zap.Logger
}

// NewDownloader 创建下载器；client 为空时使用 resty 默认客户端，rec 可为空。
func NewDownloader(client *resty.Client, rec Recorder, log *zap.Logger) *Downloader {
	if client == nil {
		client = resty.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Downloader{client: client, rec: rec, log: log}
}

// Download 把 rawURL 的响应体原样保存到 path（不论扩展名）。
func (d *Downloader) Download(ctx context.Context, rawURL, path string) error {
	u, body, err := d.fetch(ctx, rawURL, path)
	if err != nil {
		return err
	}
	return d.save(ctx, u, path, body, body)
}

// ExportPDF 下载图片并嵌入单页 PDF 后写入 path；只支持 PNG/JPEG/GIF。
// 与 Download 是两个独立命令，download_image 的落盘内容始终等于响应体。
func (d *Downloader) ExportPDF(ctx context.Context, rawURL, path string) error {
	u, body, err := d.fetch(ctx, rawURL, path)
	if err != nil {
		return err
	}
	out, err := RenderPDF(body, DeriveFileName(u.String()))
	if err != nil {
		return err
	}
	return d.save(ctx, u, path, body, out)
}

// fetch 校验地址并把完整响应体读入内存；任何失败都发生在触碰文件系统之前。
func (d *Downloader) fetch(ctx context.Context, rawURL, path string) (*url.URL, []byte, error) {
	u, err := ParseImageURL(rawURL)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(path) == "" {
		return nil, nil, fmt.Errorf("destination path is empty")
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(u.String())
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	raw := resp.RawBody()
	defer raw.Close()

	if !resp.IsSuccess() {
		return nil, nil, fmt.Errorf("request failed with status: %s", resp.Status())
	}

	body, err := io.ReadAll(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return u, body, nil
}

// save 写入 out 并留痕；mime 按原始响应体 body 识别。
func (d *Downloader) save(ctx context.Context, u *url.URL, path string, body, out []byte) error {
	if err := writeFile(path, out); err != nil {
		return err
	}
	mime := mimetype.Detect(body).String()

	d.log.Info("image saved",
		zap.String("url", u.String()),
		zap.String("path", path),
		zap.String("mime", mime),
		zap.String("size", humanize.Bytes(uint64(len(out)))),
	)

	if d.rec != nil {
		rec := model.DownloadRecord{
			URL:    u.String(),
			Path:   path,
			MIME:   mime,
			Size:   int64(len(out)),
			SHA256: hash.Bytes(out),
		}
		// 留痕失败不影响下载结果。
		if err := d.rec.RecordDownload(ctx, rec); err != nil {
			d.log.Warn("record download failed", zap.Error(err))
		}
	}
	return nil
}

// ParseImageURL 解析并校验图片地址，只放行 http/https。
func ParseImageURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: relative url without a base", ErrInvalidURL)
	}
	switch u.Scheme {
	case "http", "https":
		return u, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
}

func writeFile(path string, data []byte) error {
	if parent := filepath.Dir(path); parent != "" && parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}
	}
	// 非原子替换：写到一半崩溃可能留下截断文件，这里只保证错误一定返回给调用方。
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
