package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"webshell/internal/domain/model"
	"webshell/internal/platform/id"

	_ "modernc.org/sqlite"
)

// Store 封装实例级历史库（下载记录、新窗口记录）的读写。
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open 打开（必要时创建）dbPath 处的 SQLite 库并执行迁移。
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// 多个命令并发写入；SQLite 单写者，串行化连接避免 SQLITE_BUSY。
	db.SetMaxOpenConns(1)

	if err := NewMigrator(db).Up(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewStore(db), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordDownload 写入一条下载记录；ID 为空时自动生成。
func (s *Store) RecordDownload(ctx context.Context, d model.DownloadRecord) error {
	if d.ID == "" {
		d.ID = id.New("dl")
	}
	if d.CreatedAt == 0 {
		d.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO downloads(id, url, path, mime, size, sha256, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.URL, d.Path, d.MIME, d.Size, d.SHA256, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert download: %w", err)
	}
	return nil
}

// RecordWindow 写入一条新窗口记录。
func (s *Store) RecordWindow(ctx context.Context, w model.WindowRecord) error {
	if w.CreatedAt == 0 {
		w.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO windows(label, url, created_at)
		VALUES(?, ?, ?)
	`, w.Label, w.URL, w.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert window: %w", err)
	}
	return nil
}

// ListDownloads 按时间倒序返回最近 limit 条下载记录（limit<=0 时默认 50）。
func (s *Store) ListDownloads(ctx context.Context, limit int) ([]model.DownloadRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, path, mime, size, sha256, created_at
		FROM downloads
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query downloads: %w", err)
	}
	defer rows.Close()

	out := []model.DownloadRecord{}
	for rows.Next() {
		var d model.DownloadRecord
		if err := rows.Scan(&d.ID, &d.URL, &d.Path, &d.MIME, &d.Size, &d.SHA256, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan download: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountWindows 返回已记录的新窗口数量。
func (s *Store) CountWindows(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM windows`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count windows: %w", err)
	}
	return n, nil
}

// Summary 汇总最近一次下载与累计新窗口数，用于启动日志。
func (s *Store) Summary(ctx context.Context) (model.HistorySummary, error) {
	var sum model.HistorySummary
	recent, err := s.ListDownloads(ctx, 1)
	if err != nil {
		return sum, err
	}
	if len(recent) > 0 {
		sum.LastDownloadPath = recent[0].Path
	}
	if sum.WindowsOpened, err = s.CountWindows(ctx); err != nil {
		return sum, err
	}
	return sum, nil
}
