package model

// DownloadRecord 是一次成功保存图片的留痕。
type DownloadRecord struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Path      string `json:"path"`
	MIME      string `json:"mime"`
	Size      int64  `json:"size"`
	SHA256    string `json:"sha256"`
	CreatedAt int64  `json:"created_at"`
}

// WindowRecord 是一次成功打开新窗口的留痕。
type WindowRecord struct {
	Label     string `json:"label"`
	URL       string `json:"url"`
	CreatedAt int64  `json:"created_at"`
}

// HistorySummary 是实例历史库的启动概况。
type HistorySummary struct {
	LastDownloadPath string `json:"last_download_path"`
	WindowsOpened    int    `json:"windows_opened"`
}
