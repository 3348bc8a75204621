package model

// DownloadRequest 对应桥接命令 download_image 的参数。
type DownloadRequest struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// OpenWindowRequest 对应桥接命令 open_new_window 的参数；URL 可缺省。
type OpenWindowRequest struct {
	URL *string `json:"url,omitempty"`
}

// SavePathRequest 对应桥接命令 pick_save_path 的参数。
type SavePathRequest struct {
	URL string `json:"url"`
}

// SavePathResult 是保存对话框的结果；用户取消时 Path 为空。
type SavePathResult struct {
	Path string `json:"path"`
}
