package imagesave

import (
	"net/url"
	"strings"
)

const (
	// FallbackFileName 在 URL 无法解析时作为保存对话框的默认文件名。
	FallbackFileName = "image.png"
	defaultBaseName  = "image"
	defaultExt       = ".png"
)

// ImageExtensions 是保存对话框的图片类型过滤器。
var ImageExtensions = []string{"png", "jpg", "jpeg", "gif", "webp", "bmp", "svg"}

// DeriveFileName 从图片地址推导默认文件名：
// 取路径最后一个非空段；没有 "." 就补 .png；解析失败回落到 image.png。
func DeriveFileName(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() {
		return FallbackFileName
	}

	last := defaultBaseName
	segs := strings.Split(u.Path, "/")
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i] != "" {
			last = segs[i]
			break
		}
	}
	if strings.Contains(last, ".") {
		return last
	}
	return last + defaultExt
}
