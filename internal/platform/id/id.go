package id

import (
	"github.com/google/uuid"
)

// New 生成带前缀的唯一 ID：prefix_<uuid>，便于在日志里按前缀区分记录类型。
func New(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return prefix + "_" + uuid.NewString()
}
