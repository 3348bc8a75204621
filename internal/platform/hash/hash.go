package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Bytes 计算内存数据的 SHA-256，用于下载记录的完整性留痕。
func Bytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
