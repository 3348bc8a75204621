package app

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

const (
	userDataDirFlag = "--user-data-dir"
	profileFlag     = "--profile"

	// WebView2 在 Windows 上从该变量读取用户数据目录（cookie/缓存/localStorage）。
	webView2DataEnv = "WEBVIEW2_USER_DATA_FOLDER"
)

var instanceNameRe = regexp.MustCompile(`^instance-(\d+)$`)

// ResolveInstanceDir 选择本进程使用的实例目录，先匹配者优先：
//  1. --user-data-dir=<path>  原样使用
//  2. --profile=<name>        dataRoot/<name>
//  3. 自动编号                 dataRoot/instance-<max+1>
//
// 同时支持 "--flag=value" 与 "--flag value" 两种写法；其它参数一律忽略。
func ResolveInstanceDir(args []string, dataRoot string) string {
	if dir, ok := flagValue(args, userDataDirFlag); ok {
		return dir
	}
	if name, ok := flagValue(args, profileFlag); ok {
		return filepath.Join(dataRoot, name)
	}
	return filepath.Join(dataRoot, fmt.Sprintf("instance-%d", maxInstanceNumber(dataRoot)+1))
}

func flagValue(args []string, name string) (string, bool) {
	for i, a := range args {
		if v, ok := strings.CutPrefix(a, name+"="); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v, true
			}
			continue
		}
		if a == name && i+1 < len(args) {
			if v := strings.TrimSpace(args[i+1]); v != "" && !strings.HasPrefix(v, "-") {
				return v, true
			}
		}
	}
	return "", false
}

// maxInstanceNumber 扫描 dataRoot 下的 instance-<n> 目录，返回最大的 n。
// 目录不存在或没有匹配项时返回 0。
func maxInstanceNumber(dataRoot string) int {
	entries, err := os.ReadDir(dataRoot)
	if err != nil {
		return 0
	}
	maxN := 0
	for _, e := range entries {
		m := instanceNameRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > maxN {
			maxN = n
		}
	}
	return maxN
}

// EnsureInstanceDir 递归创建实例目录。
func EnsureInstanceDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create instance directory %s: %w", dir, err)
	}
	return nil
}

// ApplyIsolationEnv 把 webview 运行时的私有存储指向实例目录。
// 必须在创建第一个 webview 之前调用，否则隔离静默失效。
// 只有 Windows(WebView2) 支持该变量；其它平台返回 applied=false。
func ApplyIsolationEnv(dir string) (applied bool, err error) {
	return applyIsolationEnv(runtime.GOOS, dir, os.Setenv)
}

func applyIsolationEnv(goos, dir string, setenv func(key, value string) error) (bool, error) {
	if goos != "windows" {
		return false, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false, fmt.Errorf("resolve instance directory: %w", err)
	}
	if err := setenv(webView2DataEnv, abs); err != nil {
		return false, fmt.Errorf("set %s: %w", webView2DataEnv, err)
	}
	return true, nil
}
