package windows

import (
	"errors"
	"sort"
	"sync"
)

// ErrHostClosed 表示主事件循环已退出，创建请求不会再被执行。
var ErrHostClosed = errors.New("main window closed")

// Handles 按标签保存宿主创建的窗口句柄，退出时统一回收。
type Handles[T any] struct {
	mu    sync.Mutex
	items map[string]T
}

func NewHandles[T any]() *Handles[T] {
	return &Handles[T]{items: map[string]T{}}
}

func (h *Handles[T]) Add(label string, v T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items[label] = v
}

func (h *Handles[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Drain 取出全部句柄（按标签排序）并清空集合。
func (h *Handles[T]) Drain() []T {
	h.mu.Lock()
	defer h.mu.Unlock()
	labels := make([]string, 0, len(h.items))
	for l := range h.items {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	out := make([]T, 0, len(labels))
	for _, l := range labels {
		out = append(out, h.items[l])
	}
	h.items = map[string]T{}
	return out
}

// AwaitCreated 等待投递到 UI 线程的创建任务回报结果。
// 任务一旦投递就必须等它的结果，否则会把已创建的窗口报告成失败；
// 只有事件循环退出（closed 关闭）时任务才不会再执行。
func AwaitCreated(done <-chan error, closed <-chan struct{}) error {
	select {
	case err := <-done:
		return err
	case <-closed:
		// 关闭与完成同时就绪时以完成结果为准。
		select {
		case err := <-done:
			return err
		default:
			return ErrHostClosed
		}
	}
}
