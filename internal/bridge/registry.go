package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

var ErrUnknownCommand = errors.New("unknown command")

// Handler 处理一次脚本侧调用：入参为原始 JSON，返回值会被序列化回脚本。
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Registry 把命令名映射到原生处理函数，与具体的 webview 绑定机制解耦。
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{handlers: map[string]Handler{}, log: log}
}

// Handle 注册（或替换）命令。
func (r *Registry) Handle(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Register 以强类型方式注册命令：参数 JSON 解码为 A，返回值 R 原样序列化。
func Register[A, R any](r *Registry, name string, fn func(context.Context, A) (R, error)) {
	r.Handle(name, func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args A
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
			}
		}
		return fn(ctx, args)
	})
}

// Names 返回已注册命令名（字典序）。
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Dispatch 同步执行一次命令调用。
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	res, err := h(ctx, args)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode result of %s: %w", name, err)
	}
	return out, nil
}

// Go 在独立 goroutine 中执行调用，完成后把回传脚本交给 deliver。
// deliver 负责切回 UI 线程执行脚本（webview 的 Dispatch + Eval）。
func (r *Registry) Go(ctx context.Context, callID int64, name, args string, deliver func(js string)) {
	go func() {
		res, err := r.Dispatch(ctx, name, json.RawMessage(args))
		if err != nil {
			r.log.Warn("bridge command failed",
				zap.String("command", name),
				zap.Int64("call_id", callID),
				zap.Error(err),
			)
		}
		deliver(ResolveScript(callID, res, err))
	}()
}

// ResolveScript 生成把结果送回脚本侧 pending promise 的 JS 片段。
// 错误统一转成字符串，脚本侧以 Error(message) 拒绝。
func ResolveScript(callID int64, result json.RawMessage, err error) string {
	if err != nil {
		msg, _ := json.Marshal(err.Error())
		return fmt.Sprintf("window.%s && window.%s.resolve(%d, false, %s)", globalName, globalName, callID, msg)
	}
	if len(result) == 0 {
		result = json.RawMessage("null")
	}
	return fmt.Sprintf("window.%s && window.%s.resolve(%d, true, %s)", globalName, globalName, callID, result)
}
