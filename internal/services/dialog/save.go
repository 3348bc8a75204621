package dialog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"webshell/internal/services/imagesave"

	"github.com/ncruces/zenity"
	"go.uber.org/zap"
)

// SaveFunc 弹出保存对话框并返回用户选中的路径。
// 用户取消时返回 zenity.ErrCanceled。
type SaveFunc func(ctx context.Context, defaultName string, filters zenity.FileFilters) (string, error)

// ImageFilters 是图片保存对话框的类型过滤器（只含图片类型）。
func ImageFilters() zenity.FileFilters {
	patterns := make([]string, 0, len(imagesave.ImageExtensions))
	for _, ext := range imagesave.ImageExtensions {
		patterns = append(patterns, "*."+ext)
	}
	return zenity.FileFilters{{Name: "Image", Patterns: patterns, CaseFold: true}}
}

// PDFFilters 只用于“另存为 PDF”。
func PDFFilters() zenity.FileFilters {
	return zenity.FileFilters{{Name: "PDF", Patterns: []string{"*.pdf"}, CaseFold: true}}
}

// Service 实现 pick_save_path / pick_pdf_path：按图片地址推导默认文件名并弹出原生保存对话框。
type Service struct {
	save SaveFunc
	log  *zap.Logger
}

func NewService(save SaveFunc, log *zap.Logger) *Service {
	if save == nil {
		save = NativeSave("")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{save: save, log: log}
}

// PickSavePath 返回用户选择的保存路径；用户取消时返回空串且不报错。
func (s *Service) PickSavePath(ctx context.Context, imageURL string) (string, error) {
	return s.pick(ctx, imagesave.DeriveFileName(imageURL), ImageFilters())
}

// PickPDFPath 与 PickSavePath 相同，但默认文件名换成 .pdf 扩展名。
func (s *Service) PickPDFPath(ctx context.Context, imageURL string) (string, error) {
	name := imagesave.DeriveFileName(imageURL)
	name = strings.TrimSuffix(name, path.Ext(name)) + ".pdf"
	return s.pick(ctx, name, PDFFilters())
}

func (s *Service) pick(ctx context.Context, name string, filters zenity.FileFilters) (string, error) {
	p, err := s.save(ctx, name, filters)
	if errors.Is(err, zenity.ErrCanceled) {
		s.log.Debug("save dialog cancelled", zap.String("default", name))
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("save dialog: %w", err)
	}
	return p, nil
}

// NativeSave 使用 zenity 的系统保存对话框（macOS/Windows 原生，Linux 走 zenity/kdialog）。
func NativeSave(title string) SaveFunc {
	if title == "" {
		title = "Save image"
	}
	return func(ctx context.Context, defaultName string, filters zenity.FileFilters) (string, error) {
		return zenity.SelectFileSave(
			zenity.Context(ctx),
			zenity.Title(title),
			zenity.Filename(defaultName),
			zenity.ConfirmOverwrite(),
			filters,
		)
	}
}
