package app

import (
	"context"

	"webshell/internal/bridge"
	"webshell/internal/domain/model"
)

// Downloader / Spawner / SavePicker 是原生命令的最小依赖面，便于测试替换。
type Downloader interface {
	Download(ctx context.Context, rawURL, path string) error
	ExportPDF(ctx context.Context, rawURL, path string) error
}

type Spawner interface {
	Open(ctx context.Context, target string) (string, error)
}

type SavePicker interface {
	PickSavePath(ctx context.Context, imageURL string) (string, error)
	PickPDFPath(ctx context.Context, imageURL string) (string, error)
}

// RegisterCommands 把原生命令挂到桥接注册表上。
func RegisterCommands(reg *bridge.Registry, dl Downloader, sp Spawner, picker SavePicker) {
	bridge.Register(reg, bridge.CommandDownloadImage, func(ctx context.Context, req model.DownloadRequest) (struct{}, error) {
		return struct{}{}, dl.Download(ctx, req.URL, req.Path)
	})
	bridge.Register(reg, bridge.CommandOpenNewWindow, func(ctx context.Context, req model.OpenWindowRequest) (struct{}, error) {
		target := ""
		if req.URL != nil {
			target = *req.URL
		}
		_, err := sp.Open(ctx, target)
		return struct{}{}, err
	})
	bridge.Register(reg, bridge.CommandPickSavePath, func(ctx context.Context, req model.SavePathRequest) (model.SavePathResult, error) {
		path, err := picker.PickSavePath(ctx, req.URL)
		return model.SavePathResult{Path: path}, err
	})
	bridge.Register(reg, bridge.CommandExportImagePDF, func(ctx context.Context, req model.DownloadRequest) (struct{}, error) {
		return struct{}{}, dl.ExportPDF(ctx, req.URL, req.Path)
	})
	bridge.Register(reg, bridge.CommandPickPDFPath, func(ctx context.Context, req model.SavePathRequest) (model.SavePathResult, error) {
		path, err := picker.PickPDFPath(ctx, req.URL)
		return model.SavePathResult{Path: path}, err
	})
}
