package bridge

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"strings"
	"text/template"
)

// 原生命令名，脚本侧与宿主侧共用。
const (
	CommandDownloadImage = "download_image"
	CommandOpenNewWindow = "open_new_window"
	CommandPickSavePath  = "pick_save_path"

	// Alt+点击图片：另存为单页 PDF。
	CommandExportImagePDF = "export_image_pdf"
	CommandPickPDFPath    = "pick_pdf_path"

	// BindingName 是宿主通过 webview Bind 暴露给页面的唯一入口函数。
	BindingName = "__webshell_invoke"

	globalName = "__webshell"
	markerKey  = "webshell.bridge.installed"
)

//go:embed inject.js
var injectSource string

var injectTmpl = template.Must(template.New("inject").Parse(injectSource))

type scriptParams struct {
	Marker        string
	Binding       string
	Global        string
	DownloadImage string
	OpenNewWindow string
	PickSavePath  string
	ExportPDF     string
	PickPDFPath   string
}

// Script 渲染每次页面加载都会注入的脚本。
// 页面内以 Symbol.for(marker) 标记已安装；整页导航会重置标记并重新安装。
func Script() string {
	p := scriptParams{
		Marker:        jsString(markerKey),
		Binding:       jsString(BindingName),
		Global:        jsString(globalName),
		DownloadImage: jsString(CommandDownloadImage),
		OpenNewWindow: jsString(CommandOpenNewWindow),
		PickSavePath:  jsString(CommandPickSavePath),
		ExportPDF:     jsString(CommandExportImagePDF),
		PickPDFPath:   jsString(CommandPickPDFPath),
	}
	var buf bytes.Buffer
	if err := injectTmpl.Execute(&buf, p); err != nil {
		// 模板与参数都是编译期常量，这里失败说明 inject.js 本身有误。
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
