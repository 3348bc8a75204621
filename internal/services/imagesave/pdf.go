package imagesave

import (
	"bytes"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/phpdave11/gofpdf"
)

// gofpdf 只认识这三种位图格式。
var pdfImageTypes = map[string]string{
	"image/png":  "PNG",
	"image/jpeg": "JPG",
	"image/gif":  "GIF",
}

// RenderPDF 把一张图片嵌入单页 PDF，页面尺寸与图片一致（无边距）。
func RenderPDF(img []byte, name string) ([]byte, error) {
	mime := mimetype.Detect(img).String()
	imageType, ok := pdfImageTypes[mime]
	if !ok {
		return nil, fmt.Errorf("cannot export %s as pdf", mime)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: imageType}
	info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("register image: %w", err)
	}
	w, h := info.Width(), info.Height()

	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
	pdf.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
