package usecase

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"

	"resume-studio/internal/model"
	"resume-studio/internal/render"
)

// Renderer turns a standalone HTML document into PDF bytes. The chromedp
// implementation lives in pkg/infrastructure.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

var themeColors = map[string]string{
	"modern-blue":     "#2563eb",
	"classic-black":   "#1f2937",
	"minimal-gray":    "#6b7280",
	"creative-purple": "#7c3aed",
}

var fontFamilies = map[string]string{
	"system": "-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif",
	"serif":  "Georgia, 'Times New Roman', serif",
	"mono":   "'SF Mono', 'Fira Code', Consolas, monospace",
}

// Exporter wraps the render core's export markup into complete documents and
// rasterizes them to PDF.
type Exporter struct {
	renderer Renderer
	minifier *minify.M
}

func NewExporter(r Renderer) *Exporter {
	m := minify.New()
	m.AddFunc("text/html", mhtml.Minify)
	return &Exporter{renderer: r, minifier: m}
}

// BuildDocument renders the template against the resume and wraps the markup
// in a standalone document: doctype, charset, print page setup, layout
// theming and the template's global styles. The output embeds directly into
// the PDF renderer's input.
func (e *Exporter) BuildDocument(ast *model.TemplateAST, data *model.ResumeData, layout *model.LayoutConfig) string {
	cfg := model.DefaultLayoutConfig()
	if layout != nil {
		cfg = *layout
	}

	primary := cfg.PrimaryColor
	if primary == "" {
		primary = themeColors[cfg.Theme]
	}
	if primary == "" {
		primary = themeColors["modern-blue"]
	}
	fontSize := cfg.FontSize
	if fontSize == "" {
		fontSize = "14px"
	}
	lineHeight := cfg.LineHeight
	if lineHeight == "" {
		lineHeight = "1.6"
	}
	fontFamily := fontFamilies[cfg.FontFamily]
	if fontFamily == "" {
		fontFamily = fontFamilies["system"]
	}
	background := cfg.BackgroundColor
	if background == "" {
		background = "#ffffff"
	}

	title := "Resume"
	if data != nil && data.Profile.Name != "" {
		title = data.Profile.Name
	}

	var globalStyles string
	if ast != nil {
		globalStyles = ast.GlobalStyles
	}

	markup := render.RenderHTML(ast, data)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(`<meta charset="UTF-8">` + "\n")
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	b.WriteString("<style>\n")
	b.WriteString("@page { size: A4; margin: 2cm; }\n")
	fmt.Fprintf(&b, "body { font-family: %s; font-size: %s; line-height: %s; color: #333; background: %s; margin: 0; }\n",
		fontFamily, fontSize, lineHeight, background)
	fmt.Fprintf(&b, ":root { --primary-color: %s; }\n", primary)
	if globalStyles != "" {
		b.WriteString(globalStyles)
		b.WriteString("\n")
	}
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString(markup)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

// ExportHTML builds the document, optionally minified for compact downloads.
func (e *Exporter) ExportHTML(ast *model.TemplateAST, data *model.ResumeData, layout *model.LayoutConfig, minified bool) (string, error) {
	doc := e.BuildDocument(ast, data, layout)
	if !minified {
		return doc, nil
	}
	out, err := e.minifier.String("text/html", doc)
	if err != nil {
		return "", fmt.Errorf("minify export: %w", err)
	}
	return out, nil
}

// ExportPDF builds the document and rasterizes it. Rendering is retried with
// backoff because headless Chrome startup is flaky under load; output must
// carry a PDF signature to count as a success.
func (e *Exporter) ExportPDF(ctx context.Context, ast *model.TemplateAST, data *model.ResumeData, layout *model.LayoutConfig) ([]byte, error) {
	if e.renderer == nil {
		return nil, fmt.Errorf("no PDF renderer configured")
	}
	doc := e.BuildDocument(ast, data, layout)

	var pdf []byte
	var renderErr error
	attempts := 3
	for i := 0; i < attempts; i++ {
		pdf, renderErr = e.renderer.RenderHTMLToPDF(ctx, doc)
		if renderErr == nil {
			if bytes.HasPrefix(pdf, []byte("%PDF")) {
				return pdf, nil
			}
			renderErr = fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
		}
		log.Printf("exporter: render attempt %d failed: %v", i+1, renderErr)
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("pdf rendering failed after %d attempts: %w", attempts, renderErr)
}
