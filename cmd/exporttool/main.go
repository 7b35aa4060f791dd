package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"resume-studio/internal/model"
	"resume-studio/internal/usecase"
	infra "resume-studio/pkg/infrastructure"
)

// exporttool renders a resume JSON file with a template JSON file and writes
// the exported document, for iterating on templates without the server.
func main() {
	templatePath := flag.String("template", "", "template AST JSON file (default: built-in template)")
	resumePath := flag.String("resume", "", "resume data JSON file")
	outPath := flag.String("out", "resume.html", "output file")
	pdf := flag.Bool("pdf", false, "export PDF via headless chrome instead of HTML")
	flag.Parse()

	ast := usecase.DefaultTemplateAST()
	if *templatePath != "" {
		b, err := os.ReadFile(*templatePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read template: %v\n", err)
			os.Exit(2)
		}
		ast = &model.TemplateAST{}
		if err := json.Unmarshal(b, ast); err != nil {
			fmt.Fprintf(os.Stderr, "unmarshal template: %v\n", err)
			os.Exit(2)
		}
	}

	data := &model.ResumeData{}
	if *resumePath != "" {
		b, err := os.ReadFile(*resumePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read resume: %v\n", err)
			os.Exit(2)
		}
		if err := json.Unmarshal(b, data); err != nil {
			fmt.Fprintf(os.Stderr, "unmarshal resume: %v\n", err)
			os.Exit(2)
		}
	}

	layout := model.DefaultLayoutConfig()

	if *pdf {
		exporter := usecase.NewExporter(infra.NewChromedpRenderer())
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		out, err := exporter.ExportPDF(ctx, ast, data, &layout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "export pdf: %v\n", err)
			os.Exit(2)
		}
		if err := os.WriteFile(*outPath, out, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write out: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("wrote %s\n", *outPath)
		return
	}

	exporter := usecase.NewExporter(nil)
	doc, err := exporter.ExportHTML(ast, data, &layout, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export html: %v\n", err)
		os.Exit(2)
	}
	if err := os.WriteFile(*outPath, []byte(doc), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write out: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("wrote %s\n", *outPath)
}
