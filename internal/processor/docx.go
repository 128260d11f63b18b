package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/speaker-scribe/internal/source"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// uploadDocx renders text into a docx file and uploads it at key.
func (p *implProcessor) uploadDocx(ctx context.Context, item source.WorkItem, text, key string) error {
	tempDir, err := os.MkdirTemp("", "docx-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer p.cleanupTempDir(ctx, tempDir)

	path := filepath.Join(tempDir, "transcript.docx")
	if err := transcriptToDocx(docxTitle(item), text, path); err != nil {
		return fmt.Errorf("render docx: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read docx: %w", err)
	}

	return p.store.Put(ctx, key, data)
}

// cleanupTempDir removes a temporary directory, logs warning if fails
func (p *implProcessor) cleanupTempDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	}
}

func docxTitle(item source.WorkItem) string {
	if item.Title != "" {
		return item.Title
	}
	return item.ID()
}

// transcriptToDocx writes one paragraph per "{name}:\n{text}" block with the
// speaker name in bold.
func transcriptToDocx(title, text, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	for _, block := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		name, speech, ok := strings.Cut(block, "\n")
		p := doc.AddParagraph("")
		if !ok {
			addStyledRun(p, block, false, fontSize)
			continue
		}
		addStyledRun(p, name+" ", true, fontSize)
		addStyledRun(p, speech, false, fontSize)
	}

	return doc.SaveTo(outputPath)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
