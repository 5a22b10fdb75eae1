// Package report assembles the final report file and writes it.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-jest-html-reporter/config"
	"github.com/bitrise-steplib/steps-jest-html-reporter/document"
	"github.com/bitrise-steplib/steps-jest-html-reporter/markup"
	"github.com/bitrise-steplib/steps-jest-html-reporter/output"
	"golang.org/x/net/html"
)

const (
	// ContentPlaceholder is replaced by the report content in boilerplate templates.
	ContentPlaceholder = "{jesthtmlreporter-content}"

	logPrefix    = "jest-html-reporter >> "
	bodyOpenTag  = "<body>"
	bodyCloseTag = "</body>"
)

// Asset is an extra file written next to the report.
type Asset struct {
	Path    string
	Content string
}

// Report ...
type Report struct {
	Path    string
	Full    string
	Content string
	Assets  []Asset
}

// Assembler ...
type Assembler interface {
	// Render builds the report without touching the output file.
	Render(data document.Data) (Report, error)
	// Generate renders and writes the report. Failures are logged, never returned.
	Generate(data document.Data) (Report, bool)
}

type assembler struct {
	config       config.Config
	rootDir      string
	builder      document.Builder
	writer       output.ReportWriter
	pathModifier pathutil.PathModifier
	logger       log.Logger
}

// NewAssembler ...
func NewAssembler(cfg config.Config, rootDir string, builder document.Builder, writer output.ReportWriter, pathModifier pathutil.PathModifier, logger log.Logger) Assembler {
	return assembler{
		config:       cfg,
		rootDir:      rootDir,
		builder:      builder,
		writer:       writer,
		pathModifier: pathModifier,
		logger:       logger,
	}
}

func (a assembler) Render(data document.Data) (Report, error) {
	outputPath, err := a.resolvePath(a.config.OutputPath)
	if err != nil {
		return Report{}, fmt.Errorf("failed to resolve output path: %w", err)
	}

	node, err := a.builder.Build(data)
	if err != nil {
		return Report{}, err
	}
	content, err := markup.Render(node)
	if err != nil {
		return Report{}, err
	}

	if a.config.Boilerplate != "" {
		full, err := a.renderBoilerplate(content)
		if err != nil {
			return Report{}, err
		}
		return Report{Path: outputPath, Full: full, Content: content}, nil
	}

	doc, assets := a.shell(node, outputPath)
	full, err := markup.Render(doc)
	if err != nil {
		return Report{}, err
	}

	return Report{Path: outputPath, Full: full, Content: content, Assets: assets}, nil
}

func (a assembler) Generate(data document.Data) (Report, bool) {
	report, err := a.Render(data)
	if err != nil {
		a.logger.Errorf("%s%s", logPrefix, err)
		return Report{}, false
	}

	if err := a.write(report); err != nil {
		a.logger.Errorf("%s%s", logPrefix, err)
		return report, false
	}

	a.logger.Donef("%sReport generated (%s)", logPrefix, report.Path)
	return report, true
}

func (a assembler) renderBoilerplate(content string) (string, error) {
	pth, err := a.resolvePath(a.config.Boilerplate)
	if err != nil {
		return "", fmt.Errorf("failed to resolve boilerplate path: %w", err)
	}
	boilerplate, err := a.writer.Read(pth)
	if err != nil {
		return "", fmt.Errorf("failed to read boilerplate: %w", err)
	}
	return strings.Replace(boilerplate, ContentPlaceholder, content, 1), nil
}

// shell wraps the content into a complete document.
func (a assembler) shell(content *html.Node, outputPath string) (*html.Node, []Asset) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := markup.Append(doc, "html")

	head := markup.Append(root, "head")
	markup.Append(head, "meta", markup.Attr("charset", "utf-8"))
	markup.AppendText(head, "title", a.config.PageTitle)
	assets := a.stylesheet(head, outputPath)

	body := markup.Append(root, "body")
	body.AppendChild(content)
	if a.config.CustomScriptPath != "" {
		markup.Append(body, "script", markup.Attr("src", a.config.CustomScriptPath))
	}

	return doc, assets
}

// stylesheet either inlines the theme or links an external stylesheet. A linked theme is
// returned as an asset to be written next to the report.
func (a assembler) stylesheet(head *html.Node, outputPath string) []Asset {
	if a.config.StyleOverridePath != "" {
		markup.Append(head, "link", markup.Attr("rel", "stylesheet"), markup.Attr("type", "text/css"), markup.Attr("href", a.config.StyleOverridePath))
		return nil
	}

	css, err := Theme(a.config.Theme)
	if err != nil {
		a.logger.Warnf("%sFalling back to an empty stylesheet: %s", logPrefix, err)
	}

	if !a.config.UseCSSFile {
		style := markup.Append(head, "style", markup.Attr("type", "text/css"))
		style.AppendChild(markup.Text(css))
		return nil
	}

	name := a.config.Theme + ".css"
	markup.Append(head, "link", markup.Attr("rel", "stylesheet"), markup.Attr("type", "text/css"), markup.Attr("href", name))
	if err != nil {
		return nil
	}
	return []Asset{{Path: filepath.Join(filepath.Dir(outputPath), name), Content: css}}
}

func (a assembler) write(report Report) error {
	if a.config.Append {
		exists, err := a.writer.Exists(report.Path)
		if err != nil {
			return fmt.Errorf("failed to check if %s exists: %w", report.Path, err)
		}
		if exists {
			existing, err := a.writer.Read(report.Path)
			if err != nil {
				return err
			}
			a.logger.Printf("Appending to %s", report.Path)
			return a.writer.Write(report.Path, Splice(existing, report.Content))
		}
	}

	if err := a.writer.Write(report.Path, report.Full); err != nil {
		return err
	}

	for _, asset := range report.Assets {
		if err := a.writer.Write(asset.Path, asset.Content); err != nil {
			return err
		}
	}
	return nil
}

func (a assembler) resolvePath(pth string) (string, error) {
	return a.pathModifier.AbsPath(ReplaceRootDir(a.rootDir, pth))
}

// ReplaceRootDir resolves a path starting with the root dir token against rootDir.
// Other paths are returned unchanged.
func ReplaceRootDir(rootDir, pth string) string {
	if !strings.HasPrefix(pth, config.RootDirToken) {
		return pth
	}
	return filepath.Join(rootDir, filepath.Clean("./"+strings.TrimPrefix(pth, config.RootDirToken)))
}

// Splice inserts content into an existing document right before its first closing body tag.
// Content wrapped in a body element is unwrapped first. Without a closing body tag the content
// is appended to the end.
func Splice(existing, content string) string {
	if start := strings.Index(content, bodyOpenTag); start >= 0 {
		if end := strings.Index(content[start:], bodyCloseTag); end >= 0 {
			content = content[start+len(bodyOpenTag) : start+end]
		}
	}

	idx := strings.Index(existing, bodyCloseTag)
	if idx < 0 {
		return existing + content
	}
	return existing[:idx] + content + existing[idx:]
}
