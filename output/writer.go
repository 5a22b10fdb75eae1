package output

import (
	"fmt"

	v1fileutil "github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/pathutil"
)

// ReportWriter reads and writes report files.
type ReportWriter interface {
	Exists(pth string) (bool, error)
	Read(pth string) (string, error)
	// Write overwrites the file. Missing parent directories are created by the file manager.
	Write(pth, content string) error
}

type reportWriter struct {
	fileManager fileutil.FileManager
	pathChecker pathutil.PathChecker
}

// NewReportWriter ...
func NewReportWriter(fileManager fileutil.FileManager, pathChecker pathutil.PathChecker) ReportWriter {
	return reportWriter{
		fileManager: fileManager,
		pathChecker: pathChecker,
	}
}

func (w reportWriter) Exists(pth string) (bool, error) {
	return w.pathChecker.IsPathExists(pth)
}

func (w reportWriter) Read(pth string) (string, error) {
	content, err := v1fileutil.ReadStringFromFile(pth)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", pth, err)
	}
	return content, nil
}

func (w reportWriter) Write(pth, content string) error {
	if err := w.fileManager.Write(pth, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", pth, err)
	}
	return nil
}
