package source

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/matching"
)

// Collect reads every supported resume file in dir and returns it as a
// document ready for matching. Files that cannot be read or yield no text are
// logged and skipped; unsupported extensions are silently ignored.
func Collect(dir string, logger *zap.Logger) ([]matching.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading resumes directory %q: %w", dir, err)
	}

	var docs []matching.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !supported(name) {
			logger.Debug("skipping unsupported file", zap.String("filename", name))
			continue
		}

		text, err := ExtractText(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("skipping unreadable resume", zap.String("filename", name), zap.Error(err))
			continue
		}

		if strings.TrimSpace(text) == "" {
			logger.Warn("skipping resume with no extractable text", zap.String("filename", name))
			continue
		}

		docs = append(docs, matching.Document{Filename: name, Text: text})
	}

	return docs, nil
}

func supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".docx", ".txt":
		return true
	}
	return false
}

// ExtractText pulls the plain text out of one resume file based on its
// extension.
func ExtractText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".docx":
		return extractDocx(path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

func extractPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer file.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func extractDocx(path string) (string, error) {
	reader, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("opening docx: %w", err)
	}
	defer reader.Close()

	return reader.Editable().GetContent(), nil
}

// ExportZip packs the named files from dir into a zip archive at dest.
func ExportZip(dest, dir string, filenames []string) error {
	archive, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating archive %q: %w", dest, err)
	}
	defer archive.Close()

	writer := zip.NewWriter(archive)
	for _, name := range filenames {
		if err := addToZip(writer, filepath.Join(dir, name), name); err != nil {
			writer.Close()
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing archive %q: %w", dest, err)
	}

	return nil
}

func addToZip(writer *zip.Writer, path, name string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %q for archiving: %w", path, err)
	}
	defer file.Close()

	entry, err := writer.Create(name)
	if err != nil {
		return fmt.Errorf("adding %q to archive: %w", name, err)
	}

	if _, err := io.Copy(entry, file); err != nil {
		return fmt.Errorf("writing %q to archive: %w", name, err)
	}

	return nil
}
