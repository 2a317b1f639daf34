package profile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

type Config struct {
	Name         string `envconfig:"NAME" split_words:"true" required:"true"`
	SummaryPath  string `envconfig:"SUMMARY_PATH" split_words:"true" default:"me/summary.txt"`
	DocumentPath string `envconfig:"DOCUMENT_PATH" split_words:"true" default:"me/linkedin.pdf"`
}

// Profile is the owner's background material. Read-only after Load.
type Profile struct {
	Name     string
	Summary  string
	Document string
}

// Load reads the summary text file and the profile document. Documents ending
// in .pdf are extracted to plain text; anything else is read as UTF-8 text.
// Missing files are startup errors, not warnings.
func Load(cfg Config) (*Profile, error) {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		return nil, fmt.Errorf("profile name is required")
	}

	summary, err := readTextFile(cfg.SummaryPath)
	if err != nil {
		return nil, fmt.Errorf("load summary: %w", err)
	}

	document, err := readDocument(cfg.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("load profile document: %w", err)
	}

	return &Profile{
		Name:     name,
		Summary:  summary,
		Document: document,
	}, nil
}

func readDocument(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extractPDFText(path)
	}
	return readTextFile(path)
}

func readTextFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
