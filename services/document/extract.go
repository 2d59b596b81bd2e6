package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"lexdraft/utils"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"
)

// Extraction holds the text pulled out of an uploaded file plus the stats the
// API reports back to the client.
type Extraction struct {
	Text       string
	WordCount  int
	Paragraphs int
	FileType   string
}

// ErrUnsupportedFileType is returned for anything that is not PDF, DOCX or TXT.
var ErrUnsupportedFileType = fmt.Errorf("unsupported file type, please upload PDF, DOCX, or TXT files")

var (
	docxTagRe    = regexp.MustCompile(`<[^>]+>`)
	nonASCIIRe   = regexp.MustCompile(`[^\x00-\x7F]`)
	minWordCount = 10
)

// ExtractText reads the file at path and extracts its plain text based on the
// original filename's extension.
func ExtractText(path, filename string) (*Extraction, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	var err error
	switch ext {
	case ".pdf":
		text, err = extractPDF(path)
	case ".docx":
		text, err = extractDocx(path)
	case ".txt":
		text, err = extractTxt(path)
	default:
		return nil, ErrUnsupportedFileType
	}
	if err != nil {
		return nil, fmt.Errorf("could not extract text from %s: %w", filename, err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("could not extract any text from %s", filename)
	}

	wordCount := len(strings.Fields(text))
	if wordCount < minWordCount {
		return nil, fmt.Errorf("extracted text has too few words (%d), the document may be scanned or corrupted", wordCount)
	}

	// A high non-ASCII ratio usually means a bad extraction; log it but keep
	// the text, matching how uploads behaved before.
	if ratio := float64(len(nonASCIIRe.FindAllString(text, -1))) / float64(len(text)); ratio > 0.3 {
		utils.GetLogger().Warn("ExtractText: high ratio of non-ASCII characters",
			zap.String("file", filename), zap.Float64("ratio", ratio))
	}

	return &Extraction{
		Text:       text,
		WordCount:  wordCount,
		Paragraphs: countParagraphs(text),
		FileType:   strings.TrimPrefix(ext, "."),
	}, nil
}

func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to buffer pdf text: %w", err)
	}
	return buf.String(), nil
}

func extractDocx(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer r.Close()

	return stripDocxXML(r.Editable().GetContent()), nil
}

func extractTxt(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read txt file: %w", err)
	}
	return string(b), nil
}

// stripDocxXML turns the raw document.xml body into plain text, keeping
// paragraph boundaries as newlines.
func stripDocxXML(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	return docxTagRe.ReplaceAllString(content, "")
}

// countParagraphs counts non-blank lines, the same notion of "paragraph" the
// upload stats always used.
func countParagraphs(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
