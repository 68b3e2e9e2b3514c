package quiz

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/questions.json
var defaultQuestionsJSON []byte

// maxDocumentSize bounds remote question documents.
const maxDocumentSize = 4 << 20

// Format is a question document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the document format from a file name or URL path.
// Anything that is not .yaml/.yml is treated as JSON.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a question document keyed by level number strings.
func Parse(data []byte, format Format) (*Bank, error) {
	doc := make(map[string][]Question)
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%s unmarshal: %w", format, err)
	}
	return fromDocument(doc), nil
}

// Default returns the embedded question bank.
func Default() *Bank {
	b, err := Parse(defaultQuestionsJSON, FormatJSON)
	if err != nil {
		panic(fmt.Sprintf("quiz: embedded questions are invalid: %v", err))
	}
	return b
}

// Load fetches and parses question data. source is a file path, an http(s)
// URL, or empty for the embedded bank. On any failure Load returns an empty
// (non-nil) bank and an error wrapping ErrLoadFailure; callers may retry.
func Load(ctx context.Context, source string) (*Bank, error) {
	if source == "" {
		return Default(), nil
	}

	data, format, err := fetch(ctx, source)
	if err != nil {
		return EmptyBank(), fmt.Errorf("%w: %s: %w", ErrLoadFailure, source, err)
	}

	bank, err := Parse(data, format)
	if err != nil {
		return EmptyBank(), fmt.Errorf("%w: %s: %w", ErrLoadFailure, source, err)
	}
	return bank, nil
}

func fetch(ctx context.Context, source string) ([]byte, Format, error) {
	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		data, err := fetchHTTP(ctx, u.String())
		return data, FormatFor(path.Base(u.Path)), err
	}

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, "", err
	}
	return data, FormatFor(source), nil
}

func fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
}
