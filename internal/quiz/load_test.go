package quiz

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const sampleJSON = `{
  "1": [
    {"number": 1, "question": "First?", "options": [{"letter": "A", "text": "x"}, {"letter": "B", "text": "y"}], "answer": "A"}
  ],
  "2": [
    {"number": 1, "question": "Second?", "options": [{"letter": "A", "text": "x"}, {"letter": "B", "text": "y"}], "answer": "B"},
    {"number": 2, "question": "Third?", "options": [{"letter": "A", "text": "x"}, {"letter": "B", "text": "y"}], "answer": "A"}
  ],
  "intro": []
}`

func TestDefaultBank(t *testing.T) {
	b := Default()
	for _, level := range []int{1, 2, 3} {
		if b.Count(level) == 0 {
			t.Errorf("embedded bank has no questions for level %d", level)
		}
	}
}

func TestLoadEmptySourceUsesDefault(t *testing.T) {
	b, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if b.Empty() {
		t.Error("expected embedded questions")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizQuestions.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	b, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b.Count(1) != 1 || b.Count(2) != 2 {
		t.Errorf("counts = %d/%d, expected 1/2", b.Count(1), b.Count(2))
	}
	if got := b.Levels(); len(got) != 2 {
		t.Errorf("non-numeric keys should be skipped, levels = %v", got)
	}
}

func TestLoadYAML(t *testing.T) {
	doc := `
"1":
  - number: 1
    question: From YAML?
    options:
      - {letter: A, text: "yes"}
      - {letter: B, text: "no"}
    answer: A
`
	path := filepath.Join(t.TempDir(), "questions.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	b, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if qs := b.Questions(1); len(qs) != 1 || qs[0].Text != "From YAML?" {
		t.Errorf("unexpected questions: %+v", qs)
	}
}

func TestLoadFailuresReturnEmptyBank(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(malformed, []byte(`{"1": [`), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, source := range []string{filepath.Join(dir, "missing.json"), malformed} {
		b, err := Load(context.Background(), source)
		if !errors.Is(err, ErrLoadFailure) {
			t.Errorf("Load(%s) error = %v, expected ErrLoadFailure", source, err)
		}
		if b == nil || !b.Empty() {
			t.Errorf("Load(%s) should return an empty bank", source)
		}
	}
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assets/data/quizQuestions.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	b, err := Load(context.Background(), srv.URL+"/assets/data/quizQuestions.json")
	if err != nil {
		t.Fatalf("Load over HTTP failed: %v", err)
	}
	if b.Count(2) != 2 {
		t.Errorf("Count(2) = %d, expected 2", b.Count(2))
	}

	b, err = Load(context.Background(), srv.URL+"/missing.json")
	if !errors.Is(err, ErrLoadFailure) || !b.Empty() {
		t.Errorf("404 should be a load failure with empty bank, got %v", err)
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b, err := Load(ctx, filepath.Join(t.TempDir(), "x.json"))
	if !errors.Is(err, ErrLoadFailure) || !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, expected load failure wrapping context.Canceled", err)
	}
	if !b.Empty() {
		t.Error("expected empty bank")
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"q.json":        FormatJSON,
		"q.YAML":        FormatYAML,
		"q.yml":         FormatYAML,
		"quizQuestions": FormatJSON,
	}
	for name, want := range tests {
		if got := FormatFor(name); got != want {
			t.Errorf("FormatFor(%q) = %q, expected %q", name, got, want)
		}
	}
}
