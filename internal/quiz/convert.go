package quiz

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Document is the on-disk question layout: level number (as a string) to questions.
type Document map[string][]Question

var (
	levelHeaderRe  = regexp.MustCompile(`Level\s+(\d+)`)
	questionLineRe = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
	optionLineRe   = regexp.MustCompile(`^([A-E])[).]\s*(.+)$`)
	optionStartRe  = regexp.MustCompile(`^[A-E][).]\s`)
	answerLineRe   = regexp.MustCompile(`(?i)^(?:Answer|Ans|Correct Answer):\s*([A-E])`)
	answerStartRe  = regexp.MustCompile(`(?i)^(?:Answer|Ans|Correct Answer):`)
	separatorRe    = regexp.MustCompile(`^_+$`)
)

// Skipped is a question the converter found but could not keep.
type Skipped struct {
	Level  string
	Number int
	Reason string
}

// Convert parses the plain-text question format used by content authors:
//
//	Level 1
//	1. What is the first stage
//	   of spiritual growth?
//	A) Liberation
//	B) Ignorance
//	Answer: B
//
// A question is kept only when it has at least two options and an answer.
// Levels without kept questions are omitted.
func Convert(r io.Reader) (Document, error) {
	doc, _, err := ConvertReport(r)
	return doc, err
}

// ConvertReport is Convert that also lists the numbered questions it dropped.
// Only the first MaxOptions options are kept, so a question whose answer is
// a later letter is dropped here rather than silently at load time.
func ConvertReport(r io.Reader) (Document, []Skipped, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("quiz: reading question text: %w", err)
	}
	content := string(data)

	doc := make(Document)
	var skipped []Skipped
	headers := levelHeaderRe.FindAllStringSubmatchIndex(content, -1)
	for i, h := range headers {
		level := content[h[2]:h[3]]
		end := len(content)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}

		var questions []Question
		for _, block := range splitQuestionBlocks(content[h[1]:end]) {
			q, reason := parseQuestionBlock(block)
			if reason != "" {
				skipped = append(skipped, Skipped{Level: level, Number: q.Number, Reason: reason})
				continue
			}
			questions = append(questions, q)
		}
		if len(questions) > 0 {
			doc[level] = append(doc[level], questions...)
		}
	}
	return doc, skipped, nil
}

// splitQuestionBlocks cuts a level section at every numbered question line.
// Text before the first numbered line is discarded.
func splitQuestionBlocks(section string) [][]string {
	var blocks [][]string
	var current []string
	scanner := bufio.NewScanner(strings.NewReader(section))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if questionLineRe.MatchString(line) {
			if current != nil {
				blocks = append(blocks, current)
			}
			current = []string{line}
			continue
		}
		if current != nil {
			current = append(current, line)
		}
	}
	if current != nil {
		blocks = append(blocks, current)
	}
	return blocks
}

// parseQuestionBlock returns the question and an empty reason, or the reason it was dropped.
func parseQuestionBlock(lines []string) (Question, string) {
	m := questionLineRe.FindStringSubmatch(lines[0])
	if m == nil {
		return Question{}, "no numbered question line"
	}
	number, _ := strconv.Atoi(m[1])
	parts := []string{m[2]}

	// The question text may continue until the first option or answer line.
	idx := 1
	for ; idx < len(lines); idx++ {
		line := lines[idx]
		if line == "" {
			continue
		}
		if optionStartRe.MatchString(line) || answerStartRe.MatchString(line) {
			break
		}
		if !separatorRe.MatchString(line) {
			parts = append(parts, line)
		}
	}

	q := Question{Number: number, Text: strings.Join(parts, " ")}
	for _, line := range lines[idx:] {
		if om := optionLineRe.FindStringSubmatch(line); om != nil {
			q.Options = append(q.Options, Option{Letter: om[1], Text: strings.TrimSpace(om[2])})
		}
		if am := answerLineRe.FindStringSubmatch(line); am != nil {
			q.Answer = strings.ToUpper(am[1])
		}
	}

	switch {
	case q.Text == "":
		return q, "empty question text"
	case len(q.Options) < 2:
		return q, "fewer than two options"
	case q.Answer == "":
		return q, "no answer line"
	}
	if len(q.Options) > MaxOptions {
		q.Options = q.Options[:MaxOptions]
	}
	if !q.HasOption(q.Answer) {
		return q, fmt.Sprintf("answer %s is not among the first %d options", q.Answer, MaxOptions)
	}
	return q, ""
}

// WriteJSON writes a document as indented JSON without HTML escaping.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("quiz: encoding questions: %w", err)
	}
	return nil
}

// Bank builds a question bank from the document.
func (d Document) Bank() *Bank {
	return fromDocument(d)
}
