package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/statlinehq/statline/internal/model"
)

type echoAnswerer struct{}

func (e *echoAnswerer) Answer(ctx context.Context, question string) (*model.Response, error) {
	return &model.Response{Text: "answer to: " + question}, nil
}

func TestBatchProcessor_PreservesInputOrder(t *testing.T) {
	b := NewBatchProcessor(&echoAnswerer{}, 4)

	questions := []string{"q0", "q1", "q2", "q3", "q4", "q5", "q6", "q7"}
	results := b.ProcessQuestions(context.Background(), questions)

	if len(results) != len(questions) {
		t.Fatalf("Got %d results, want %d", len(results), len(questions))
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("Result %d missing", i)
		}
		if r.Question != questions[i] {
			t.Errorf("Result %d is for %q, want %q", i, r.Question, questions[i])
		}
		if r.Response.Text != "answer to: "+questions[i] {
			t.Errorf("Result %d text = %q", i, r.Response.Text)
		}
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	b := NewBatchProcessor(&echoAnswerer{}, 2)

	if results := b.ProcessQuestions(context.Background(), nil); len(results) != 0 {
		t.Errorf("Got %d results, want 0", len(results))
	}
}

func TestReadQuestionsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.txt")
	content := "# warmup\nHow many points did LeBron score?\n\n  did the knicks win?  \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	questions, err := ReadQuestionsFromFile(path)
	if err != nil {
		t.Fatalf("ReadQuestionsFromFile failed: %v", err)
	}

	want := []string{"How many points did LeBron score?", "did the knicks win?"}
	if len(questions) != len(want) {
		t.Fatalf("Got %d questions, want %d: %v", len(questions), len(want), questions)
	}
	for i := range want {
		if questions[i] != want[i] {
			t.Errorf("Question %d = %q, want %q", i, questions[i], want[i])
		}
	}
}

func TestReadQuestionsFromFile_Missing(t *testing.T) {
	if _, err := ReadQuestionsFromFile("/nonexistent/questions.txt"); err == nil {
		t.Error("Expected error for missing file")
	}
}
