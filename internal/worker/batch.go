package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/statlinehq/statline/internal/model"
)

// Answerer defines the interface for answering a single question
type Answerer interface {
	Answer(ctx context.Context, question string) (*model.Response, error)
}

// AnswerJob represents one question to answer
type AnswerJob struct {
	Index    int
	Question string
	Answerer Answerer
}

// Execute executes the answer job
func (j *AnswerJob) Execute(ctx context.Context) Result {
	resp, err := j.Answerer.Answer(ctx, j.Question)
	return &AnswerResult{
		Index:    j.Index,
		Question: j.Question,
		Response: resp,
		Error:    err,
	}
}

// AnswerResult represents the result of an answer job
type AnswerResult struct {
	Index    int
	Question string
	Response *model.Response
	Error    error
}

// GetError returns the error from the answer result
func (r *AnswerResult) GetError() error {
	return r.Error
}

// BatchProcessor answers multiple questions concurrently
type BatchProcessor struct {
	answerer    Answerer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(answerer Answerer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		answerer:    answerer,
		concurrency: concurrency,
	}
}

// ProcessQuestions answers the questions concurrently. Results come back in
// input order regardless of completion order.
func (b *BatchProcessor) ProcessQuestions(ctx context.Context, questions []string) []*AnswerResult {
	if len(questions) == 0 {
		return []*AnswerResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for i, q := range questions {
		pool.Submit(&AnswerJob{
			Index:    i,
			Question: q,
			Answerer: b.answerer,
		})
	}

	results := pool.Wait()

	ordered := make([]*AnswerResult, len(questions))
	for _, result := range results {
		r := result.(*AnswerResult)
		ordered[r.Index] = r
	}

	return ordered
}

// ProcessFile reads questions from a file and answers them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnswerResult, error) {
	questions, err := ReadQuestionsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	return b.ProcessQuestions(ctx, questions), nil
}

// ReadQuestionsFromFile reads questions from a file (one per line)
func ReadQuestionsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var questions []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		questions = append(questions, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return questions, nil
}
