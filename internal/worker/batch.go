package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/avolkov/veritas/internal/model"
)

// Answerer answers a single question
type Answerer interface {
	Answer(ctx context.Context, query string) (*model.SynthesisResult, error)
}

// QuestionJob answers one question
type QuestionJob struct {
	Question string
	Answerer Answerer
}

// Execute executes the question job
func (j *QuestionJob) Execute(ctx context.Context) Result {
	result, err := j.Answerer.Answer(ctx, j.Question)
	if err != nil {
		return &AnswerResult{
			Question: j.Question,
			Result:   nil,
			Error:    err,
		}
	}
	return &AnswerResult{
		Question: j.Question,
		Result:   result,
		Error:    nil,
	}
}

// AnswerResult is the outcome of one question
type AnswerResult struct {
	Question string
	Result   *model.SynthesisResult
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

// ProcessQuestions answers the questions concurrently
func (b *BatchProcessor) ProcessQuestions(ctx context.Context, questions []string) []*AnswerResult {
	if len(questions) == 0 {
		return []*AnswerResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, question := range questions {
		pool.Submit(&QuestionJob{
			Question: question,
			Answerer: b.answerer,
		})
	}

	results := pool.Wait()

	answerResults := make([]*AnswerResult, len(results))
	for i, result := range results {
		answerResults[i] = result.(*AnswerResult)
	}

	return answerResults
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
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate questions
		if !seen[line] {
			seen[line] = true
			questions = append(questions, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return questions, nil
}
