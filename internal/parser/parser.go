package parser

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/recapdev/recap/internal/domain"
)

const (
	questionPrefix = "Q:"
	answerPrefix   = "A:"
	typePrefix     = "T:"
	imagePrefix    = "I:"
	optionPrefix   = "O:"
)

// matchSeparator splits the two halves of a matching-question option line.
const matchSeparator = " = "

type state int

const (
	seeking state = iota
	readingQuestion
	readingAnswer
)

var validate = validator.New()

var knownTypes = map[string]domain.QuestionType{
	string(domain.Basic):          domain.Basic,
	string(domain.MultipleChoice): domain.MultipleChoice,
	string(domain.FillBlank):      domain.FillBlank,
	string(domain.Matching):       domain.Matching,
	string(domain.Ordering):       domain.Ordering,
	string(domain.MultiSelect):    domain.MultiSelect,
}

// ParseFile reads a deck file from the given path and extracts all questions.
func ParseFile(path string) ([]domain.Question, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a deck authoring file and extracts all questions.
//
// The format is line oriented: "Q:" starts a question, "A:" its answer (both
// may continue over following lines), "T:" sets the question type, "I:" an
// image URL, and each "O:" line adds one type-specific item (an option, a
// blank, an order entry, or a "left = right" match pair). "---" separates
// cards. Unknown types fall back to basic.
func Parse(r io.Reader) ([]domain.Question, error) {
	scanner := bufio.NewScanner(r)
	var questions []domain.Question
	var current domain.Question
	var options []string
	var currentBlock []string
	currentState := seeking

	flushBlock := func() {
		if len(currentBlock) == 0 {
			return
		}
		content := strings.Join(currentBlock, "\n")
		switch currentState {
		case readingQuestion:
			current.Question = content
		case readingAnswer:
			current.Answer = content
		}
		currentBlock = nil
	}

	finishCard := func() {
		flushBlock()
		if current.Type == "" {
			current.Type = domain.Basic
		}
		assignOptions(&current, options)
		if validate.Struct(current) == nil {
			questions = append(questions, current)
		}
		current = domain.Question{}
		options = nil
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "---":
			finishCard()

		case strings.HasPrefix(line, questionPrefix):
			// A new question always starts a new card. The state alone is
			// not enough: a type or option line resets it to seeking while
			// the card is still open.
			if currentState != seeking || current.Question != "" {
				finishCard()
			}
			currentState = readingQuestion
			currentBlock = append(currentBlock, trimPrefix(line, questionPrefix))

		case strings.HasPrefix(line, answerPrefix):
			flushBlock()
			currentState = readingAnswer
			currentBlock = append(currentBlock, trimPrefix(line, answerPrefix))

		case strings.HasPrefix(line, typePrefix):
			flushBlock()
			currentState = seeking
			name := strings.TrimSpace(trimPrefix(line, typePrefix))
			if t, ok := knownTypes[name]; ok {
				current.Type = t
			} else {
				current.Type = domain.Basic
			}

		case strings.HasPrefix(line, imagePrefix):
			flushBlock()
			currentState = seeking
			current.ImageURL = strings.TrimSpace(trimPrefix(line, imagePrefix))

		case strings.HasPrefix(line, optionPrefix):
			flushBlock()
			currentState = seeking
			options = append(options, trimPrefix(line, optionPrefix))

		default:
			if currentState != seeking {
				currentBlock = append(currentBlock, line)
			}
		}
	}

	finishCard() // Finish the very last card in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return questions, nil
}

// assignOptions routes the collected "O:" lines to the field the question
// type reads. Multi-select options prefixed with "*" are correct answers.
func assignOptions(q *domain.Question, options []string) {
	if len(options) == 0 {
		return
	}
	switch q.Type {
	case domain.MultipleChoice:
		q.Options = options
	case domain.FillBlank:
		q.Blanks = options
	case domain.Ordering:
		q.OrderItems = options
	case domain.Matching:
		for _, o := range options {
			left, right, ok := strings.Cut(o, matchSeparator)
			if !ok {
				continue
			}
			q.MatchPairs = append(q.MatchPairs, domain.MatchPair{
				Left:  strings.TrimSpace(left),
				Right: strings.TrimSpace(right),
			})
		}
	case domain.MultiSelect:
		for _, o := range options {
			if marked, ok := strings.CutPrefix(o, "*"); ok {
				answer := strings.TrimSpace(marked)
				q.Options = append(q.Options, answer)
				q.CorrectAnswers = append(q.CorrectAnswers, answer)
			} else {
				q.Options = append(q.Options, o)
			}
		}
	}
}

// trimPrefix strips the field prefix and at most one following space.
func trimPrefix(line, prefix string) string {
	content := line[len(prefix):]
	if strings.HasPrefix(content, " ") {
		content = content[1:]
	}
	return content
}
