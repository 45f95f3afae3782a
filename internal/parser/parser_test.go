package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/recapdev/recap/internal/domain"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name              string
		input             string
		expectedQuestions int
		expected          domain.Question
	}{
		{
			name:              "Simple Q&A defaults to basic",
			input:             "Q: What is the capital of France?\nA: Paris",
			expectedQuestions: 1,
			expected: domain.Question{
				Type:     domain.Basic,
				Question: "What is the capital of France?",
				Answer:   "Paris",
			},
		},
		{
			name: "Multiline Answer",
			input: `
Q: What are the primary colors?
A: Red
Blue
Yellow
`,
			expectedQuestions: 1,
			expected: domain.Question{
				Type:     domain.Basic,
				Question: "What are the primary colors?",
				Answer:   "Red\nBlue\nYellow",
			},
		},
		{
			name: "Two cards separated by a new question",
			input: `
Q: First question
A: First answer

Q: Second question
A: Second answer
`,
			expectedQuestions: 2,
		},
		{
			name: "New question after option lines starts a new card",
			input: `Q: Pick one
T: multiple-choice
O: a
O: b
Q: Plain follow-up
A: done`,
			expectedQuestions: 2,
		},
		{
			name: "Explicit separator",
			input: `Q: One
A: 1
---
Q: Two
A: 2`,
			expectedQuestions: 2,
		},
		{
			name: "Multiple choice with options",
			input: `
Q: Which planet is largest?
T: multiple-choice
O: Mars
O: Jupiter
O: Venus
A: Jupiter
`,
			expectedQuestions: 1,
			expected: domain.Question{
				Type:     domain.MultipleChoice,
				Question: "Which planet is largest?",
				Answer:   "Jupiter",
				Options:  []string{"Mars", "Jupiter", "Venus"},
			},
		},
		{
			name: "Matching pairs",
			input: `
Q: Match the country to its capital
T: matching
O: France = Paris
O: Japan = Tokyo
O: not a pair
`,
			expectedQuestions: 1,
			expected: domain.Question{
				Type:     domain.Matching,
				Question: "Match the country to its capital",
				MatchPairs: []domain.MatchPair{
					{Left: "France", Right: "Paris"},
					{Left: "Japan", Right: "Tokyo"},
				},
			},
		},
		{
			name: "Ordering",
			input: `
Q: Order the planets from the sun
T: ordering
O: Mercury
O: Venus
O: Earth
`,
			expectedQuestions: 1,
			expected: domain.Question{
				Type:       domain.Ordering,
				Question:   "Order the planets from the sun",
				OrderItems: []string{"Mercury", "Venus", "Earth"},
			},
		},
		{
			name: "Multi-select with starred answers",
			input: `
Q: Which are prime?
T: multi-select
O: * 2
O: 4
O: * 5
`,
			expectedQuestions: 1,
			expected: domain.Question{
				Type:           domain.MultiSelect,
				Question:       "Which are prime?",
				Options:        []string{"2", "4", "5"},
				CorrectAnswers: []string{"2", "5"},
			},
		},
		{
			name: "Fill in the blank",
			input: `
Q: The ___ jumps over the ___
T: fill-blank
O: fox
O: dog
`,
			expectedQuestions: 1,
			expected: domain.Question{
				Type:     domain.FillBlank,
				Question: "The ___ jumps over the ___",
				Blanks:   []string{"fox", "dog"},
			},
		},
		{
			name: "Image URL",
			input: `
Q: Name this landmark
I: https://example.com/tower.jpg
A: Eiffel Tower
`,
			expectedQuestions: 1,
			expected: domain.Question{
				Type:     domain.Basic,
				Question: "Name this landmark",
				Answer:   "Eiffel Tower",
				ImageURL: "https://example.com/tower.jpg",
			},
		},
		{
			name:              "Unknown type falls back to basic",
			input:             "Q: Anything\nT: cloze\nA: Something",
			expectedQuestions: 1,
			expected: domain.Question{
				Type:     domain.Basic,
				Question: "Anything",
				Answer:   "Something",
			},
		},
		{
			name:              "No cards, just text",
			input:             "This is a file with no questions.",
			expectedQuestions: 0,
		},
		{
			name:              "Missing question text is dropped",
			input:             "A: An answer without a question",
			expectedQuestions: 0,
		},
		{
			name:              "Prefixes with no space",
			input:             "Q:Question\nA:Answer",
			expectedQuestions: 1,
			expected: domain.Question{
				Type:     domain.Basic,
				Question: "Question",
				Answer:   "Answer",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			questions, err := Parse(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("Parse() returned an unexpected error: %v", err)
			}

			if len(questions) != tc.expectedQuestions {
				t.Fatalf("Expected %d questions, but got %d", tc.expectedQuestions, len(questions))
			}

			if tc.expectedQuestions == 1 {
				if !reflect.DeepEqual(questions[0], tc.expected) {
					t.Errorf("Parsed question mismatch.\n got: %+v\nwant: %+v", questions[0], tc.expected)
				}
			}
		})
	}
}
