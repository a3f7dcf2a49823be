package authoring

import (
	"fmt"
	"strings"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/play"
)

const systemPrompt = `You write quiz questions for children aged 6 to 9 on an adventure island.

Rules:
- Every question must be self-contained, short and friendly.
- "multiple-choice": give 3 or 4 options; the answer must be exactly one of them.
- "fill-in-the-blank": mark each blank in the text with ` + play.BlankMarker + `, give the candidate words as options, and make the answer the word for the blank.
- "unscramble": the text is the fragments of one sentence separated by "/", in a shuffled order; options is empty and the answer is the sentence in order.
- difficulty runs from 1 (easiest) to 5 and must match the requested level.
- The explanation is one or two sentences a child can follow.
- Never repeat or paraphrase a question from the "already in the bank" list.`

func categoryBrief(c bank.Category) string {
	switch c {
	case bank.CategoryBasic:
		return "basic arithmetic: counting, addition and subtraction within 100"
	case bank.CategoryApplication:
		return "short word problems about everyday situations"
	case bank.CategoryLogic:
		return "patterns, sequences and simple reasoning puzzles"
	case bank.CategorySentence:
		return "sentence building and grammar"
	case bank.CategoryWord:
		return "vocabulary, word meanings and spelling"
	default:
		return string(c)
	}
}

func buildUserMessage(req Request, prior []string, maxPrior int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Category: %s (%s)\n", req.Category, categoryBrief(req.Category))
	fmt.Fprintf(&b, "Difficulty: %d\n", req.Difficulty)
	if req.Type != "" {
		fmt.Fprintf(&b, "Question type: %s\n", req.Type)
	} else {
		b.WriteString("Question type: any\n")
	}
	fmt.Fprintf(&b, "Number of questions: %d\n", req.Count)
	if req.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	}

	b.WriteString("\nAlready in the bank:\n")
	b.WriteString(buildPrior(prior, maxPrior))
	return b.String()
}

// buildPrior lists up to max existing question texts, most recent last.
func buildPrior(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
