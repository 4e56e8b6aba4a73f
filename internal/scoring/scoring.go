// Package scoring maps submitted answers to an integer score and resolves
// that score to a result bucket. It is deliberately forgiving: malformed
// answer entries contribute zero instead of failing the submission.
package scoring

import (
	"github.com/bettermespace/backend/internal/catalog"
)

// Score sums the contribution of every answered question. Answer values come
// straight from decoded JSON: a string option id for single-choice, a list of
// option ids for multi-choice, a number for scale questions. Keys that match
// no question in the assessment are ignored, as are option ids that match no
// option and scale values outside the declared range.
func Score(a *catalog.Assessment, answers map[string]any) int {
	total := 0
	for i := range a.Questions {
		q := &a.Questions[i]
		raw, ok := answers[q.ID]
		if !ok {
			continue
		}
		total += contribution(q, raw)
	}
	return total
}

func contribution(q *catalog.Question, raw any) int {
	switch q.Type {
	case catalog.TypeSingleChoice:
		optionID, ok := raw.(string)
		if !ok {
			return 0
		}
		return optionValue(q, optionID)

	case catalog.TypeMultiChoice:
		chosen, ok := raw.([]any)
		if !ok {
			return 0
		}
		sum := 0
		for _, item := range chosen {
			if optionID, ok := item.(string); ok {
				sum += optionValue(q, optionID)
			}
		}
		return sum

	case catalog.TypeScale:
		value, ok := asInt(raw)
		if !ok || q.Scale == nil {
			return 0
		}
		if value < q.Scale.Min || value > q.Scale.Max {
			return 0
		}
		return value
	}
	return 0
}

func optionValue(q *catalog.Question, optionID string) int {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return opt.Value
		}
	}
	return 0
}

// asInt accepts the numeric shapes encoding/json produces plus plain ints.
func asInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// Resolve returns the first declared bucket whose inclusive [min, max] range
// contains score, or nil when no range matches. Bucket exhaustiveness is a
// catalog-load invariant, not re-checked here.
func Resolve(a *catalog.Assessment, score int) *catalog.ResultBucket {
	for i := range a.Results {
		b := &a.Results[i]
		if score >= b.Min && score <= b.Max {
			return b
		}
	}
	return nil
}
