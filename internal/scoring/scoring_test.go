package scoring

import (
	"testing"

	"github.com/bettermespace/backend/internal/catalog"
)

func mbtiCore() *catalog.Assessment {
	return &catalog.Assessment{
		ID:    "mbti-core",
		Title: "MBTI 性格测试",
		Questions: []catalog.Question{
			{
				ID:   "q1",
				Type: catalog.TypeSingleChoice,
				Options: []catalog.Option{
					{ID: "q1_a", Label: "主动与他人交流", Value: 1},
					{ID: "q1_b", Label: "等待他人来找你", Value: 0},
				},
			},
			{
				ID:   "q2",
				Type: catalog.TypeSingleChoice,
				Options: []catalog.Option{
					{ID: "q2_a", Label: "依靠逻辑分析", Value: 1},
					{ID: "q2_b", Label: "考虑他人感受", Value: 0},
				},
			},
			{
				ID:    "q3",
				Type:  catalog.TypeScale,
				Scale: &catalog.Scale{Min: 1, Max: 5},
			},
		},
		Scoring: catalog.Scoring{Method: "sum"},
		Results: []catalog.ResultBucket{
			{ID: "r1", Min: 0, Max: 3, Title: "内向思考型"},
			{ID: "r2", Min: 4, Max: 7, Title: "外向行动型"},
		},
	}
}

func TestScoreSumsAnsweredQuestions(t *testing.T) {
	a := mbtiCore()

	tests := []struct {
		name    string
		answers map[string]any
		want    int
	}{
		{
			name:    "all answered",
			answers: map[string]any{"q1": "q1_a", "q2": "q2_b", "q3": float64(4)},
			want:    5,
		},
		{
			name:    "missing questions contribute zero",
			answers: map[string]any{"q3": float64(3)},
			want:    3,
		},
		{
			name:    "unknown question keys ignored",
			answers: map[string]any{"q1": "q1_a", "bogus": "whatever", "q99": float64(10)},
			want:    1,
		},
		{
			name:    "unknown option id contributes zero",
			answers: map[string]any{"q1": "q1_z", "q2": "q2_a"},
			want:    1,
		},
		{
			name:    "scale value below range ignored",
			answers: map[string]any{"q3": float64(0)},
			want:    0,
		},
		{
			name:    "scale value above range ignored",
			answers: map[string]any{"q3": float64(9)},
			want:    0,
		},
		{
			name:    "non-integral scale value ignored",
			answers: map[string]any{"q3": 3.5},
			want:    0,
		},
		{
			name:    "wrong answer shape contributes zero",
			answers: map[string]any{"q1": float64(1), "q3": "four"},
			want:    0,
		},
		{
			name:    "empty answers score zero",
			answers: map[string]any{},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(a, tt.answers); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreMultiChoice(t *testing.T) {
	a := &catalog.Assessment{
		ID: "multi-test",
		Questions: []catalog.Question{
			{
				ID:   "m1",
				Type: catalog.TypeMultiChoice,
				Options: []catalog.Option{
					{ID: "m1_a", Value: 1},
					{ID: "m1_b", Value: 2},
					{ID: "m1_c", Value: 3},
				},
			},
		},
	}

	tests := []struct {
		name   string
		answer any
		want   int
	}{
		{"two options", []any{"m1_a", "m1_c"}, 4},
		{"all options", []any{"m1_a", "m1_b", "m1_c"}, 6},
		{"unknown option skipped", []any{"m1_a", "m1_z"}, 1},
		{"non-string entries skipped", []any{"m1_b", float64(7)}, 2},
		{"not a list", "m1_a", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(a, map[string]any{"m1": tt.answer}); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveFirstMatchingBucket(t *testing.T) {
	a := mbtiCore()

	for score, wantID := range map[int]string{0: "r1", 3: "r1", 4: "r2", 5: "r2", 7: "r2"} {
		got := Resolve(a, score)
		if got == nil {
			t.Fatalf("Resolve(%d) = nil, want %s", score, wantID)
		}
		if got.ID != wantID {
			t.Errorf("Resolve(%d) = %s, want %s", score, got.ID, wantID)
		}
	}

	if got := Resolve(a, 8); got != nil {
		t.Errorf("Resolve(8) = %v, want nil", got)
	}
	if got := Resolve(a, -1); got != nil {
		t.Errorf("Resolve(-1) = %v, want nil", got)
	}
}

func TestResolveDeclarationOrderWins(t *testing.T) {
	a := &catalog.Assessment{
		Results: []catalog.ResultBucket{
			{ID: "second", Min: 4, Max: 7},
			{ID: "first", Min: 0, Max: 3},
		},
	}
	// Declared out of range order; resolution still scans declaration order.
	if got := Resolve(a, 2); got == nil || got.ID != "first" {
		t.Errorf("Resolve(2) = %v, want bucket %q", got, "first")
	}
	if got := Resolve(a, 5); got == nil || got.ID != "second" {
		t.Errorf("Resolve(5) = %v, want bucket %q", got, "second")
	}
}
