package catalog

// Question types supported by the scoring engine.
const (
	TypeSingleChoice = "single"
	TypeMultiChoice  = "multi"
	TypeScale        = "scale"
)

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

type Scale struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	MinLabel string `json:"minLabel"`
	MaxLabel string `json:"maxLabel"`
}

type Question struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Content string   `json:"content"`
	Options []Option `json:"options,omitempty"`
	Scale   *Scale   `json:"scale,omitempty"`
}

// ResultBucket is one qualitative outcome of an assessment, covering the
// inclusive score range [Min, Max].
type ResultBucket struct {
	ID          string   `json:"id"`
	Min         int      `json:"min"`
	Max         int      `json:"max"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

type Scoring struct {
	Method string `json:"method"`
}

type Assessment struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Category  string         `json:"category,omitempty"`
	Questions []Question     `json:"questions"`
	Scoring   Scoring        `json:"scoring"`
	Results   []ResultBucket `json:"results"`
}

// MaxScore returns the highest score the question set can produce.
func (a *Assessment) MaxScore() int {
	total := 0
	for i := range a.Questions {
		total += a.Questions[i].maxContribution()
	}
	return total
}

func (q *Question) maxContribution() int {
	switch q.Type {
	case TypeSingleChoice:
		best := 0
		for _, opt := range q.Options {
			if opt.Value > best {
				best = opt.Value
			}
		}
		return best
	case TypeMultiChoice:
		sum := 0
		for _, opt := range q.Options {
			if opt.Value > 0 {
				sum += opt.Value
			}
		}
		return sum
	case TypeScale:
		if q.Scale != nil {
			return q.Scale.Max
		}
	}
	return 0
}
