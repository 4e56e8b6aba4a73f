package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

type catalogFile struct {
	Assessments []Assessment `json:"assessments"`
}

// Registry holds the assessment catalog, read-only after load.
type Registry struct {
	mu          sync.RWMutex
	assessments map[string]*Assessment
	order       []string
}

func NewRegistry() *Registry {
	return &Registry{
		assessments: make(map[string]*Assessment),
	}
}

// LoadFromFile reads and validates the assessment catalog. Any invalid
// question or bucket table fails the whole load; a catalog that boots is
// guaranteed to resolve every attainable score to exactly one bucket.
func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assessment catalog: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse assessment catalog: %w", err)
	}

	registry := NewRegistry()
	for i := range file.Assessments {
		if err := registry.Register(&file.Assessments[i]); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (r *Registry) Register(a *Assessment) error {
	if err := validate(a); err != nil {
		return fmt.Errorf("assessment %q: %w", a.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.assessments[a.ID]; dup {
		return fmt.Errorf("assessment %q: duplicate id", a.ID)
	}
	r.assessments[a.ID] = a
	r.order = append(r.order, a.ID)
	return nil
}

func (r *Registry) Get(id string) (*Assessment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.assessments[id]
	return a, ok
}

// All returns the catalog in declaration order.
func (r *Registry) All() []*Assessment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Assessment, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.assessments[id])
	}
	return result
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.assessments)
}

func validate(a *Assessment) error {
	if a.ID == "" {
		return fmt.Errorf("missing id")
	}
	if a.Scoring.Method != "sum" {
		return fmt.Errorf("unsupported scoring method %q", a.Scoring.Method)
	}
	if len(a.Questions) == 0 {
		return fmt.Errorf("no questions")
	}

	seen := make(map[string]bool, len(a.Questions))
	for i := range a.Questions {
		q := &a.Questions[i]
		if q.ID == "" {
			return fmt.Errorf("question %d: missing id", i)
		}
		if seen[q.ID] {
			return fmt.Errorf("question %q: duplicate id", q.ID)
		}
		seen[q.ID] = true

		switch q.Type {
		case TypeSingleChoice, TypeMultiChoice:
			if len(q.Options) == 0 {
				return fmt.Errorf("question %q: choice question has no options", q.ID)
			}
			for _, opt := range q.Options {
				if opt.ID == "" {
					return fmt.Errorf("question %q: option with empty id", q.ID)
				}
				if opt.Value < 0 {
					return fmt.Errorf("question %q: option %q has negative value", q.ID, opt.ID)
				}
			}
		case TypeScale:
			if q.Scale == nil {
				return fmt.Errorf("question %q: scale question without scale descriptor", q.ID)
			}
			if q.Scale.Min < 0 || q.Scale.Min > q.Scale.Max {
				return fmt.Errorf("question %q: invalid scale range [%d, %d]", q.ID, q.Scale.Min, q.Scale.Max)
			}
		default:
			return fmt.Errorf("question %q: unknown type %q", q.ID, q.Type)
		}
	}

	return validateBuckets(a)
}

// validateBuckets checks that result ranges neither overlap nor leave a gap
// anywhere in [0, MaxScore].
func validateBuckets(a *Assessment) error {
	if len(a.Results) == 0 {
		return fmt.Errorf("no result buckets")
	}

	buckets := make([]ResultBucket, len(a.Results))
	copy(buckets, a.Results)
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Min < buckets[j].Min })

	for _, b := range buckets {
		if b.ID == "" {
			return fmt.Errorf("result bucket with empty id")
		}
		if b.Min > b.Max {
			return fmt.Errorf("result bucket %q: min %d > max %d", b.ID, b.Min, b.Max)
		}
	}

	maxScore := a.MaxScore()
	if buckets[0].Min > 0 {
		return fmt.Errorf("result buckets leave scores below %d uncovered", buckets[0].Min)
	}
	for i := 1; i < len(buckets); i++ {
		prev, cur := buckets[i-1], buckets[i]
		if cur.Min <= prev.Max {
			return fmt.Errorf("result buckets %q and %q overlap", prev.ID, cur.ID)
		}
		if cur.Min > prev.Max+1 && prev.Max < maxScore {
			return fmt.Errorf("result buckets %q and %q leave a gap", prev.ID, cur.ID)
		}
	}
	if last := buckets[len(buckets)-1]; last.Max < maxScore {
		return fmt.Errorf("result buckets end at %d but max attainable score is %d", last.Max, maxScore)
	}
	return nil
}
