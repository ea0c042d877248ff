package types

// ProgressKind selects between the two challenge-tracking shapes: a single
// accumulating number, or a mapping of named sub-goal counters.
type ProgressKind string

const (
	ProgressScalar   ProgressKind = "scalar"
	ProgressCompound ProgressKind = "compound"
)

// Progress is the explicit variant replacing the loose
// "number or map of numbers" field of the source data model. The tracker
// dispatches on Kind instead of runtime type checks.
type Progress struct {
	Kind     ProgressKind     `json:"kind"`
	Value    int64            `json:"value,omitempty"`
	Counters map[string]int64 `json:"counters,omitempty"`
}

func ScalarProgress(value int64) Progress {
	return Progress{Kind: ProgressScalar, Value: value}
}

func CompoundProgress(counters map[string]int64) Progress {
	if counters == nil {
		counters = map[string]int64{}
	}
	return Progress{Kind: ProgressCompound, Counters: counters}
}

// Add accumulates delta. For compound progress the delta lands on key; an
// empty key falls back to a single "default" bucket so malformed events
// still count somewhere visible.
func (p Progress) Add(key string, delta int64) Progress {
	switch p.Kind {
	case ProgressCompound:
		if key == "" {
			key = "default"
		}
		counters := make(map[string]int64, len(p.Counters)+1)
		for k, v := range p.Counters {
			counters[k] = v
		}
		counters[key] += delta
		return CompoundProgress(counters)
	default:
		return ScalarProgress(p.Value + delta)
	}
}

// Total is the value compared against a challenge's target. Compound
// progress sums all sub-goal counters.
func (p Progress) Total() int64 {
	if p.Kind == ProgressCompound {
		var sum int64
		for _, v := range p.Counters {
			sum += v
		}
		return sum
	}
	return p.Value
}

func (p Progress) IsMet(target int64) bool {
	return p.Total() >= target
}
