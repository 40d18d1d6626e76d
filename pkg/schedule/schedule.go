// Package schedule models piecewise learning-rate schedules: an ordered
// sequence of segments, each with its own interpolation shape, start and end
// rates, and step span. Segments are concatenated end-to-end; a resolver
// answers rate-at-step queries against the combined curve.
package schedule

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SchedulerType identifies the interpolation applied within a segment.
type SchedulerType string

const (
	Constant    SchedulerType = "Constant"
	Linear      SchedulerType = "Linear"
	CosineDecay SchedulerType = "CosineDecay"
)

var schedulerTypes = map[SchedulerType]struct{}{
	Constant:    {},
	Linear:      {},
	CosineDecay: {},
}

// Valid reports whether the scheduler type is a known variant.
func (s SchedulerType) Valid() bool {
	_, ok := schedulerTypes[s]
	return ok
}

// SchedulerTypes returns all known variants, for error messages.
func SchedulerTypes() []SchedulerType {
	return []SchedulerType{Constant, Linear, CosineDecay}
}

// Segment is one piece of a schedule. A Constant segment holds
// InitialLearningRate for its whole span; Linear and CosineDecay interpolate
// from InitialLearningRate to EndLearningRate across Steps steps. Steps == 0
// marks an unbounded segment, which is only meaningful for a lone Constant.
type Segment struct {
	Scheduler           SchedulerType `yaml:"scheduler"`
	InitialLearningRate float64       `yaml:"initial_learning_rate"`
	EndLearningRate     float64       `yaml:"end_learning_rate,omitempty"`
	Steps               int64         `yaml:"steps,omitempty"`
}

// EndValue is the rate the segment holds once exhausted.
func (seg Segment) EndValue() float64 {
	if seg.Scheduler == Constant {
		return seg.InitialLearningRate
	}
	return seg.EndLearningRate
}

// Schedule is the decoded learning_rate field of an optimizer section. The
// YAML form is either a bare number (a single unbounded Constant segment) or
// a sequence of segment mappings.
type Schedule []Segment

// FromRate builds the schedule equivalent of a bare scalar learning rate.
func FromRate(rate float64) Schedule {
	return Schedule{{Scheduler: Constant, InitialLearningRate: rate}}
}

// UnmarshalYAML accepts the scalar-or-sequence union. Segment mappings are
// decoded strictly: unknown keys are collected into a yaml.TypeError so they
// aggregate with the document's other unknown-key reports.
func (s *Schedule) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var rate float64
		if err := value.Decode(&rate); err != nil {
			return &yaml.TypeError{Errors: []string{
				fmt.Sprintf("line %d: cannot parse learning_rate %q as a number", value.Line, value.Value),
			}}
		}
		*s = FromRate(rate)
		return nil

	case yaml.SequenceNode:
		var problems []string
		segments := make(Schedule, 0, len(value.Content))
		for _, item := range value.Content {
			seg, errs := decodeSegment(item)
			problems = append(problems, errs...)
			segments = append(segments, seg)
		}
		if len(problems) > 0 {
			return &yaml.TypeError{Errors: problems}
		}
		*s = segments
		return nil

	default:
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: learning_rate must be a number or a sequence of schedule segments", value.Line),
		}}
	}
}

// decodeSegment reads one segment mapping key by key so typos surface with
// the same wording the strict document decoder uses.
func decodeSegment(node *yaml.Node) (Segment, []string) {
	var seg Segment
	if node.Kind != yaml.MappingNode {
		return seg, []string{fmt.Sprintf("line %d: schedule segment must be a mapping", node.Line)}
	}

	var problems []string
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		var err error
		switch keyNode.Value {
		case "scheduler":
			err = valNode.Decode(&seg.Scheduler)
		case "initial_learning_rate":
			err = valNode.Decode(&seg.InitialLearningRate)
		case "end_learning_rate":
			err = valNode.Decode(&seg.EndLearningRate)
		case "steps":
			err = valNode.Decode(&seg.Steps)
		default:
			problems = append(problems, fmt.Sprintf(
				"line %d: field %s not found in type schedule.Segment", keyNode.Line, keyNode.Value))
			continue
		}
		if err != nil {
			problems = append(problems, fmt.Sprintf(
				"line %d: cannot unmarshal %q into segment field %s", valNode.Line, valNode.Value, keyNode.Value))
		}
	}
	return seg, problems
}

// MarshalYAML emits the compact scalar form when the schedule is a single
// unbounded Constant, so dumped documents round-trip the way they were
// written.
func (s Schedule) MarshalYAML() (interface{}, error) {
	if len(s) == 1 && s[0].Scheduler == Constant && s[0].Steps == 0 {
		return s[0].InitialLearningRate, nil
	}
	return []Segment(s), nil
}

// Bounded reports whether every segment has a finite span.
func (s Schedule) Bounded() bool {
	for _, seg := range s {
		if seg.Steps == 0 {
			return false
		}
	}
	return true
}

// TotalSteps is the combined span of all segments. Only meaningful when the
// schedule is bounded.
func (s Schedule) TotalSteps() int64 {
	var total int64
	for _, seg := range s {
		total += seg.Steps
	}
	return total
}

// Problems returns human-readable issues that make the schedule unusable.
// An empty slice means the schedule is well formed.
func (s Schedule) Problems() []string {
	var problems []string

	if len(s) == 0 {
		return []string{"learning_rate schedule has no segments"}
	}

	for i, seg := range s {
		at := fmt.Sprintf("segment %d", i)
		if !seg.Scheduler.Valid() {
			problems = append(problems, fmt.Sprintf(
				"%s: unknown scheduler %q (known: %v)", at, seg.Scheduler, SchedulerTypes()))
		}
		if seg.InitialLearningRate < 0 {
			problems = append(problems, fmt.Sprintf("%s: initial_learning_rate must be >= 0", at))
		}
		if seg.EndLearningRate < 0 {
			problems = append(problems, fmt.Sprintf("%s: end_learning_rate must be >= 0", at))
		}
		if seg.Steps < 0 {
			problems = append(problems, fmt.Sprintf("%s: steps must be >= 0", at))
		}

		switch {
		case seg.Scheduler == Constant && seg.Steps == 0 && len(s) > 1:
			problems = append(problems, fmt.Sprintf(
				"%s: an unbounded Constant segment must be the only segment", at))
		case seg.Scheduler != Constant && seg.Scheduler.Valid() && seg.Steps == 0:
			problems = append(problems, fmt.Sprintf(
				"%s: %s segments require steps >= 1", at, seg.Scheduler))
		}
	}

	return problems
}
