package params

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LossScale is the loss_scaling_factor union: either the string "dynamic"
// or a fixed positive factor.
type LossScale struct {
	Dynamic bool
	Factor  float64
}

// DynamicLossScale is the default loss-scaling setting.
func DynamicLossScale() LossScale {
	return LossScale{Dynamic: true}
}

// FixedLossScale wraps a fixed scaling factor.
func FixedLossScale(factor float64) LossScale {
	return LossScale{Factor: factor}
}

// UnmarshalYAML accepts "dynamic" or a number.
func (l *LossScale) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: loss_scaling_factor must be \"dynamic\" or a number", value.Line),
		}}
	}
	if value.Value == "dynamic" {
		*l = LossScale{Dynamic: true}
		return nil
	}

	var factor float64
	if err := value.Decode(&factor); err != nil {
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: cannot parse loss_scaling_factor %q: expected \"dynamic\" or a number", value.Line, value.Value),
		}}
	}
	*l = LossScale{Factor: factor}
	return nil
}

// MarshalYAML emits the form the value was written in.
func (l LossScale) MarshalYAML() (interface{}, error) {
	if l.Dynamic {
		return "dynamic", nil
	}
	return l.Factor, nil
}

func (l LossScale) String() string {
	if l.Dynamic {
		return "dynamic"
	}
	return strconv.FormatFloat(l.Factor, 'g', -1, 64)
}
