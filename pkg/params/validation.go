package params

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError is one schema violation, named by the yaml path of the
// offending field.
type ValidationError struct {
	Field   string
	Tag     string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s failed validation", e.Field)
}

// ValidationErrors collects every violation found in one manifest. A
// manifest with three bad fields reports all three in a single error.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Validator checks manifests against their schema: per-field range and enum
// tags first, then the cross-field rules the tags cannot express.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a manifest validator.
func NewValidator() (*Validator, error) {
	validate := validator.New()

	// Report violations under yaml key names, not Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: validate}, nil
}

// ValidateTraining checks a training manifest. The returned error, when not
// nil, is a ValidationErrors carrying every violation.
func (v *Validator) ValidateTraining(cfg *TrainingParams) error {
	if cfg == nil {
		return ValidationErrors{{
			Field:   "manifest",
			Tag:     "required",
			Message: "manifest is nil",
		}}
	}

	errs := v.structErrors(cfg)
	errs = append(errs, v.trainingRules(cfg)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidatePreprocessing checks a preprocessing manifest, collecting every
// violation.
func (v *Validator) ValidatePreprocessing(cfg *PreprocessingParams) error {
	if cfg == nil {
		return ValidationErrors{{
			Field:   "manifest",
			Tag:     "required",
			Message: "manifest is nil",
		}}
	}

	errs := v.structErrors(cfg)
	errs = append(errs, v.preprocessingRules(cfg)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// structErrors runs the tag-driven pass and converts the results.
func (v *Validator) structErrors(cfg interface{}) ValidationErrors {
	err := v.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var out ValidationErrors
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range errs {
			out = append(out, ValidationError{
				Field:   yamlPath(e.Namespace()),
				Tag:     e.Tag(),
				Value:   e.Value(),
				Message: getValidationMessage(e),
			})
		}
		return out
	}

	return ValidationErrors{{Message: err.Error()}}
}

// trainingRules holds the cross-field checks of the training family.
func (v *Validator) trainingRules(cfg *TrainingParams) ValidationErrors {
	var errs ValidationErrors

	model := &cfg.Model
	if model.NumHeads > 0 && model.HiddenSize > 0 && model.HiddenSize%model.NumHeads != 0 {
		errs = append(errs, ValidationError{
			Field: "model.hidden_size",
			Tag:   "divisible",
			Value: model.HiddenSize,
			Message: fmt.Sprintf(
				"model.hidden_size (%d) is not divisible by model.num_heads (%d)",
				model.HiddenSize, model.NumHeads),
		})
	}

	if cfg.TrainInput == nil {
		if cfg.RunConfig.Mode != ModeEval {
			errs = append(errs, ValidationError{
				Field: "train_input",
				Tag:   "required",
				Message: fmt.Sprintf(
					"train_input is required when runconfig.mode is %q", cfg.RunConfig.Mode),
			})
		}
	} else {
		errs = append(errs, v.inputRules("train_input", cfg.TrainInput, cfg)...)
	}
	if cfg.EvalInput != nil {
		errs = append(errs, v.inputRules("eval_input", cfg.EvalInput, cfg)...)
	}

	errs = append(errs, v.optimizerRules(&cfg.Optimizer, &cfg.RunConfig)...)

	if cfg.RunConfig.Mode.NeedsEval() && cfg.EvalInput == nil {
		errs = append(errs, ValidationError{
			Field: "runconfig.mode",
			Tag:   "eval_input",
			Value: cfg.RunConfig.Mode,
			Message: fmt.Sprintf(
				"runconfig.mode is %q but eval_input is not set", cfg.RunConfig.Mode),
		})
	}

	if cfg.RunConfig.CheckpointSteps > 0 && cfg.RunConfig.MaxSteps > 0 &&
		cfg.RunConfig.CheckpointSteps > cfg.RunConfig.MaxSteps {
		errs = append(errs, ValidationError{
			Field: "runconfig.checkpoint_steps",
			Tag:   "ltefield",
			Value: cfg.RunConfig.CheckpointSteps,
			Message: fmt.Sprintf(
				"runconfig.checkpoint_steps (%d) exceeds runconfig.max_steps (%d)",
				cfg.RunConfig.CheckpointSteps, cfg.RunConfig.MaxSteps),
		})
	}

	return errs
}

// inputRules checks one input section. The BERT CSV pipelines require the
// masking fields; replica divisibility applies to every pipeline.
func (v *Validator) inputRules(section string, in *InputParams, cfg *TrainingParams) ValidationErrors {
	var errs ValidationErrors

	replicas := cfg.RunConfig.NumReplicas
	if replicas > 0 && in.BatchSize > 0 && in.BatchSize%replicas != 0 {
		errs = append(errs, ValidationError{
			Field: section + ".batch_size",
			Tag:   "divisible",
			Value: in.BatchSize,
			Message: fmt.Sprintf(
				"%s.batch_size (%d) is not divisible by runconfig.num_replicas (%d)",
				section, in.BatchSize, replicas),
		})
	}

	if !in.DataProcessor.BERT() {
		return errs
	}

	if in.VocabFile == "" {
		errs = append(errs, ValidationError{
			Field: section + ".vocab_file",
			Tag:   "required",
			Message: fmt.Sprintf(
				"%s.vocab_file is required by %s", section, in.DataProcessor),
		})
	}
	if in.MaxSequenceLength <= 0 {
		errs = append(errs, ValidationError{
			Field: section + ".max_sequence_length",
			Tag:   "gt",
			Value: in.MaxSequenceLength,
			Message: fmt.Sprintf(
				"%s.max_sequence_length must be > 0 for %s", section, in.DataProcessor),
		})
	}
	if in.MaxPredictionsPerSeq <= 0 {
		errs = append(errs, ValidationError{
			Field: section + ".max_predictions_per_seq",
			Tag:   "gt",
			Value: in.MaxPredictionsPerSeq,
			Message: fmt.Sprintf(
				"%s.max_predictions_per_seq must be > 0 for %s", section, in.DataProcessor),
		})
	}
	if in.MaskedLMProb <= 0 || in.MaskedLMProb >= 1 {
		errs = append(errs, ValidationError{
			Field: section + ".masked_lm_prob",
			Tag:   "range",
			Value: in.MaskedLMProb,
			Message: fmt.Sprintf(
				"%s.masked_lm_prob must be in (0,1) for %s", section, in.DataProcessor),
		})
	}
	if in.MaxSequenceLength > 0 && cfg.Model.MaxPositionEmbeddings > 0 &&
		in.MaxSequenceLength > cfg.Model.MaxPositionEmbeddings {
		errs = append(errs, ValidationError{
			Field: "model.max_position_embeddings",
			Tag:   "gtefield",
			Value: cfg.Model.MaxPositionEmbeddings,
			Message: fmt.Sprintf(
				"model.max_position_embeddings (%d) is smaller than %s.max_sequence_length (%d)",
				cfg.Model.MaxPositionEmbeddings, section, in.MaxSequenceLength),
		})
	}

	return errs
}

// optimizerRules checks the loss-scale union and the learning-rate
// schedule, including its step budget against runconfig.
func (v *Validator) optimizerRules(opt *OptimizerParams, run *RunConfig) ValidationErrors {
	var errs ValidationErrors

	if !opt.LossScalingFactor.Dynamic && opt.LossScalingFactor.Factor <= 0 {
		errs = append(errs, ValidationError{
			Field:   "optimizer.loss_scaling_factor",
			Tag:     "gt",
			Value:   opt.LossScalingFactor.Factor,
			Message: "optimizer.loss_scaling_factor must be \"dynamic\" or a number > 0",
		})
	}

	if len(opt.LearningRate) == 0 {
		// The required tag already reported the missing schedule.
		return errs
	}

	for _, problem := range opt.LearningRate.Problems() {
		errs = append(errs, ValidationError{
			Field:   "optimizer.learning_rate",
			Tag:     "schedule",
			Message: "optimizer.learning_rate: " + problem,
		})
	}

	if opt.LearningRate.Bounded() && run.MaxSteps > 0 {
		if total := opt.LearningRate.TotalSteps(); total > run.MaxSteps {
			errs = append(errs, ValidationError{
				Field: "optimizer.learning_rate",
				Tag:   "ltefield",
				Value: total,
				Message: fmt.Sprintf(
					"optimizer.learning_rate: schedule spans %d steps but runconfig.max_steps is %d",
					total, run.MaxSteps),
			})
		}
	}

	return errs
}

// preprocessingRules holds the cross-field checks of the preprocessing
// family, chiefly the tokenizer file requirements.
func (v *Validator) preprocessingRules(cfg *PreprocessingParams) ValidationErrors {
	var errs ValidationErrors

	proc := &cfg.Processing
	if proc.TokenizerType.Valid() {
		if proc.TokenizerType.NeedsVocabFile() && proc.VocabFile == "" {
			errs = append(errs, ValidationError{
				Field: "processing.vocab_file",
				Tag:   "required",
				Message: fmt.Sprintf(
					"processing.vocab_file is required by %s", proc.TokenizerType),
			})
		}
		if proc.TokenizerType.NeedsEncoderFile() && proc.EncoderFile == "" {
			errs = append(errs, ValidationError{
				Field: "processing.encoder_file",
				Tag:   "required",
				Message: fmt.Sprintf(
					"processing.encoder_file is required by %s", proc.TokenizerType),
			})
		}
	}

	return errs
}

// yamlPath strips the root struct name from a validator namespace, leaving
// the dotted yaml path of the field.
func yamlPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// getValidationMessage renders one tag violation as a human-readable line.
func getValidationMessage(e validator.FieldError) string {
	path := yamlPath(e.Namespace())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", path)
	case "min":
		return fmt.Sprintf("%s must be at least %s", path, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", path, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", path, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", path, e.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", path, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", path, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", path, e.Param())
	default:
		return fmt.Sprintf("%s failed validation", path)
	}
}

// Global validator instance.
var (
	globalValidator *Validator
	validatorOnce   sync.Once
)

// GetValidator returns the global validator instance.
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		var err error
		globalValidator, err = NewValidator()
		if err != nil {
			panic(fmt.Sprintf("failed to create global validator: %v", err))
		}
	})
	return globalValidator
}

// ValidateTraining validates a training manifest using the global
// validator.
func ValidateTraining(cfg *TrainingParams) error {
	return GetValidator().ValidateTraining(cfg)
}

// ValidatePreprocessing validates a preprocessing manifest using the
// global validator.
func ValidatePreprocessing(cfg *PreprocessingParams) error {
	return GetValidator().ValidatePreprocessing(cfg)
}
