package params

import (
	"github.com/lightcone-ml/paramzoo/pkg/schedule"
)

// TrainingParams is the schema of a training manifest: input pipelines,
// model architecture, optimizer, and run control. Loaded documents are
// strict; a key outside this schema fails the load.
type TrainingParams struct {
	// Training input pipeline, required unless runconfig.mode is eval
	TrainInput *InputParams `yaml:"train_input,omitempty"`

	// Evaluation input pipeline, required when runconfig.mode runs eval
	EvalInput *InputParams `yaml:"eval_input,omitempty"`

	// Model architecture hyperparameters
	Model ModelParams `yaml:"model"`

	// Optimizer and learning-rate schedule
	Optimizer OptimizerParams `yaml:"optimizer"`

	// Step budget, checkpointing, seed, and execution mode
	RunConfig RunConfig `yaml:"runconfig"`
}

// InputParams configures one input pipeline. The BERT CSV processors carry
// masking fields the HDF5 processor does not read.
type InputParams struct {
	// Input pipeline variant
	DataProcessor DataProcessor `yaml:"data_processor" validate:"required,oneof=GptHDF5DataProcessor BertCSVDataProcessor BertCSVDynamicMaskDataProcessor"`

	// Directory holding the preprocessed shards
	DataDir string `yaml:"data_dir" validate:"required"`

	// Per-step batch size; must divide evenly across replicas
	BatchSize int `yaml:"batch_size" validate:"gt=0"`

	// Shuffle examples between epochs
	Shuffle bool `yaml:"shuffle"`

	// Seed for the shuffle order
	ShuffleSeed int64 `yaml:"shuffle_seed"`

	// Shuffle buffer size; 0 derives 10x batch_size
	ShuffleBuffer int `yaml:"shuffle_buffer,omitempty" validate:"min=0"`

	// Loader worker count; 0 loads on the training process
	NumWorkers int `yaml:"num_workers,omitempty" validate:"min=0"`

	// Batches prefetched per worker
	PrefetchFactor int `yaml:"prefetch_factor" validate:"min=0"`

	// Keep workers alive between epochs
	PersistentWorkers bool `yaml:"persistent_workers"`

	// Drop the trailing partial batch
	DropLast bool `yaml:"drop_last"`

	// Restart the dataset when exhausted
	Repeat bool `yaml:"repeat,omitempty"`

	// BERT CSV pipelines only.
	VocabFile            string  `yaml:"vocab_file,omitempty"`
	MaxSequenceLength    int     `yaml:"max_sequence_length,omitempty" validate:"min=0"`
	MaxPredictionsPerSeq int     `yaml:"max_predictions_per_seq,omitempty" validate:"min=0"`
	MaskedLMProb         float64 `yaml:"masked_lm_prob,omitempty" validate:"min=0,max=1"`
}

// EffectiveShuffleBuffer is the shuffle buffer the pipeline actually uses:
// the configured size, or 10x the batch size when left at zero.
func (in *InputParams) EffectiveShuffleBuffer() int {
	if in.ShuffleBuffer > 0 {
		return in.ShuffleBuffer
	}
	return 10 * in.BatchSize
}

// ModelParams holds the architecture hyperparameters shared by both model
// families. Divisibility of hidden_size by num_heads is checked during
// validation.
type ModelParams struct {
	// Vocabulary size
	VocabSize int `yaml:"vocab_size" validate:"min=2"`

	// Transformer width
	HiddenSize int `yaml:"hidden_size" validate:"gt=0"`

	// Attention head count; must divide hidden_size
	NumHeads int `yaml:"num_heads" validate:"gt=0"`

	// Transformer depth
	NumHiddenLayers int `yaml:"num_hidden_layers" validate:"gt=0"`

	// Positional capacity; must cover the longest input sequence
	MaxPositionEmbeddings int `yaml:"max_position_embeddings" validate:"gt=0"`

	// Feed-forward width
	FilterSize int `yaml:"filter_size" validate:"gt=0"`

	// Dropout rates
	EmbeddingDropoutRate float64 `yaml:"embedding_dropout_rate,omitempty" validate:"min=0,max=1"`
	ResidualDropoutRate  float64 `yaml:"residual_dropout_rate,omitempty" validate:"min=0,max=1"`
	AttentionDropoutRate float64 `yaml:"attention_dropout_rate,omitempty" validate:"min=0,max=1"`
	DropoutRate          float64 `yaml:"dropout_rate,omitempty" validate:"min=0,max=1"`

	// Feed-forward activation
	Nonlinearity Nonlinearity `yaml:"nonlinearity" validate:"required,oneof=gelu relu"`

	// How token positions enter the model
	PositionEmbeddingType PositionEmbeddingType `yaml:"position_embedding_type" validate:"required,oneof=learned fixed rotary"`

	// Tie input and output embedding matrices
	ShareEmbeddingWeights bool `yaml:"share_embedding_weights"`

	// Layer-norm stabilizer
	LayerNormEpsilon float64 `yaml:"layer_norm_epsilon" validate:"gt=0"`

	// Numeric precision controls
	MixedPrecision bool `yaml:"mixed_precision,omitempty"`
	UseBfloat16    bool `yaml:"use_bfloat16,omitempty"`

	// Weight initializer for transformer blocks
	Initializer InitializerParams `yaml:"initializer"`

	// Optional separate initializer for embedding matrices
	EmbeddingInitializer *InitializerParams `yaml:"embedding_initializer,omitempty"`
}

// InitializerParams selects a weight-initializer variant and its
// distribution parameters.
type InitializerParams struct {
	Name InitializerName `yaml:"name" validate:"required,oneof=constant uniform normal truncated_normal xavier_uniform xavier_normal"`
	Mean float64         `yaml:"mean,omitempty"`
	Std  float64         `yaml:"std,omitempty" validate:"min=0"`
}

// OptimizerParams selects the optimizer variant and its coefficients. The
// moment coefficients are read only by the adaptive variants; momentum only
// by Momentum.
type OptimizerParams struct {
	// Weight-update rule
	OptimizerType OptimizerType `yaml:"optimizer_type" validate:"required,oneof=SGD Momentum Adam AdamW"`

	// First- and second-moment decay, Adam and AdamW only
	Beta1 float64 `yaml:"beta1" validate:"min=0,lt=1"`
	Beta2 float64 `yaml:"beta2" validate:"min=0,lt=1"`

	// Moment stabilizer
	Epsilon float64 `yaml:"epsilon" validate:"gt=0"`

	// Momentum coefficient, Momentum only
	Momentum float64 `yaml:"momentum" validate:"min=0,lt=1"`

	// Decoupled weight decay
	WeightDecayRate float64 `yaml:"weight_decay_rate,omitempty" validate:"min=0"`

	// Gradient clipping norm; 0 disables clipping
	MaxGradientNorm float64 `yaml:"max_gradient_norm,omitempty" validate:"min=0"`

	// Apply bias correction to the moment estimates
	CorrectBias bool `yaml:"correct_bias"`

	// Loss scaling: "dynamic" or a fixed factor
	LossScalingFactor LossScale `yaml:"loss_scaling_factor"`

	// Scalar rate or piecewise schedule
	LearningRate schedule.Schedule `yaml:"learning_rate" validate:"required"`
}

// RunConfig controls the run itself rather than the model.
type RunConfig struct {
	// Total training step budget
	MaxSteps int64 `yaml:"max_steps" validate:"gt=0"`

	// Eval batches per evaluation; 0 means a full pass
	EvalSteps int64 `yaml:"eval_steps,omitempty" validate:"min=0"`

	// Steps between checkpoints; 0 disables checkpointing
	CheckpointSteps int64 `yaml:"checkpoint_steps,omitempty" validate:"min=0"`

	// Steps between log lines
	LogSteps int64 `yaml:"log_steps" validate:"min=1"`

	// Write a checkpoint before the first step
	SaveInitialCheckpoint bool `yaml:"save_initial_checkpoint,omitempty"`

	// Checkpoints retained; 0 keeps all
	KeepCheckpointMax int `yaml:"keep_checkpoint_max" validate:"min=0"`

	// Global framework seed
	Seed int64 `yaml:"seed"`

	// Which loops the run executes
	Mode RunMode `yaml:"mode" validate:"required,oneof=train eval train_and_eval"`

	// Checkpoint and summary output directory; not existence-checked
	ModelDir string `yaml:"model_dir"`

	// Parallel execution units; batch sizes must divide evenly across them
	NumReplicas int `yaml:"num_replicas" validate:"min=1"`
}
