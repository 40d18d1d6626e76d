package params

// Variant enums for the closed fields of both manifest families. Every
// variant-typed field rejects values outside its set; there are no
// passthrough escapes, so a typo fails validation instead of surfacing as a
// runtime fallback.

// DataProcessor selects the input pipeline of a training input section.
type DataProcessor string

const (
	GptHDF5DataProcessor            DataProcessor = "GptHDF5DataProcessor"
	BertCSVDataProcessor            DataProcessor = "BertCSVDataProcessor"
	BertCSVDynamicMaskDataProcessor DataProcessor = "BertCSVDynamicMaskDataProcessor"
)

// DataProcessors returns all known variants.
func DataProcessors() []DataProcessor {
	return []DataProcessor{
		GptHDF5DataProcessor,
		BertCSVDataProcessor,
		BertCSVDynamicMaskDataProcessor,
	}
}

// Valid reports whether the processor is a known variant.
func (p DataProcessor) Valid() bool {
	switch p {
	case GptHDF5DataProcessor, BertCSVDataProcessor, BertCSVDynamicMaskDataProcessor:
		return true
	}
	return false
}

// BERT reports whether the processor reads the CSV shard layout of the BERT
// pipelines. BERT inputs carry extra masking fields that the HDF5 pipeline
// does not use.
func (p DataProcessor) BERT() bool {
	return p == BertCSVDataProcessor || p == BertCSVDynamicMaskDataProcessor
}

// DatasetProcessor selects the corpus-to-example conversion of a
// preprocessing setup section.
type DatasetProcessor string

const (
	LMDataPreprocessor        DatasetProcessor = "LMDataPreprocessor"
	SummarizationPreprocessor DatasetProcessor = "SummarizationPreprocessor"
)

// DatasetProcessors returns all known variants.
func DatasetProcessors() []DatasetProcessor {
	return []DatasetProcessor{LMDataPreprocessor, SummarizationPreprocessor}
}

// Valid reports whether the processor is a known variant.
func (p DatasetProcessor) Valid() bool {
	return p == LMDataPreprocessor || p == SummarizationPreprocessor
}

// TokenizerType selects the tokenizer of a processing section. Each variant
// pins down which vocabulary files must be present.
type TokenizerType string

const (
	GPT2Tokenizer      TokenizerType = "GPT2Tokenizer"
	NeoXTokenizer      TokenizerType = "NeoXTokenizer"
	WordPieceTokenizer TokenizerType = "WordPieceTokenizer"
)

// TokenizerTypes returns all known variants.
func TokenizerTypes() []TokenizerType {
	return []TokenizerType{GPT2Tokenizer, NeoXTokenizer, WordPieceTokenizer}
}

// Valid reports whether the tokenizer is a known variant.
func (t TokenizerType) Valid() bool {
	switch t {
	case GPT2Tokenizer, NeoXTokenizer, WordPieceTokenizer:
		return true
	}
	return false
}

// NeedsVocabFile reports whether the tokenizer requires vocab_file.
func (t TokenizerType) NeedsVocabFile() bool {
	return t == GPT2Tokenizer || t == WordPieceTokenizer
}

// NeedsEncoderFile reports whether the tokenizer requires encoder_file.
func (t TokenizerType) NeedsEncoderFile() bool {
	return t == GPT2Tokenizer || t == NeoXTokenizer
}

// OptimizerType selects the weight-update rule of an optimizer section.
type OptimizerType string

const (
	SGD      OptimizerType = "SGD"
	Momentum OptimizerType = "Momentum"
	Adam     OptimizerType = "Adam"
	AdamW    OptimizerType = "AdamW"
)

// OptimizerTypes returns all known variants.
func OptimizerTypes() []OptimizerType {
	return []OptimizerType{SGD, Momentum, Adam, AdamW}
}

// Valid reports whether the optimizer is a known variant.
func (o OptimizerType) Valid() bool {
	switch o {
	case SGD, Momentum, Adam, AdamW:
		return true
	}
	return false
}

// Adaptive reports whether the optimizer consumes the beta/epsilon moment
// coefficients.
func (o OptimizerType) Adaptive() bool {
	return o == Adam || o == AdamW
}

// PositionEmbeddingType selects how token positions enter the model.
type PositionEmbeddingType string

const (
	LearnedPositionEmbedding PositionEmbeddingType = "learned"
	FixedPositionEmbedding   PositionEmbeddingType = "fixed"
	RotaryPositionEmbedding  PositionEmbeddingType = "rotary"
)

// PositionEmbeddingTypes returns all known variants.
func PositionEmbeddingTypes() []PositionEmbeddingType {
	return []PositionEmbeddingType{
		LearnedPositionEmbedding,
		FixedPositionEmbedding,
		RotaryPositionEmbedding,
	}
}

// Valid reports whether the embedding type is a known variant.
func (p PositionEmbeddingType) Valid() bool {
	switch p {
	case LearnedPositionEmbedding, FixedPositionEmbedding, RotaryPositionEmbedding:
		return true
	}
	return false
}

// Nonlinearity selects the feed-forward activation.
type Nonlinearity string

const (
	GeLU Nonlinearity = "gelu"
	ReLU Nonlinearity = "relu"
)

// Valid reports whether the nonlinearity is a known variant.
func (n Nonlinearity) Valid() bool {
	return n == GeLU || n == ReLU
}

// RunMode selects which loops a run executes.
type RunMode string

const (
	ModeTrain        RunMode = "train"
	ModeEval         RunMode = "eval"
	ModeTrainAndEval RunMode = "train_and_eval"
)

// RunModes returns all known variants.
func RunModes() []RunMode {
	return []RunMode{ModeTrain, ModeEval, ModeTrainAndEval}
}

// Valid reports whether the mode is a known variant.
func (m RunMode) Valid() bool {
	switch m {
	case ModeTrain, ModeEval, ModeTrainAndEval:
		return true
	}
	return false
}

// NeedsEval reports whether the mode runs the evaluation loop and therefore
// requires an eval_input section.
func (m RunMode) NeedsEval() bool {
	return m == ModeEval || m == ModeTrainAndEval
}

// InitializerName selects a weight-initializer family.
type InitializerName string

const (
	ConstantInit        InitializerName = "constant"
	UniformInit         InitializerName = "uniform"
	NormalInit          InitializerName = "normal"
	TruncatedNormalInit InitializerName = "truncated_normal"
	XavierUniformInit   InitializerName = "xavier_uniform"
	XavierNormalInit    InitializerName = "xavier_normal"
)

// InitializerNames returns all known variants.
func InitializerNames() []InitializerName {
	return []InitializerName{
		ConstantInit,
		UniformInit,
		NormalInit,
		TruncatedNormalInit,
		XavierUniformInit,
		XavierNormalInit,
	}
}

// Valid reports whether the initializer name is a known variant.
func (n InitializerName) Valid() bool {
	switch n {
	case ConstantInit, UniformInit, NormalInit, TruncatedNormalInit,
		XavierUniformInit, XavierNormalInit:
		return true
	}
	return false
}

// Family tags a manifest with the schema it was validated against.
type Family string

const (
	FamilyTraining      Family = "training"
	FamilyPreprocessing Family = "preprocessing"
)
