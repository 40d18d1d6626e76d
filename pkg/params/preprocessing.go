package params

import (
	"github.com/lightcone-ml/paramzoo/pkg/textnorm"
)

// PreprocessingParams is the schema of a data-preprocessing manifest: where
// the raw corpus lives, how it is tokenized and sharded, and which text
// cleanup runs before tokenization.
type PreprocessingParams struct {
	// Corpus location and worker layout
	Setup SetupParams `yaml:"setup"`

	// Tokenization and shard writing
	Processing ProcessingParams `yaml:"processing"`

	// Text cleanup applied before tokenization
	Dataset DatasetParams `yaml:"dataset"`
}

// SetupParams locates the corpus and sizes the worker pool.
type SetupParams struct {
	// Raw corpus directory; must exist at load
	InputDir string `yaml:"input_dir" validate:"required"`

	// Shard output directory; created by the run, not checked at load
	OutputDir string `yaml:"output_dir" validate:"required"`

	// Worker process count
	Processes int `yaml:"processes" validate:"min=1"`

	// Corpus-to-example conversion variant
	DatasetProcessor DatasetProcessor `yaml:"dataset_processor" validate:"required,oneof=LMDataPreprocessor SummarizationPreprocessor"`
}

// ProcessingParams configures tokenization and shard writing. Which of
// vocab_file and encoder_file are required depends on the tokenizer
// variant.
type ProcessingParams struct {
	// Tokenizer variant
	TokenizerType TokenizerType `yaml:"tokenizer_type" validate:"required,oneof=GPT2Tokenizer NeoXTokenizer WordPieceTokenizer"`

	// Vocabulary file, required by GPT2 and WordPiece tokenizers
	VocabFile string `yaml:"vocab_file,omitempty"`

	// BPE merges file, required by GPT2 and NeoX tokenizers
	EncoderFile string `yaml:"encoder_file,omitempty"`

	// Special token ids
	EosID int `yaml:"eos_id,omitempty" validate:"min=0"`
	PadID int `yaml:"pad_id,omitempty" validate:"min=0"`

	// Tokens per example
	MaxSeqLength int `yaml:"max_seq_length" validate:"gt=0"`

	// Probability of emitting a deliberately short sequence
	ShortSeqProb float64 `yaml:"short_seq_prob,omitempty" validate:"min=0,max=1"`

	// Shard file base name
	OutputName string `yaml:"output_name" validate:"required"`

	// Examples per shard
	FilesPerRecord int `yaml:"files_per_record" validate:"min=1"`

	// Buffer a full shard in memory before writing
	WriteInBatch bool `yaml:"write_in_batch,omitempty"`

	// Write the trailing partial shard
	WriteRemainder bool `yaml:"write_remainder"`

	// Continue an interrupted preprocessing run
	ResumeFromCheckpoint bool `yaml:"resume_from_checkpoint,omitempty"`

	// Show a progress bar
	DisplayPbar bool `yaml:"display_pbar"`

	// Shuffle seed for example order within the run
	Seed int64 `yaml:"seed,omitempty"`
}

// DatasetParams configures text cleanup ahead of tokenization.
type DatasetParams struct {
	// Run character repair before tokenizing
	UseFtfy bool `yaml:"use_ftfy,omitempty"`

	// Unicode normalization form used by the repair pass
	FtfyNormalizer textnorm.Form `yaml:"ftfy_normalizer" validate:"required,oneof=NFC NFKC NFD NFKD"`

	// Undo WikiText token spacing
	WikitextDetokenize bool `yaml:"wikitext_detokenize,omitempty"`

	// JSON key holding the document text in .jsonl corpora
	JsonlKey string `yaml:"jsonl_key" validate:"required"`

	// Pack multiple documents into each example
	PackSequences bool `yaml:"pack_sequences"`

	// Drop documents shorter than this many tokens
	MinSequenceLen int `yaml:"min_sequence_len" validate:"min=1"`
}
