// Package testutil builds manifest workspaces for tests: a temp directory
// holding a manifest plus every input file the manifest references, so
// loads succeed without touching real corpora.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content under root at rel, creating parent directories.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return path
}

// MkDir creates a directory under root.
func MkDir(t *testing.T, root, rel string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	return path
}

// TrainingManifest is a minimal valid GPT-style training document. Its
// relative paths match the layout created by TrainingWorkspace, and its
// schedule spans exactly the step budget.
func TrainingManifest() string {
	return `train_input:
  data_processor: "GptHDF5DataProcessor"
  data_dir: "data/train"
  batch_size: 121
  shuffle: true
  repeat: true

model:
  vocab_size: 50257
  hidden_size: 768
  num_heads: 12
  num_hidden_layers: 12
  max_position_embeddings: 1024
  filter_size: 3072
  embedding_dropout_rate: 0.1
  residual_dropout_rate: 0.1
  attention_dropout_rate: 0.1
  nonlinearity: "gelu"
  position_embedding_type: "learned"
  initializer:
    name: "truncated_normal"
    std: 0.02

optimizer:
  optimizer_type: "AdamW"
  weight_decay_rate: 0.01
  max_gradient_norm: 1.0
  loss_scaling_factor: "dynamic"
  learning_rate:
    - scheduler: "Linear"
      initial_learning_rate: 0.0
      end_learning_rate: 0.0002
      steps: 346
    - scheduler: "CosineDecay"
      initial_learning_rate: 0.0002
      end_learning_rate: 2.0e-5
      steps: 23988

runconfig:
  max_steps: 24334
  checkpoint_steps: 1000
  log_steps: 100
  mode: "train"
  model_dir: "model_dir"
  num_replicas: 11
`
}

// TrainingWorkspace writes TrainingManifest and its data directory into a
// temp dir, returning the workspace root and the manifest path.
func TrainingWorkspace(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	MkDir(t, root, "data/train")
	WriteFile(t, root, "data/train/examples_0.h5", "h5")
	manifest := WriteFile(t, root, "train.yaml", TrainingManifest())
	return root, manifest
}

// BertTrainingManifest is a minimal valid BERT-style training document with
// a scalar learning rate. Paths match BertTrainingWorkspace.
func BertTrainingManifest() string {
	return `train_input:
  data_processor: "BertCSVDynamicMaskDataProcessor"
  data_dir: "data/bert"
  batch_size: 256
  vocab_file: "uncased_vocab.txt"
  max_sequence_length: 128
  max_predictions_per_seq: 20
  masked_lm_prob: 0.15

model:
  vocab_size: 30522
  hidden_size: 256
  num_heads: 4
  num_hidden_layers: 4
  max_position_embeddings: 512
  filter_size: 1024
  dropout_rate: 0.1
  nonlinearity: "gelu"
  position_embedding_type: "learned"
  initializer:
    name: "truncated_normal"
    std: 0.02

optimizer:
  optimizer_type: "AdamW"
  weight_decay_rate: 0.01
  learning_rate: 0.0001

runconfig:
  max_steps: 1000
  log_steps: 50
  mode: "train"
  model_dir: "model_dir"
  num_replicas: 1
`
}

// BertTrainingWorkspace writes BertTrainingManifest plus its CSV shard
// directory and vocabulary file.
func BertTrainingWorkspace(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	MkDir(t, root, "data/bert")
	WriteFile(t, root, "data/bert/examples_0.csv", "text_a,text_b,label\n")
	WriteFile(t, root, "uncased_vocab.txt", "[PAD]\n[UNK]\n[CLS]\n[SEP]\n[MASK]\n")
	manifest := WriteFile(t, root, "bert.yaml", BertTrainingManifest())
	return root, manifest
}

// PreprocessingManifest is a minimal valid preprocessing document. Paths
// match PreprocessingWorkspace.
func PreprocessingManifest() string {
	return `setup:
  input_dir: "raw"
  output_dir: "hdf5"
  processes: 2
  dataset_processor: "LMDataPreprocessor"

processing:
  tokenizer_type: "GPT2Tokenizer"
  vocab_file: "vocab.bpe"
  encoder_file: "encoder.json"
  eos_id: 50256
  pad_id: 50256
  max_seq_length: 2048
  short_seq_prob: 0.02
  output_name: "examples"
  files_per_record: 5000
  write_in_batch: true

dataset:
  use_ftfy: true
  ftfy_normalizer: "NFC"
  wikitext_detokenize: false
  jsonl_key: "text"
  pack_sequences: true
  min_sequence_len: 16
`
}

// PreprocessingWorkspace writes PreprocessingManifest, the raw corpus
// directory, and both tokenizer files. The output directory is left
// uncreated; loads must not require it.
func PreprocessingWorkspace(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	MkDir(t, root, "raw")
	WriteFile(t, root, "raw/corpus.jsonl", `{"text": "hello world"}`+"\n")
	WriteFile(t, root, "vocab.bpe", "#version: 0.2\n")
	WriteFile(t, root, "encoder.json", "{}\n")
	manifest := WriteFile(t, root, "preprocess.yaml", PreprocessingManifest())
	return root, manifest
}
