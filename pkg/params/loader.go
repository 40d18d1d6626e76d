// Package params defines the manifest schemas of the training and
// data-preprocessing pipelines and the strict loader that turns YAML
// documents into validated, immutable run descriptions.
//
// Loading is fail-fast and total: a manifest either produces a resolved
// object whose every field is usable, or a coded error naming everything
// wrong with it. Unknown keys, out-of-range values, and missing input
// files are all collected before the first error returns, so one load
// round-trip surfaces every problem at once.
package params

import (
	"bytes"
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lightcone-ml/paramzoo/pkg/errors"
	"github.com/lightcone-ml/paramzoo/pkg/logging"
)

var unknownFieldRe = regexp.MustCompile(`field (\S+) not found in type`)

// Load reads a manifest, detects its family from the top-level sections,
// and runs the matching pipeline.
func Load(ctx context.Context, path string) (Resolved, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ResourceNotFound, "cannot read manifest"),
			errors.Fields{"path": path})
	}

	family, err := DetectFamily(data)
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{"path": path})
	}

	switch family {
	case FamilyPreprocessing:
		return LoadPreprocessing(ctx, path)
	default:
		return LoadTraining(ctx, path)
	}
}

// LoadTraining runs the full training pipeline for one file: read, strict
// decode over defaults, validate, verify referenced inputs, freeze.
func LoadTraining(ctx context.Context, path string) (*ResolvedTraining, error) {
	ctx = logging.WithManifestPath(ctx, path)
	logger := logging.GetLogger()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ResourceNotFound, "cannot read manifest"),
			errors.Fields{"path": path})
	}

	cfg, err := ParseTraining(data)
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{"path": path})
	}

	if err := ValidateTraining(cfg); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ValidationFailed, "training manifest failed validation"),
			errors.Fields{"path": path})
	}

	if err := checkTrainingResources(cfg, filepath.Dir(path)); err != nil {
		return nil, errors.WithFields(err, errors.Fields{"path": path})
	}

	resolved, err := newResolvedTraining(path, data, cfg)
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{"path": path})
	}

	logger.Info(ctx, "validated training manifest: mode=%s max_steps=%d run=%s",
		cfg.RunConfig.Mode, cfg.RunConfig.MaxSteps, resolved.RunID())
	return resolved, nil
}

// LoadPreprocessing is the preprocessing-family counterpart of
// LoadTraining.
func LoadPreprocessing(ctx context.Context, path string) (*ResolvedPreprocessing, error) {
	ctx = logging.WithManifestPath(ctx, path)
	logger := logging.GetLogger()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ResourceNotFound, "cannot read manifest"),
			errors.Fields{"path": path})
	}

	cfg, err := ParsePreprocessing(data)
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{"path": path})
	}

	if err := ValidatePreprocessing(cfg); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ValidationFailed, "preprocessing manifest failed validation"),
			errors.Fields{"path": path})
	}

	if err := checkPreprocessingResources(cfg, filepath.Dir(path)); err != nil {
		return nil, errors.WithFields(err, errors.Fields{"path": path})
	}

	resolved, err := newResolvedPreprocessing(path, data, cfg)
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{"path": path})
	}

	logger.Info(ctx, "validated preprocessing manifest: processor=%s processes=%d run=%s",
		cfg.Setup.DatasetProcessor, cfg.Setup.Processes, resolved.RunID())
	return resolved, nil
}

// ParseTraining decodes a training document over the documented defaults.
// The decode is strict: every unknown key anywhere in the document is
// collected and reported in one UnknownField error.
func ParseTraining(data []byte) (*TrainingParams, error) {
	cfg := DefaultTrainingParams()
	if err := decodeStrict(data, &cfg); err != nil {
		return nil, err
	}
	if err := repairTrainingOptionals(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParsePreprocessing decodes a preprocessing document over the documented
// defaults, strictly.
func ParsePreprocessing(data []byte) (*PreprocessingParams, error) {
	cfg := DefaultPreprocessingParams()
	if err := decodeStrict(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DetectFamily inspects the top-level sections of a raw document and
// reports which schema it belongs to.
func DetectFamily(data []byte) (Family, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", errors.Wrap(err, errors.ParseFailed, "cannot parse manifest")
	}

	root := docMapping(&doc)
	if root == nil {
		return "", errors.New(errors.ParseFailed, "manifest root must be a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		switch root.Content[i].Value {
		case "setup", "processing":
			return FamilyPreprocessing, nil
		case "train_input", "eval_input", "model", "optimizer", "runconfig":
			return FamilyTraining, nil
		}
	}
	return "", errors.New(errors.InvalidInput,
		"cannot determine manifest family: no recognized top-level section")
}

// DumpTraining serializes a training manifest. Parsing the output yields a
// struct equal to the input.
func DumpTraining(cfg *TrainingParams) ([]byte, error) {
	return dumpYAML(cfg)
}

// DumpPreprocessing serializes a preprocessing manifest.
func DumpPreprocessing(cfg *PreprocessingParams) ([]byte, error) {
	return dumpYAML(cfg)
}

// SaveTraining writes a training manifest to disk.
func SaveTraining(cfg *TrainingParams, path string) error {
	data, err := DumpTraining(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.Unknown, "cannot write manifest"),
			errors.Fields{"path": path})
	}
	return nil
}

// SavePreprocessing writes a preprocessing manifest to disk.
func SavePreprocessing(cfg *PreprocessingParams, path string) error {
	data, err := DumpPreprocessing(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.Unknown, "cannot write manifest"),
			errors.Fields{"path": path})
	}
	return nil
}

func dumpYAML(cfg interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.Unknown, "cannot encode manifest")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.Unknown, "cannot encode manifest")
	}
	return buf.Bytes(), nil
}

func decodeStrict(data []byte, out interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return classifyDecodeError(err)
	}
	return nil
}

// classifyDecodeError splits a decode failure into the loader's error
// classes. Unknown-key reports are pulled out of the aggregated type error
// so every misspelled key is named in one UnknownField error; everything
// else is a plain parse failure.
func classifyDecodeError(err error) error {
	if goerrors.Is(err, io.EOF) {
		return errors.New(errors.ParseFailed, "manifest document is empty")
	}

	var typeErr *yaml.TypeError
	if goerrors.As(err, &typeErr) {
		var unknown []string
		for _, msg := range typeErr.Errors {
			if m := unknownFieldRe.FindStringSubmatch(msg); m != nil {
				unknown = append(unknown, m[1])
			}
		}
		if len(unknown) > 0 {
			return errors.WithFields(
				errors.Wrap(err, errors.UnknownField,
					fmt.Sprintf("unknown keys: %s", strings.Join(unknown, ", "))),
				errors.Fields{"keys": unknown})
		}
		return errors.Wrap(err, errors.ParseFailed, "manifest does not match the schema")
	}

	return errors.Wrap(err, errors.ParseFailed, "cannot parse manifest")
}

// repairTrainingOptionals re-applies section defaults to the optional
// mappings the first decode materialized from zero values. Decoding over a
// defaulted struct only preserves defaults for sections that exist before
// the decode; the input sections and embedding_initializer are nil until
// the document mentions them, so their defaults are merged in a second,
// scoped decode.
func repairTrainingOptionals(data []byte, cfg *TrainingParams) error {
	if cfg.TrainInput == nil && cfg.EvalInput == nil && cfg.Model.EmbeddingInitializer == nil {
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, errors.ParseFailed, "cannot parse manifest")
	}
	root := docMapping(&doc)
	if root == nil {
		return nil
	}

	if cfg.TrainInput != nil {
		in, err := decodeInputSection(root, "train_input")
		if err != nil {
			return err
		}
		if in != nil {
			cfg.TrainInput = in
		}
	}
	if cfg.EvalInput != nil {
		in, err := decodeInputSection(root, "eval_input")
		if err != nil {
			return err
		}
		if in != nil {
			cfg.EvalInput = in
		}
	}

	if cfg.Model.EmbeddingInitializer != nil {
		if node := mapValue(mapValue(root, "model"), "embedding_initializer"); node != nil {
			init := DefaultInitializerParams()
			if err := node.Decode(&init); err != nil {
				return classifyDecodeError(err)
			}
			cfg.Model.EmbeddingInitializer = &init
		}
	}
	return nil
}

func decodeInputSection(root *yaml.Node, key string) (*InputParams, error) {
	node := mapValue(root, key)
	if node == nil {
		return nil, nil
	}
	in := DefaultInputParams()
	if err := node.Decode(&in); err != nil {
		return nil, classifyDecodeError(err)
	}
	return &in, nil
}

func docMapping(doc *yaml.Node) *yaml.Node {
	node := doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}

func mapValue(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
