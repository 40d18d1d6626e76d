package params

import (
	"github.com/lightcone-ml/paramzoo/pkg/textnorm"
)

// Defaults below are the values a manifest gets for every legal-to-omit
// field. Loading decodes the document over a fully defaulted struct, so an
// absent key keeps its default and a present key overrides it. Fields
// without a usable default (data_dir, batch_size, the architecture sizes)
// stay zero and are caught by validation when omitted.

// DefaultTrainingParams returns a training manifest populated with every
// documented default. The input sections stay nil until a document
// mentions them; their defaults merge in during the load.
func DefaultTrainingParams() TrainingParams {
	return TrainingParams{
		Model:     defaultModelParams(),
		Optimizer: defaultOptimizerParams(),
		RunConfig: defaultRunConfig(),
	}
}

// DefaultInputParams returns the defaults of one input pipeline section.
func DefaultInputParams() InputParams {
	return InputParams{
		Shuffle:           true,
		ShuffleSeed:       1337,
		PrefetchFactor:    10,
		PersistentWorkers: true,
		DropLast:          true,
	}
}

func defaultModelParams() ModelParams {
	return ModelParams{
		Nonlinearity:          GeLU,
		PositionEmbeddingType: LearnedPositionEmbedding,
		ShareEmbeddingWeights: true,
		LayerNormEpsilon:      1.0e-5,
		Initializer:           DefaultInitializerParams(),
	}
}

// DefaultInitializerParams returns the defaults of an initializer block.
func DefaultInitializerParams() InitializerParams {
	return InitializerParams{
		Name: TruncatedNormalInit,
		Mean: 0.0,
		Std:  0.02,
	}
}

func defaultOptimizerParams() OptimizerParams {
	return OptimizerParams{
		Beta1:             0.9,
		Beta2:             0.999,
		Epsilon:           1.0e-8,
		Momentum:          0.9,
		CorrectBias:       true,
		LossScalingFactor: DynamicLossScale(),
	}
}

func defaultRunConfig() RunConfig {
	return RunConfig{
		LogSteps:          100,
		KeepCheckpointMax: 5,
		Seed:              1,
		Mode:              ModeTrain,
		ModelDir:          "model_dir",
		NumReplicas:       1,
	}
}

// DefaultPreprocessingParams returns a preprocessing manifest populated
// with every documented default.
func DefaultPreprocessingParams() PreprocessingParams {
	return PreprocessingParams{
		Setup:      defaultSetupParams(),
		Processing: defaultProcessingParams(),
		Dataset:    defaultDatasetParams(),
	}
}

func defaultSetupParams() SetupParams {
	return SetupParams{
		Processes: 1,
	}
}

func defaultProcessingParams() ProcessingParams {
	return ProcessingParams{
		OutputName:     "examples",
		FilesPerRecord: 50000,
		WriteRemainder: true,
		DisplayPbar:    true,
	}
}

func defaultDatasetParams() DatasetParams {
	return DatasetParams{
		FtfyNormalizer: textnorm.NFC,
		JsonlKey:       "text",
		PackSequences:  true,
		MinSequenceLen: 10,
	}
}
