package services

import (
	"context"
	"fmt"

	"news-verifier/models"
	"news-verifier/prompts"
	"news-verifier/utils"

	"go.uber.org/zap"
)

// ClassifierOptions controls prompt and enrichment behavior
type ClassifierOptions struct {
	UseFewShot     bool
	SourcePageSize int
}

// DefaultClassifierOptions enables few-shot prompting and three sources
func DefaultClassifierOptions() ClassifierOptions {
	return ClassifierOptions{
		UseFewShot:     true,
		SourcePageSize: models.MaxSources,
	}
}

type ClassificationService struct {
	generator Generator
	searcher  SourceSearcher
	opts      ClassifierOptions
	logger    *zap.Logger
}

// NewClassificationService creates a classification pipeline.
// searcher may be nil, in which case results are never enriched.
func NewClassificationService(generator Generator, searcher SourceSearcher, opts ClassifierOptions, logger *zap.Logger) *ClassificationService {
	if opts.SourcePageSize <= 0 || opts.SourcePageSize > models.MaxSources {
		opts.SourcePageSize = models.MaxSources
	}
	return &ClassificationService{
		generator: generator,
		searcher:  searcher,
		opts:      opts,
		logger:    logger,
	}
}

// Classify runs prompt -> model -> extraction -> source enrichment.
// Only model errors are returned; extraction and enrichment degrade.
func (s *ClassificationService) Classify(ctx context.Context, newsText string) (models.ClassificationResult, error) {
	prompt := prompts.BuildPrompt(newsText, s.opts.UseFewShot)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return models.ClassificationResult{}, fmt.Errorf("model invocation failed: %w", err)
	}

	result, err := ParseResult(raw)
	if err != nil {
		s.logger.Warn("Could not extract result from model output",
			zap.Error(err),
			zap.Int("output_len", len(raw)))
		result = models.UnknownResult(raw)
	}

	if len(result.Sources) == 0 && s.searcher != nil {
		found := s.searcher.SearchSources(ctx, newsText, s.opts.SourcePageSize)
		result.Sources = utils.CompactStrings(found, s.opts.SourcePageSize)
	}

	s.logger.Info("Classified news text",
		zap.String("label", string(result.Label)),
		zap.Float64("confidence", result.Confidence),
		zap.Int("sources", len(result.Sources)))

	return result, nil
}
