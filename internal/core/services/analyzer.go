package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driving"
	"github.com/echolens-labs/echolens-cli/internal/logger"
)

// Ensure AnalyzerService implements the interface.
var _ driving.AnalysisService = (*AnalyzerService)(nil)

// analysisPrompt frames the curated dataset for the LLM. The [[ID]]
// citation instruction is the input contract of the report parser.
const analysisPrompt = `--- TASK: INSIGHTS FROM USER FEEDBACK ---
Perform strategic analysis of the user feedback below. Write each
insight as "TOPIC: insight text", separate insights with a blank line,
and cite the supporting records as [[ID, ID]] using the exact id values
from the input data.

INPUT DATA:
`

// analysisTemperature keeps the model output near-deterministic so the
// citation markup stays machine-parseable.
const analysisTemperature = 0.0001

// AnalyzerService submits the curated dataset to the LLM and persists
// the free-text analysis consumed by report generation.
type AnalyzerService struct {
	llm         driven.LLMService
	curatedPath string
	outputPath  string
}

// NewAnalyzerService creates an analyzer reading the curated dataset
// from curatedPath and writing raw analysis text to outputPath.
func NewAnalyzerService(llm driven.LLMService, curatedPath, outputPath string) *AnalyzerService {
	return &AnalyzerService{
		llm:         llm,
		curatedPath: curatedPath,
		outputPath:  outputPath,
	}
}

// Analyze runs the summarization prompt over the curated dataset and
// writes the raw analysis text file. Returns domain.ErrMissingInput
// when the curated dataset has not been exported.
func (s *AnalyzerService) Analyze(ctx context.Context) (string, error) {
	logger.Section("LLM Analysis")

	data, err := os.ReadFile(s.curatedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrMissingInput, s.curatedPath)
		}
		return "", fmt.Errorf("reading curated dataset: %w", err)
	}

	logger.Info("Submitting %d bytes to %s", len(data), s.llm.ModelName())
	analysis, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "user", Content: analysisPrompt + string(data)},
	}, driven.ChatOptions{Temperature: analysisTemperature})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.outputPath), 0o700); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(s.outputPath, []byte(analysis), 0o600); err != nil {
		return "", fmt.Errorf("writing analysis output: %w", err)
	}

	logger.Info("Analysis written to %s", s.outputPath)
	return analysis, nil
}
