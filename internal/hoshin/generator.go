package hoshin

import (
	"context"
	"errors"
	"fmt"

	"hoshin-matrix/internal/export"
	"hoshin-matrix/internal/llmservice"
	"hoshin-matrix/internal/models"
	"hoshin-matrix/internal/parser"

	"github.com/rs/zerolog/log"
)

// Report is everything produced by one generation.
type Report struct {
	Inputs          models.Inputs          `json:"inputs"`
	Matrix          string                 `json:"matrix"`
	MatrixHTML      string                 `json:"-"`
	Suggestions     string                 `json:"suggestions"`
	SuggestionsHTML string                 `json:"-"`
	Tables          []models.ParsedTable   `json:"tables"`
	SuggestionTable models.SuggestionTable `json:"suggestion_table"`
	// Workbook is nil when the matrix response did not yield enough tables;
	// Warning then says why.
	Workbook []byte `json:"-"`
	Warning  string `json:"warning,omitempty"`
}

type Generator struct {
	completer llmservice.Completer
	tables    parser.TableOptions
}

func NewGenerator(completer llmservice.Completer, tables parser.TableOptions) *Generator {
	return &Generator{completer: completer, tables: tables}
}

// Generate runs both prompts, then parses and exports the results. Upstream
// errors abort the run; when only the suggestions call fails the report
// carrying the matrix is returned along with the error. A malformed matrix
// only drops the workbook.
func (g *Generator) Generate(ctx context.Context, in models.Inputs) (*Report, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	report := &Report{Inputs: in}

	log.Info().Msg("Generating matrix")
	matrix, err := g.completer.Complete(ctx, ComposeMatrixPrompt(in))
	if err != nil {
		return nil, fmt.Errorf("generate matrix: %w", err)
	}
	report.Matrix = matrix
	if report.MatrixHTML, err = parser.RenderHTML(matrix); err != nil {
		return nil, fmt.Errorf("render matrix: %w", err)
	}

	log.Info().Msg("Generating suggestions")
	suggestions, err := g.completer.Complete(ctx, ComposeSuggestionsPrompt(in))
	if err != nil {
		return report, fmt.Errorf("generate suggestions: %w", err)
	}
	report.Suggestions = suggestions

	if report.SuggestionsHTML, err = parser.RenderHTML(suggestions); err != nil {
		return nil, fmt.Errorf("render suggestions: %w", err)
	}

	report.Tables = parser.ExtractTables(matrix, g.tables)
	report.SuggestionTable = parser.ExtractSuggestions(suggestions)
	log.Debug().Int("tables", len(report.Tables)).Msg("Parsed matrix response")

	workbook, err := export.AutomaticWorkbook(report.Tables, report.SuggestionTable)
	switch {
	case errors.Is(err, export.ErrTooFewTables):
		log.Warn().Err(err).Msg("Skipping workbook")
		report.Warning = models.IncorrectFormat
	case err != nil:
		return nil, fmt.Errorf("export workbook: %w", err)
	default:
		report.Workbook = workbook
	}
	return report, nil
}
