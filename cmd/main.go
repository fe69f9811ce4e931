package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"hoshin-matrix/internal/config"
	"hoshin-matrix/internal/helper"
	"hoshin-matrix/internal/hoshin"
	"hoshin-matrix/internal/llmservice"
	"hoshin-matrix/internal/models"
	"hoshin-matrix/internal/parser"
	"hoshin-matrix/internal/server"
)

const (
	configFilePath = "./configs/config.yaml"
	wordWrap       = 100
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	inputsPath := flag.String("inputs", "", "YAML file with the five planning fields; generates a report without starting the server")
	outPath := flag.String("out", models.AutomaticFilename, "Where to write the generated workbook")
	dryRun := flag.Bool("dry-run", false, "Print parsed tables and suggestions, do not write the workbook")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("log_level", cfg.LogLevel).Msg("Invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	completer, err := llmservice.NewCompleter(&cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing completer")
	}
	generator := hoshin.NewGenerator(completer, parser.TableOptions{KeepSingleRow: cfg.Parser.KeepSingleRowTables})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *inputsPath != "" {
		if err := generateReport(ctx, generator, *inputsPath, *outPath, *dryRun); err != nil {
			log.Fatal().Err(err).Msg("Error generating report")
		}
		return
	}

	srv, err := server.NewHTTPServer(generator, cfg.Server)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating server")
	}
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func loadInputs(path string) (models.Inputs, error) {
	var in models.Inputs
	data, err := os.ReadFile(path)
	if err != nil {
		return in, err
	}
	if err := yaml.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("failed to parse inputs %s: %w", path, err)
	}
	return in, nil
}

// generateReport runs the automatic workflow once and renders it to the terminal.
func generateReport(ctx context.Context, generator *hoshin.Generator, inputsPath, outPath string, dryRun bool) error {
	in, err := loadInputs(inputsPath)
	if err != nil {
		return err
	}

	report, err := generator.Generate(ctx, in)
	if err != nil {
		return err
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wordWrap))
	if err != nil {
		return err
	}
	for _, section := range []string{
		"## Generated Hoshin Kanri Matrix\n\n" + report.Matrix,
		models.Legend,
		"## Improvement Suggestions\n\n" + report.Suggestions,
	} {
		out, err := renderer.Render(section)
		if err != nil {
			return err
		}
		fmt.Print(out)
	}

	if dryRun {
		helper.PrettyPrint(os.Stdout, struct {
			Tables      []models.ParsedTable   `json:"tables"`
			Suggestions models.SuggestionTable `json:"suggestions"`
			Warning     string                 `json:"warning,omitempty"`
		}{report.Tables, report.SuggestionTable, report.Warning})
		return nil
	}

	if report.Workbook == nil {
		log.Warn().Int("tables", len(report.Tables)).Msg(report.Warning)
		return nil
	}
	if err := helper.WriteFile(outPath, report.Workbook); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	log.Info().Str("path", outPath).Msg("Workbook written")
	return nil
}
