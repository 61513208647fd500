package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/ai/gemini"
	"github.com/spigell/resume-ranker/internal/extract"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/matching"
	"github.com/spigell/resume-ranker/internal/secrets"
	"github.com/spigell/resume-ranker/internal/source"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptResultsToFile = "Dump results to file"
	PromptExportTop     = "Export top resumes to zip"
	PromptExit          = "Exit"

	scoringModeLLM = "llm"

	exportArchiveName = "top_candidates.zip"
	defaultMinScore   = 0.5
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptResultsToFile, PromptExportTop, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank resumes against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().BoolP("auto-approve", "y", false, "print the ranking and exit without the interactive prompt")
	matchCmd.Flags().Bool("llm", false, "score each resume with one model call instead of embedding similarities")
	matchCmd.Flags().StringP("resumes-dir", "r", "", "directory with resumes to rank. Overrides the config value.")

	viper.BindPFlag("resumes-dir", matchCmd.Flags().Lookup("resumes-dir"))
}

// match is the main command for the cli.
func match(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	resumesDir := viper.GetString("resumes-dir")
	if resumesDir == "" {
		resumesDir = config.ResumesDir
	}
	if resumesDir == "" {
		logger.Fatal("resumes directory is required under resumes-dir")
	}

	jobText, err := readJobFile(config.JobFile)
	if err != nil {
		logger.Fatal("reading the job description", zap.Error(err))
	}

	dict, err := loadDictionary(config.SkillsFile)
	if err != nil {
		logger.Fatal("loading the skill dictionary", zap.Error(err))
	}

	logger.Info("loaded the skill dictionary", zap.Int("phrases", dict.Size()))

	docs, err := source.Collect(resumesDir, logger)
	if err != nil {
		logger.Fatal("collecting resumes", zap.Error(err))
	}

	if len(docs) == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes found"))
		return
	}

	logger.Info("collected resumes", zap.Int("count", len(docs)))

	matcher, err := prepareMatcher(ctx, cmd, config, dict, logger)
	if err != nil {
		logger.Fatal("preparing the matcher", zap.Error(err))
	}

	results, err := matcher.Match(ctx, jobText, docs)
	if err != nil {
		logger.Fatal("matching failed", zap.Error(err))
	}

	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates above the minimum score"))
		return
	}

	// do not bother error since results came from our own structs
	ranking, _ := json.MarshalIndent(results, "", "  ")
	logger.Info(string(ranking), zap.Int("qualified candidates", results.Len()))

	if cmd.Flag("auto-approve").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, resumesDir, results, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action, resumesDir string, results *matching.Results, logger *zap.Logger) error {
	switch action {
	case PromptResultsToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping results to file", zap.String("filename", filename))
		return nil
	case PromptExportTop:
		if err := source.ExportZip(exportArchiveName, resumesDir, results.Filenames()); err != nil {
			return fmt.Errorf("export top resumes: %w", err)
		}
		logger.Info("exported top resumes", zap.String("filename", exportArchiveName), zap.Int("count", results.Len()))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func readJobFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("job description file is not configured under job-file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("job description file %q is empty", path)
	}

	return text, nil
}

func loadDictionary(path string) (*extract.Dictionary, error) {
	if strings.TrimSpace(path) == "" {
		return extract.DefaultDictionary(), nil
	}
	return extract.LoadDictionary(path)
}

func prepareMatcher(ctx context.Context, cmd *cobra.Command, config *Config, dict *extract.Dictionary, baseLogger *zap.Logger) (matching.Matcher, error) {
	if config.Scoring == nil || config.Scoring.Gemini == nil {
		return nil, errors.New("the scoring.gemini section is required")
	}

	gcfg := config.Scoring.Gemini

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: gcfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set scoring.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	aiLogger := logger.WithCommonFields(baseLogger, "gemini", gcfg.Model)

	client, err := gemini.New(ctx, apiKey, gcfg.Model, gcfg.EmbeddingModel, gcfg.MaxRetries, aiLogger)
	if err != nil {
		return nil, err
	}

	minScore := config.MinScore
	if minScore <= 0 {
		minScore = defaultMinScore
	}

	mode := strings.TrimSpace(strings.ToLower(config.Scoring.Mode))
	if cmd.Flag("llm").Value.String() == "true" {
		mode = scoringModeLLM
	}

	if mode == scoringModeLLM {
		scorer := gemini.NewScorer(client, gcfg.MaxLogLength, aiLogger)
		return matching.NewLLMMatcher(scorer, minScore, baseLogger), nil
	}

	var embedder ai.Embedder = client
	return matching.NewSimilarityMatcher(dict, embedder, config.JobTitle, minScore, baseLogger), nil
}
