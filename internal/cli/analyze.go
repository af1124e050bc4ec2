package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"resumelens/internal/analyzer"
	"resumelens/internal/charts"
	"resumelens/internal/common"
	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"
	"resumelens/internal/upload"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Analyze a resume against ATS criteria",
	Long: `Analyze a resume file (PDF, DOCX, or TXT) against applicant tracking
system criteria. The report includes an overall score with grade, five
section scores, extracted skills, and recommendations. With --charts the
skill and trend charts are written as PNG files.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var (
	analyzeConfig      common.CommandConfig
	jobDescriptionFile string
	requiredSkills     string
	writeCharts        bool
	chartsDir          string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeCmd.Flags().StringVar(&jobDescriptionFile, "job-description-file", "", "Optional job description file for targeted scoring")
	analyzeCmd.Flags().StringVar(&requiredSkills, "required-skills", "", "Optional comma-separated skills the role requires")
	analyzeCmd.Flags().BoolVar(&writeCharts, "charts", false, "Write skill and trend chart PNGs")
	analyzeCmd.Flags().StringVar(&chartsDir, "charts-dir", "", "Directory for chart PNGs (default from config)")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	provider, err := analyzer.NewProvider(&cfg.Analyzer, logger)
	if err != nil {
		return fmt.Errorf("failed to create analysis provider: %w", err)
	}
	defer func() {
		if closeErr := provider.Close(); closeErr != nil {
			logger.LogError(closeErr, "Failed to close analysis provider")
		}
	}()

	jobDescription, err := readOptionalFile(jobDescriptionFile)
	if err != nil {
		return err
	}

	controller := upload.NewController(logger)
	orch := analyzer.NewOrchestrator(controller, provider, logger)

	logger.Info("Starting resume analysis",
		"resume_file", args[0],
		"mode", cfg.Analyzer.Mode,
		"output_format", analyzeConfig.OutputFormat)

	result, err := common.RunAnalysis(cmd.Context(), logger, orch, common.AnalyzeParams{
		ResumePath:     args[0],
		JobDescription: jobDescription,
		RequiredSkills: requiredSkills,
	})
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(result, analyzeConfig); err != nil {
		return err
	}

	if writeCharts {
		if err := writeChartFiles(cfg, result, logger); err != nil {
			return err
		}
	}

	logger.Info("Resume analysis completed successfully",
		"overall_score", result.ATSScore.OverallScore,
		"grade", result.ATSScore.Grade)
	return nil
}

func readOptionalFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// writeChartFiles renders the skill and trend charts as PNG files in the
// configured output directory.
func writeChartFiles(cfg *config.Config, result types.AnalysisResult, logger *errors.Logger) error {
	dir := chartsDir
	if dir == "" {
		dir = cfg.Charts.OutputDir
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("cannot create charts directory %s: %w", dir, err)
	}

	skills := charts.NewSurface(cfg.Charts.SkillsWidth, cfg.Charts.SkillsHeight)
	skills.DrawSkillBars(result.Skills.Extracted)
	if err := writeChartPNG(filepath.Join(dir, "skills.png"), skills); err != nil {
		return err
	}

	trend := charts.NewSurface(cfg.Charts.TrendWidth, cfg.Charts.TrendHeight)
	trend.DrawTrend(charts.ScoreTrend(result.ATSScore.OverallScore))
	if err := writeChartPNG(filepath.Join(dir, "trend.png"), trend); err != nil {
		return err
	}

	logger.Info("Charts written", "dir", dir)
	return nil
}

func writeChartPNG(path string, surface *charts.Surface) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create chart file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := surface.EncodePNG(f); err != nil {
		return fmt.Errorf("failed to write chart %s: %w", path, err)
	}
	return nil
}
