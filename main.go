package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"news-verifier/client"
	"news-verifier/config"
	"news-verifier/handlers"
	"news-verifier/logging"
	"news-verifier/models"
	"news-verifier/prompts"
	"news-verifier/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger  *zap.Logger
	cfg     *config.Config
	verbose bool

	remote   bool
	fewShot  bool
	clientID string
)

var rootCmd = &cobra.Command{
	Use:   "news-verifier",
	Short: "Classify short news texts as REAL or FAKE with an LLM",
	Long: `news-verifier prompts a language model with few-shot examples to decide
whether a news text is REAL or FAKE, and looks up supporting article URLs
when the model does not cite any.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.LogLevel, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (POST /classify, GET /health)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Classify a news text once and print the JSON response",
	Long: `Classifies the given text (or stdin when no argument is given).
With --remote the text is sent to the API at API_URL instead of running
the model locally.`,
	RunE: runClassify,
}

var promptCmd = &cobra.Command{
	Use:   "prompt [text]",
	Short: "Print the rendered prompt for a news text",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(cmd, args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), prompts.BuildPrompt(text, fewShot))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	classifyCmd.Flags().BoolVar(&remote, "remote", false, "send the text to the remote API at API_URL")
	classifyCmd.Flags().StringVar(&clientID, "id", "", "correlation id echoed back in the response")
	promptCmd.Flags().BoolVar(&fewShot, "few-shot", true, "include the few-shot examples")

	rootCmd.AddCommand(serveCmd, classifyCmd, promptCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildClassifier constructs the model handle once and the pipeline around it
func buildClassifier(ctx context.Context) (*services.ClassificationService, error) {
	generator, err := services.NewGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.NewsAPIKey == "" {
		logger.Warn("NEWSAPI_KEY not set; source enrichment disabled")
	}
	searcher := services.NewNewsDataService(cfg.NewsAPIKey, cfg.NewsAPIBaseURL, cfg.NewsAPITimeout, logger)

	return services.NewClassificationService(generator, searcher, services.ClassifierOptions{
		UseFewShot:     cfg.UseFewShot,
		SourcePageSize: cfg.SourcePageSize,
	}, logger), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	classifier, err := buildClassifier(ctx)
	if err != nil {
		logger.Error("Startup failed", zap.Error(err))
		return err
	}

	gin.SetMode(cfg.GinMode)
	router := handlers.NewRouter(
		handlers.NewClassifyHandler(classifier, logger),
		handlers.RouterOptions{CORSOrigins: cfg.CORSOrigins},
		logger,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting news verifier", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runClassify(cmd *cobra.Command, args []string) error {
	text, err := readText(cmd, args)
	if err != nil {
		return err
	}

	var id *string
	if clientID != "" {
		id = &clientID
	}

	var resp *models.ClassificationResponse
	if remote {
		resp, err = client.NewAPIClient(cfg.APIURL, 0).Classify(cmd.Context(), text, id)
	} else {
		resp, err = classifyLocal(cmd.Context(), text, id)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func classifyLocal(ctx context.Context, text string, id *string) (*models.ClassificationResponse, error) {
	classifier, err := buildClassifier(ctx)
	if err != nil {
		return nil, err
	}
	result, err := classifier.Classify(ctx, text)
	if err != nil {
		return nil, err
	}
	return &models.ClassificationResponse{ID: id, Input: text, Result: result}, nil
}

// readText joins args, or reads stdin when none are given
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", errors.New("no news text given")
	}
	return text, nil
}
