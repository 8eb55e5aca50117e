package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcdickinson/monofetch/internal/config"
	"github.com/jcdickinson/monofetch/internal/fetch"
	"github.com/jcdickinson/monofetch/internal/inline"
	_ "github.com/jcdickinson/monofetch/internal/resource"
)

var (
	rootMime   string
	outputPath string
	parallel   int
	timeout    time.Duration
	userAgent  string
)

var rootCmd = &cobra.Command{
	Use:   "monofetch <url>",
	Short: "Fetch a document and embed everything it references as data URIs",
	Example: `  monofetch https://example.com/notes.txt
  monofetch --mime text/markdown https://example.com/README.md
  monofetch -o bundle.txt https://example.com/index.txt`,
	Args: cobra.ExactArgs(1),
	Run:  runInline,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func init() {
	rootCmd.Flags().StringVar(&rootMime, "mime", "", "mime type of the root document (default from config)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the result to a file instead of stdout")
	rootCmd.Flags().IntVar(&parallel, "parallel", 0, "maximum concurrent downloads (0 = unbounded)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "per-request timeout")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", "", "User-Agent header for outgoing requests")
}

func runInline(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cmd.Flags().Changed("mime") {
		cfg.Inline.RootMime = rootMime
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Inline.MaxParallel = parallel
	}
	if cmd.Flags().Changed("timeout") {
		cfg.HTTP.Timeout = timeout
	}
	if cmd.Flags().Changed("user-agent") {
		cfg.HTTP.UserAgent = userAgent
	}

	inliner := &inline.Inliner{
		Fetcher: fetch.New(fetch.Options{
			UserAgent:    cfg.HTTP.UserAgent,
			Timeout:      cfg.HTTP.Timeout,
			MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
		}),
		MaxParallel: cfg.Inline.MaxParallel,
	}

	text, err := inliner.ResolveAndRender(context.Background(), args[0], cfg.Inline.RootMime)
	if err != nil {
		log.Fatalf("inlining failed: %v", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
			log.Fatalf("failed to write %s: %v", outputPath, err)
		}
		return
	}
	fmt.Print(text)
}
