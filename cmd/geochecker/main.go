// Command geochecker audits a single page for AI readiness: how well a
// generative engine can fetch, understand and trust it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/K-Bak/geo-checker/models"
	"github.com/K-Bak/geo-checker/pkg/audit"
	"github.com/K-Bak/geo-checker/pkg/caching"
	"github.com/K-Bak/geo-checker/pkg/db"
	"github.com/K-Bak/geo-checker/pkg/entities"
	"github.com/K-Bak/geo-checker/pkg/fetcher"
	"github.com/K-Bak/geo-checker/pkg/patterns"
	"github.com/K-Bak/geo-checker/pkg/report"
)

func main() {
	// Optional; a missing .env is not an error.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "geochecker",
		Usage: "audit a page for AI readiness (GEO)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "page URL to audit"},
			&cli.StringFlag{Name: "paste", Usage: "file with pasted HTML or text (use - for stdin)"},
			&cli.StringFlag{Name: "patterns", Usage: "YAML pattern table overriding the Danish defaults"},
			&cli.StringFlag{Name: "format", Value: "markdown", Usage: "output format: markdown or json"},
			&cli.StringFlag{Name: "db", EnvVars: []string{"GEOCHECKER_DB"}, Usage: "audit history database path (empty disables history)"},
			&cli.StringFlag{Name: "cache-dir", EnvVars: []string{"GEOCHECKER_CACHE_DIR"}, Usage: "fetch cache directory (empty disables caching)"},
			&cli.DurationFlag{Name: "max-age", Value: 30 * time.Minute, Usage: "fetch cache TTL"},
			&cli.DurationFlag{Name: "timeout", Value: fetcher.DefaultTimeout, Usage: "per-request timeout"},
			&cli.BoolFlag{Name: "no-trust-pages", Usage: "skip the contact/about/privacy crawl"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "suppress progress logging"},
		},
		Action: runAudit,
		Commands: []*cli.Command{
			{
				Name:  "history",
				Usage: "list stored audits",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", EnvVars: []string{"GEOCHECKER_DB"}, Value: db.DefaultDBName},
					&cli.StringFlag{Name: "url", Usage: "only runs against this URL"},
					&cli.IntFlag{Name: "limit", Value: 20},
				},
				Action: runHistory,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runAudit(c *cli.Context) error {
	logger := newLogger(c.Bool("quiet"))

	var cache caching.Store
	if dir := c.String("cache-dir"); dir != "" {
		files, err := caching.NewFiles(dir, c.Duration("max-age"))
		if err != nil {
			return fmt.Errorf("failed to set up cache: %w", err)
		}
		cache = files
	}

	analyzer := audit.New(fetcher.New(cache, c.Duration("timeout")), logger)
	analyzer.Recognizer = entities.HeuristicRecognizer{}
	analyzer.SkipTrustPages = c.Bool("no-trust-pages")

	if path := c.String("patterns"); path != "" {
		table, err := patterns.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load pattern table: %w", err)
		}
		analyzer.Patterns = table
	}

	rep, requested, err := analyze(c, analyzer)
	if err != nil {
		return err
	}

	if dbPath := c.String("db"); dbPath != "" && requested != "" {
		history, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer history.Close()
		if _, err := history.InsertAudit(requested, rep); err != nil {
			return fmt.Errorf("failed to store audit: %w", err)
		}
	}

	switch c.String("format") {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "markdown":
		fmt.Print(report.Markdown(rep))
		return nil
	default:
		return fmt.Errorf("unknown format %q", c.String("format"))
	}
}

// analyze dispatches between the URL and paste modes. requested is the
// user-supplied URL, empty for pasted content.
func analyze(c *cli.Context, analyzer *audit.Analyzer) (*models.Report, string, error) {
	url := c.String("url")
	if url == "" && c.Args().Len() > 0 {
		url = c.Args().First()
	}

	switch {
	case url != "":
		ctx, cancel := context.WithTimeout(context.Background(), 4*c.Duration("timeout"))
		defer cancel()
		rep, err := analyzer.AnalyzeURL(ctx, url)
		return rep, url, err

	case c.String("paste") != "":
		blob, err := readPaste(c.String("paste"))
		if err != nil {
			return nil, "", err
		}
		rep, err := analyzer.AnalyzePasted(blob)
		return rep, "", err

	default:
		return nil, "", fmt.Errorf("either --url or --paste is required")
	}
}

func readPaste(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read paste file: %w", err)
	}
	return string(data), nil
}

func runHistory(c *cli.Context) error {
	history, err := db.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer history.Close()

	rows, err := history.ListAudits(c.String("url"), c.Int("limit"))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("no audits stored")
		return nil
	}
	for _, r := range rows {
		fmt.Printf("%-5d %-19s %-5.1f %-18s %s\n",
			r.AuditID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.OverallScore, r.PageType, r.URL)
	}
	return nil
}
