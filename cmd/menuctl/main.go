package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/quickmenu/mcp-server/internal/catalog"
	"github.com/quickmenu/mcp-server/internal/config"
	"github.com/quickmenu/mcp-server/tools"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "menuctl",
		Usage:  "Inspect and query a menu taxonomy from the command line",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config (defaults to $" + config.EnvVar + ")",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Fuzzy search menu leaves",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results (0 uses the configured default)",
					},
				},
			},
			{
				Name:   "leaves",
				Usage:  "List every indexed leaf with its path",
				Action: leavesCommand,
			},
			{
				Name:      "validate",
				Usage:     "Validate a menu export against the schema",
				ArgsUsage: "FILE",
				Action:    validateCommand,
			},
			{
				Name:   "stats",
				Usage:  "Print index statistics",
				Action: statsCommand,
			},
		},
	}
}

// loadService builds the index from the config named by --config
func loadService(c *cli.Context) (*tools.Service, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return tools.NewService(cfg, tools.NewEmbeddedDataProvider(), logger)
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("search requires a QUERY argument")
	}

	svc, err := loadService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	top := c.Int("top")
	if top < 0 {
		return fmt.Errorf("--top must not be negative, got %d", top)
	}
	results, err := svc.Engine().Search(query, svc.Config().ClampTopK(top))
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(c.App.Writer, "No matches for %q\n", query)
		for _, s := range svc.Engine().Suggest(query, 3) {
			fmt.Fprintf(c.App.Writer, "  did you mean: %s (%s)\n", s.Title, s.ID)
		}
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(c.App.Writer, "%.3f  %-12s %s\n", r.Relevance, r.ID, r.Path)
	}
	return nil
}

func leavesCommand(c *cli.Context) error {
	svc, err := loadService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	for _, leaf := range svc.Engine().Leaves() {
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", leaf.ID, leaf.Path)
	}
	return nil
}

func validateCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return errors.New("validate requires a FILE argument")
	}

	nodes, err := catalog.LoadMenuFile(path)
	if err != nil {
		var validationErr *catalog.ValidationError
		if errors.As(err, &validationErr) {
			for _, issue := range validationErr.Issues {
				fmt.Fprintf(c.App.Writer, "✗ %s: %s\n", issue.Path, issue.Message)
			}
			return fmt.Errorf("%s: %d schema violation(s)", path, len(validationErr.Issues))
		}
		return err
	}

	fmt.Fprintf(c.App.Writer, "✓ %s: %d nodes\n", path, len(nodes))
	return nil
}

func statsCommand(c *cli.Context) error {
	svc, err := loadService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	stats := svc.Engine().Stats()
	fmt.Fprintf(c.App.Writer, "nodes:         %d\n", stats.Nodes)
	fmt.Fprintf(c.App.Writer, "leaves:        %d\n", stats.Leaves)
	fmt.Fprintf(c.App.Writer, "truncated:     %d\n", stats.Truncated)
	fmt.Fprintf(c.App.Writer, "dangling:      %d\n", stats.Dangling)
	fmt.Fprintf(c.App.Writer, "abbreviations: %d\n", stats.Abbreviations)
	fmt.Fprintf(c.App.Writer, "max depth:     %d\n", stats.MaxDepth)
	fmt.Fprintf(c.App.Writer, "build time:    %v\n", stats.BuildTime)
	return nil
}
