// Command dupfinder reports repeated words in a text file or stdin.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bytedance/sonic"
	"github.com/cours-de-latin/dupfinder"
	"github.com/cours-de-latin/dupfinder/internal/api"
	"github.com/cours-de-latin/dupfinder/internal/config"
	"github.com/cours-de-latin/dupfinder/internal/setup"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout io.Writer) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to dupfinder.toml"},
		&cli.StringFlag{Name: "dict", Usage: "lexicon path (selects the dict backend)"},
		&cli.StringFlag{Name: "remote", Usage: "analyzer service URL (selects the remote backend)"},
		&cli.StringFlag{Name: "log-level", Usage: "log level (overrides log.level)"},
	}

	return &cli.Command{
		Name:  "dupfinder",
		Usage: "Find repeated words and repeated lemmas in a text",
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "List duplicated words",
				ArgsUsage: "[FILE|-]",
				Description: `Reads the text from FILE, or stdin when FILE is "-" or missing.

Each duplicate is printed on its own line, marked:
  * repeated verbatim (strict duplicate)
  ~ shares a lemma with another word (lemma duplicate)

Returns exit code 1 on error.`,
				Flags: append(flags, &cli.BoolFlag{Name: "json", Usage: "print the report as JSON"}),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					report, err := analyze(ctx, cmd, stdin)
					if err != nil {
						return err
					}
					if cmd.Bool("json") {
						return writeJSON(stdout, api.ToResponse(report))
					}
					return printReport(stdout, report)
				},
			},
			{
				Name:      "words",
				Usage:     "List the distinct words of the text in sorted order",
				ArgsUsage: "[FILE|-]",
				Flags:     flags,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					report, err := analyze(ctx, cmd, stdin)
					if err != nil {
						return err
					}
					for _, w := range report.Words {
						if _, err := fmt.Fprintln(stdout, w); err != nil {
							return err
						}
					}
					return nil
				},
			},
		},
	}
}

// analyze builds the finder from configuration and flags and runs it on the
// text named by the first argument.
func analyze(ctx context.Context, cmd *cli.Command, stdin io.Reader) (*dupfinder.Report, error) {
	text, err := readInput(cmd.Args().First(), stdin)
	if err != nil {
		return nil, err
	}

	cfg, _, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if p := cmd.String("dict"); p != "" {
		cfg.Analyzer.Backend = config.BackendDict
		cfg.Analyzer.DictPath = p
	}
	if u := cmd.String("remote"); u != "" {
		cfg.Analyzer.Backend = config.BackendRemote
		cfg.Analyzer.RemoteURL = u
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}

	app, err := setup.InitializeApp(cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = app.Logger.Sync() }()

	ctx, cancel := context.WithTimeout(ctx, cfg.Analyzer.Timeout())
	defer cancel()

	report, err := app.Finder.Find(ctx, text)
	if errors.Is(err, dupfinder.ErrEmptyInput) {
		return nil, errors.New("no text given or the text is blank")
	}
	return report, err
}

func readInput(name string, stdin io.Reader) (string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

func printReport(w io.Writer, r *dupfinder.Report) error {
	for _, it := range r.Items {
		mark := " "
		switch {
		case it.Strict && it.Lemma:
			mark = "*~"
		case it.Strict:
			mark = "* "
		case it.Lemma:
			mark = " ~"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", mark, it.Word); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nstrict duplicates: %d\nlemma duplicates: %d\n", r.StrictCount, r.LemmaCount)
	return err
}

func writeJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
