package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/ollama/pretokenize"
	"github.com/ollama/pretokenize/envconfig"
	"github.com/ollama/pretokenize/format"
	"github.com/ollama/pretokenize/logutil"
	"github.com/ollama/pretokenize/version"
)

func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		return string(data), err
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("stdin is a terminal; pipe in text or name a file")
	}

	data, err := io.ReadAll(os.Stdin)
	return string(data), err
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}

func SplitHandler(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	scanner, err := pretokenize.New(text)
	if err != nil {
		return err
	}

	if offsets, _ := cmd.Flags().GetBool("offsets"); offsets {
		var rows [][]string
		for span := range scanner.All() {
			rows = append(rows, []string{
				strconv.Itoa(span.Start),
				strconv.Itoa(span.End),
				strconv.Quote(text[span.Start:span.End]),
			})
		}

		table := newTable(cmd.OutOrStdout(), []string{"START", "END", "SPAN"})
		table.AppendBulk(rows)
		table.Render()
		return nil
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()
	for span := range scanner.All() {
		fmt.Fprintln(w, strconv.Quote(text[span.Start:span.End]))
	}

	return nil
}

func StatsHandler(cmd *cobra.Command, args []string) error {
	type fileStat struct {
		spans, runes, bytes int
	}

	stats := make([]fileStat, len(args))

	var g errgroup.Group
	g.SetLimit(envconfig.NumParallel)
	for i, path := range args {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			spans, err := pretokenize.Spans(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			slog.Debug("scanned", "path", path, "spans", len(spans))

			stats[i] = fileStat{
				spans: len(spans),
				runes: utf8.RuneCount(data),
				bytes: len(data),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	var total fileStat
	rows := make([][]string, 0, len(stats)+1)
	for i, st := range stats {
		total.spans += st.spans
		total.runes += st.runes
		total.bytes += st.bytes

		rows = append(rows, []string{
			args[i],
			format.HumanNumber(uint64(st.spans)),
			format.HumanNumber(uint64(st.runes)),
			format.HumanBytes(int64(st.bytes)),
		})
	}

	if len(stats) > 1 {
		rows = append(rows, []string{
			"total",
			format.HumanNumber(uint64(total.spans)),
			format.HumanNumber(uint64(total.runes)),
			format.HumanBytes(int64(total.bytes)),
		})
	}

	table := newTable(cmd.OutOrStdout(), []string{"FILE", "SPANS", "RUNES", "SIZE"})
	table.AppendBulk(rows)
	table.Render()
	return nil
}

func EnvHandler(cmd *cobra.Command, args []string) error {
	envs := envconfig.AsMap()

	var rows [][]string
	for _, name := range slices.Sorted(maps.Keys(envs)) {
		rows = append(rows, []string{
			envs[name].Name,
			fmt.Sprintf("%v", envs[name].Value),
			envs[name].Description,
		})
	}

	table := newTable(cmd.OutOrStdout(), []string{"NAME", "VALUE", "DESCRIPTION"})
	table.AppendBulk(rows)
	table.Render()
	return nil
}

func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "pretok",
		Short:         "Split text into the spans a byte pair encoding tokenizer merges within",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))
		},
	}

	splitCmd := &cobra.Command{
		Use:   "split [FILE]",
		Short: "Print each span of a file, or of stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  SplitHandler,
	}
	splitCmd.Flags().Bool("offsets", false, "Print byte offsets alongside each span")

	statsCmd := &cobra.Command{
		Use:   "stats FILE...",
		Short: "Summarize span counts across files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  StatsHandler,
	}

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Show environment variables and their current values",
		Args:  cobra.ExactArgs(0),
		RunE:  EnvHandler,
	}

	rootCmd.AddCommand(
		splitCmd,
		statsCmd,
		envCmd,
	)

	return rootCmd
}
