package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	quoteapp "github.com/osvaldoandrade/shellcommander/internal/app/quote"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
	"github.com/osvaldoandrade/shellcommander/internal/platform"
)

func newQuoteCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Add and get quotes",
		RunE:  runHelp,
	}
	cmd.AddCommand(
		newQuoteAddCmd(opts),
		newQuoteGetCmd(opts),
		newQuoteRandomCmd(opts),
		newQuoteDailyCmd(opts),
	)
	return cmd
}

// withQuotes opens the database for the duration of fn.
func withQuotes(opts *RootOptions, fn func(*quoteapp.Service) error) error {
	store, err := opts.openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()
	return fn(quoteapp.NewService(store, platform.RealClock{}))
}

func newQuoteAddCmd(opts *RootOptions) *cobra.Command {
	var text string
	var author string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a quote (prompts when --quote and --author are omitted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if text == "" && author == "" {
				var err error
				text, author, err = promptQuote(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}
			return withQuotes(opts, func(service *quoteapp.Service) error {
				q, err := service.Add(cmd.Context(), text, author)
				if err != nil {
					return err
				}
				return writeQuotes(cmd, []domain.Quote{q}, opts.JSONOutput)
			})
		},
	}
	cmd.Flags().StringVarP(&text, "quote", "q", "", "Quote text")
	cmd.Flags().StringVarP(&author, "author", "a", "", "Quote author")
	return cmd
}

func newQuoteGetCmd(opts *RootOptions) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one quote by id, or all quotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withQuotes(opts, func(service *quoteapp.Service) error {
				if cmd.Flags().Changed("id") {
					q, err := service.Get(cmd.Context(), id)
					if err != nil {
						return err
					}
					return writeQuotes(cmd, []domain.Quote{q}, opts.JSONOutput)
				}
				quotes, err := service.All(cmd.Context())
				if err != nil {
					return err
				}
				return writeQuotes(cmd, quotes, opts.JSONOutput)
			})
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "Quote id")
	return cmd
}

func newQuoteRandomCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Show a random quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withQuotes(opts, func(service *quoteapp.Service) error {
				q, err := service.Random(cmd.Context())
				if err != nil {
					return err
				}
				return writeQuotes(cmd, []domain.Quote{q}, opts.JSONOutput)
			})
		},
	}
}

func newQuoteDailyCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Show today's quote, picking one if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withQuotes(opts, func(service *quoteapp.Service) error {
				q, err := service.Daily(cmd.Context())
				if err != nil {
					return err
				}
				return writeQuotes(cmd, []domain.Quote{q}, opts.JSONOutput)
			})
		},
	}
}

func promptQuote(in io.Reader, prompt io.Writer) (string, string, error) {
	reader := bufio.NewReader(in)
	text, err := promptLine(reader, prompt, "Enter the quote: ")
	if err != nil {
		return "", "", err
	}
	author, err := promptLine(reader, prompt, "Enter the author: ")
	if err != nil {
		return "", "", err
	}
	return text, author, nil
}

func promptLine(reader *bufio.Reader, prompt io.Writer, label string) (string, error) {
	fmt.Fprint(prompt, label)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func writeQuotes(cmd *cobra.Command, quotes []domain.Quote, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		type quoteOutput struct {
			ID     int64  `json:"id"`
			Quote  string `json:"quote"`
			Author string `json:"author"`
		}
		items := make([]quoteOutput, 0, len(quotes))
		for _, q := range quotes {
			items = append(items, quoteOutput{ID: q.ID, Quote: q.Quote, Author: q.Author})
		}
		return writeJSON(out, items)
	}
	ui := newRenderer(out, false)
	for i, q := range quotes {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if len(quotes) > 1 {
			fmt.Fprintln(out, ui.dim(fmt.Sprintf("#%d", q.ID)))
		}
		if _, err := fmt.Fprintln(out, quoteapp.Format(q)); err != nil {
			return err
		}
	}
	return nil
}
