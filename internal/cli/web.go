package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	searchapp "github.com/osvaldoandrade/shellcommander/internal/app/search"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
	"github.com/osvaldoandrade/shellcommander/internal/infra/browser"
	"github.com/osvaldoandrade/shellcommander/internal/infra/ident"
	"github.com/osvaldoandrade/shellcommander/internal/infra/searchapi"
	"github.com/osvaldoandrade/shellcommander/internal/platform"
)

func newWebCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Search the web and browse the search history",
		RunE:  runHelp,
	}
	cmd.AddCommand(newWebSearchCmd(opts), newWebHistoryCmd(opts))
	return cmd
}

func withSearch(opts *RootOptions, fn func(*searchapp.Service) error) error {
	store, err := opts.openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()
	service := searchapp.NewService(
		store,
		searchapi.New(),
		browser.New(),
		ident.NewULIDGenerator(),
		platform.RealClock{},
		searchapp.Config{
			APIKey:   opts.env.GoogleSearchAPIKey,
			EngineID: opts.env.GoogleSearchEngineID,
		},
	)
	return fn(service)
}

func newWebSearchCmd(opts *RootOptions) *cobra.Command {
	var req searchapp.Request
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Open a Google search, or fetch results as JSON with --json",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Query = strings.Join(args, " ")
			req.Fetch = opts.JSONOutput
			return withSearch(opts, func(service *searchapp.Service) error {
				var outcome searchapp.Outcome
				spin := req.Fetch && spinnerEnabled(cmd.ErrOrStderr(), false)
				label := newRenderer(cmd.ErrOrStderr(), false).dim("Searching")
				err := withSpinner(cmd.Context(), cmd.ErrOrStderr(), spin, label, func() error {
					var err error
					outcome, err = service.Search(cmd.Context(), req)
					return err
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if opts.JSONOutput {
					results := outcome.Results
					if results == nil {
						results = []searchapp.Result{}
					}
					return writeJSON(out, struct {
						Query   string             `json:"query"`
						URL     string             `json:"url"`
						Results []searchapp.Result `json:"results"`
					}{Query: outcome.Entry.QueryString(), URL: outcome.URL, Results: results})
				}
				ui := newRenderer(out, false)
				return writeKV(out, ui, "Opened", outcome.URL)
			})
		},
	}
	cmd.Flags().StringVar(&req.Site, "site", "", "Restrict results to a site")
	cmd.Flags().StringVar(&req.AllInText, "allintext", "", "Require text in the page body")
	return cmd
}

func newWebHistoryCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and clear the search history",
		RunE:  runHelp,
	}
	cmd.AddCommand(
		newWebHistoryListCmd(opts),
		newWebHistoryClearCmd(opts),
		newWebHistorySearchCmd(opts),
	)
	return cmd
}

type historyFlags struct {
	from      string
	to        string
	query     string
	site      string
	allInText string
}

func (f historyFlags) filter() (searchapp.Filter, error) {
	from, err := searchapp.ParseBound(f.from, false)
	if err != nil {
		return searchapp.Filter{}, err
	}
	to, err := searchapp.ParseBound(f.to, true)
	if err != nil {
		return searchapp.Filter{}, err
	}
	return searchapp.Filter{
		From:      from,
		To:        to,
		Query:     strings.TrimSpace(f.query),
		Site:      strings.TrimSpace(f.site),
		AllInText: strings.TrimSpace(f.allInText),
	}, nil
}

func bindRange(cmd *cobra.Command, flags *historyFlags) {
	cmd.Flags().StringVar(&flags.from, "from", "", "Start date (YYYY-MM-DD [HH:MM:SS])")
	cmd.Flags().StringVar(&flags.to, "to", "", "End date (YYYY-MM-DD [HH:MM:SS]); a bare date covers the whole day")
}

func newWebHistoryListCmd(opts *RootOptions) *cobra.Command {
	var flags historyFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List searches, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryQuery(cmd, opts, flags)
		},
	}
	bindRange(cmd, &flags)
	return cmd
}

func newWebHistorySearchCmd(opts *RootOptions) *cobra.Command {
	var flags historyFlags
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find searches by query, site or page text prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryQuery(cmd, opts, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "Query prefix")
	cmd.Flags().StringVarP(&flags.site, "site", "s", "", "Site prefix")
	cmd.Flags().StringVarP(&flags.allInText, "allintext", "a", "", "Page text prefix")
	return cmd
}

func newWebHistoryClearCmd(opts *RootOptions) *cobra.Command {
	var flags historyFlags
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete searches in a date range (everything by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			return withSearch(opts, func(service *searchapp.Service) error {
				n, err := service.Clear(cmd.Context(), filter)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if opts.JSONOutput {
					return writeJSON(out, map[string]int64{"deleted": n})
				}
				return writeKV(out, newRenderer(out, false), "Deleted", fmt.Sprintf("%d", n))
			})
		},
	}
	bindRange(cmd, &flags)
	cmd.Flags().StringVar(&flags.site, "site", "", "Only delete searches for this site prefix")
	return cmd
}

func runHistoryQuery(cmd *cobra.Command, opts *RootOptions, flags historyFlags) error {
	filter, err := flags.filter()
	if err != nil {
		return err
	}
	return withSearch(opts, func(service *searchapp.Service) error {
		entries, err := service.History(cmd.Context(), filter)
		if err != nil {
			return err
		}
		return writeHistory(cmd, entries, opts.JSONOutput)
	})
}

func writeHistory(cmd *cobra.Command, entries []domain.SearchEntry, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		type entryOutput struct {
			ID        string `json:"id"`
			Query     string `json:"query"`
			Website   string `json:"website,omitempty"`
			AllInText string `json:"allintext,omitempty"`
			Timestamp string `json:"time_stamp"`
		}
		items := make([]entryOutput, 0, len(entries))
		for _, e := range entries {
			items = append(items, entryOutput{
				ID:        e.ID,
				Query:     e.Query,
				Website:   e.Website,
				AllInText: e.AllInText,
				Timestamp: e.Timestamp.Format(timeLayout),
			})
		}
		return writeJSON(out, items)
	}
	ui := newRenderer(out, false)
	now := platform.RealClock{}.Now()
	for _, e := range entries {
		if _, err := fmt.Fprintf(out, "%s  %s\n", ui.key(e.QueryString()), ui.when(e.Timestamp, now)); err != nil {
			return err
		}
	}
	return nil
}
