package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sebastiantruijens/moviegrid/pkg/movie"
	"github.com/sebastiantruijens/moviegrid/pkg/paginate"
	"github.com/sebastiantruijens/moviegrid/pkg/recommend"
	"github.com/sebastiantruijens/moviegrid/pkg/search"
)

var ErrPageOutOfRange = errors.New("page out of range")

type SearchArgs struct {
	*RootArgs

	Inputs movie.Inputs
	Page   int
}

func NewSearchArgs(rootArgs *RootArgs) *SearchArgs {
	return &SearchArgs{
		RootArgs: rootArgs,
	}
}

func (sa *SearchArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sa.Inputs.Query, "query", "q", "", "Only movies whose title contains this text")
	cmd.Flags().StringVar(&sa.Inputs.Rating, "min-rating", "", "Only movies rated at least this")
	cmd.Flags().StringVar(&sa.Inputs.Genre, "genre", "", "Only movies whose genre contains this text")
	cmd.Flags().StringVar(&sa.Inputs.Year, "year", "", "Only movies whose year starts with this prefix")
	cmd.Flags().StringVar(&sa.Inputs.Votes, "min-votes", "", "Only movies with at least this many votes")
	cmd.Flags().IntVar(&sa.Page, "page", 1, "Result page to print")
}

func NewSearchCmd(sa *SearchArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Print one page of the filtered catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := sa.loadConfig()
			if err != nil {
				return err
			}

			client, _, err := newClient(cfg)
			if err != nil {
				return err
			}

			s := search.Dispatch(cmd.Context(), client, search.New(sa.Inputs), search.SearchRequested{})

			if s.Phase == search.PhaseRendered && sa.Page != s.Page {
				if sa.Page < 1 || sa.Page > s.TotalPages() {
					return fmt.Errorf("%w: %d, results have %d pages", ErrPageOutOfRange, sa.Page, s.TotalPages())
				}

				s, _ = s.Apply(search.PageSelected{Page: sa.Page})
			}

			return printResults(cmd.OutOrStdout(), s)
		},
	}

	sa.AddFlags(cmd)

	return cmd
}

func NewRecommendCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend TITLE",
		Short: "Print the recommendations for a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ra.loadConfig()
			if err != nil {
				return err
			}

			client, _, err := newClient(cfg)
			if err != nil {
				return err
			}

			return printRecommendations(cmd.Context(), cmd.OutOrStdout(), client, args[0])
		},
	}
}

// printResults prints the current page of s as a table followed by the
// pagination bar. A failed search is returned as an error.
func printResults(w io.Writer, s search.State) error {
	switch s.Phase {
	case search.PhaseError:
		return fmt.Errorf("%s: %w", s.Message(), s.Err)

	case search.PhaseRendered:

	default:
		return writeOutput(w, s.Message()+"\n")
	}

	visible := s.Visible()
	first := (s.Page-1)*paginate.PageSize + 1

	var sb strings.Builder
	sb.WriteString(movieTable(visible))
	fmt.Fprintf(&sb, "\nShowing %d-%d of %d movies\n", first, first+len(visible)-1, len(s.Results))

	if controls := s.Controls(); len(controls) > 0 {
		sb.WriteString(paginationLine(controls))
		sb.WriteString("\n")
	}

	return writeOutput(w, sb.String())
}

func printRecommendations(ctx context.Context, w io.Writer, src recommend.Source, title string) error {
	st, title := recommend.Open(movie.Link(title))
	if title == "" {
		return fmt.Errorf("%s: %w", st.Message(), st.Err)
	}

	st = st.Apply(recommend.Load(ctx, src, title))

	switch st.Phase {
	case recommend.PhaseError:
		return fmt.Errorf("%s: %w", st.Message(), st.Err)

	case recommend.PhaseRendered:
		return writeOutput(w, movieTable(st.Movies)+"\n")

	default:
		return writeOutput(w, st.Message()+"\n")
	}
}

func writeOutput(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

func movieTable(records []movie.Record) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Title", "Rating", "Year", "Genre", "Votes")

	for i := range records {
		r := &records[i]
		t.Row(r.Title, orNA(r.Rating), orNA(r.Year), orNA(r.Genre), orNA(r.Votes))
	}

	return t.String()
}

// paginationLine renders controls on one line with the current page in
// brackets.
func paginationLine(controls []paginate.Control) string {
	parts := make([]string, 0, len(controls))

	for _, c := range controls {
		if c.Active {
			parts = append(parts, "["+c.Label()+"]")
			continue
		}

		parts = append(parts, c.Label())
	}

	return strings.Join(parts, " ")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}

	return s
}
