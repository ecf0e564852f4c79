// Package recommend implements the recommendation view for a single movie
// as a state machine. The movie is identified by its navigation path.
package recommend

import (
	"context"
	"log/slog"

	"github.com/sebastiantruijens/moviegrid/pkg/api"
	"github.com/sebastiantruijens/moviegrid/pkg/log"
	"github.com/sebastiantruijens/moviegrid/pkg/movie"
)

// Phase is the lifecycle position of the recommendation view.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseRendered
	PhaseEmpty
	PhaseError
)

// User-facing messages.
const (
	MessageLoading = "Loading recommendations..."
	MessageEmpty   = "No recommendations found."
	MessageError   = "Failed to load recommendations."
)

// Source fetches recommendations.
type Source interface {
	FetchRecommendations(ctx context.Context, title string) (*api.Recommendations, error)
}

// State is the recommendation view's state.
type State struct {
	Err error
	// Title is the movie recommendations are shown for. Empty when the
	// navigation path could not be decoded.
	Title  string
	Movies []movie.Record
	// Notice is the backend's explanation when it returned no
	// recommendations.
	Notice string
	Phase  Phase
}

// Loaded completes a recommendation request.
type Loaded struct {
	Err    error
	Result *api.Recommendations
	Title  string
}

// Open starts the view for the movie at the given navigation path. The
// returned title is empty when the path does not name a movie, in which
// case the state is already in [PhaseError] and nothing must be fetched.
func Open(path string) (State, string) {
	title, err := movie.TitleFromPath(path)
	if err != nil {
		return State{Phase: PhaseError, Err: err}, ""
	}

	return State{Phase: PhaseLoading, Title: title}, title
}

// Apply applies a completion to s. Completions for another title are
// ignored.
func (s State) Apply(l Loaded) State {
	if l.Title != s.Title || s.Phase != PhaseLoading {
		return s
	}

	switch {
	case l.Err != nil:
		s.Phase = PhaseError
		s.Err = l.Err

	case l.Result == nil:
		s.Phase = PhaseEmpty

	case l.Result.Error != "":
		s.Phase = PhaseEmpty
		s.Notice = l.Result.Error

	case len(l.Result.Movies) == 0:
		s.Phase = PhaseEmpty

	default:
		s.Phase = PhaseRendered
		s.Movies = l.Result.Movies
	}

	return s
}

// Message returns the text shown instead of recommendations, if any.
func (s State) Message() string {
	switch s.Phase {
	case PhaseLoading:
		return MessageLoading
	case PhaseEmpty:
		if s.Notice != "" {
			return s.Notice
		}

		return MessageEmpty
	case PhaseError:
		return MessageError
	}

	return ""
}

// Load fetches the recommendations for title and returns the completion.
func Load(ctx context.Context, src Source, title string) Loaded {
	result, err := src.FetchRecommendations(ctx, title)
	if err != nil {
		log.WithContext(ctx).ErrorContext(ctx, "fetch recommendations",
			slog.String("title", title),
			slog.Any("err", err),
		)
	}

	return Loaded{Title: title, Result: result, Err: err}
}
