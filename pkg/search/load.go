package search

import (
	"context"
	"log/slog"

	"github.com/sebastiantruijens/moviegrid/pkg/log"
	"github.com/sebastiantruijens/moviegrid/pkg/movie"
)

// CatalogSource fetches the unfiltered catalog.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) ([]movie.Record, error)
}

// Load runs the fetch requested by f and returns the completion event.
// A failed fetch is logged and reported as [CatalogFailed]; it is never
// retried.
func Load(ctx context.Context, src CatalogSource, f FetchCatalog) Event {
	movies, err := src.FetchCatalog(ctx)
	if err != nil {
		log.WithContext(ctx).ErrorContext(ctx, "fetch catalog",
			slog.Uint64("generation", f.Generation),
			slog.Any("err", err),
		)

		return CatalogFailed{Generation: f.Generation, Err: err}
	}

	log.WithContext(ctx).DebugContext(ctx, "fetched catalog",
		slog.Uint64("generation", f.Generation),
		slog.Int("movies", len(movies)),
	)

	return CatalogLoaded{Generation: f.Generation, Movies: movies}
}

// Dispatch applies ev and, if it starts a search, runs the fetch
// synchronously and applies its completion.
func Dispatch(ctx context.Context, src CatalogSource, s State, ev Event) State {
	s, fetch := s.Apply(ev)
	if fetch == nil {
		return s
	}

	s, _ = s.Apply(Load(ctx, src, *fetch))

	return s
}
