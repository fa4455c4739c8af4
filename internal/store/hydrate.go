package store

import (
	"context"

	"github.com/openmediawatch/backend/pkg/common"
	"github.com/openmediawatch/backend/pkg/logger"
	"github.com/openmediawatch/backend/pkg/network"

	"golang.org/x/sync/errgroup"
)

// Hydrate replays the persisted sources and citations into a fresh network.
// The two lists are fetched concurrently; sources are applied first so
// citations see the registered bias labels.
func (s *CitationStorage) Hydrate(ctx context.Context, net *network.Network) error {
	var (
		sources   []SourceRecord
		citations []common.Citation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sources, err = s.ListSources(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		citations, err = s.ListCitations(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for _, rec := range sources {
		net.AddSource(rec.Name, rec.URL, rec.Bias)
	}
	for _, c := range citations {
		if _, err := net.AddCitation(c); err != nil {
			logger.Warn("[Store] Skipping invalid persisted citation", "id", c.ID, "err", err)
		}
	}

	logger.Info("[Store] Network loaded", "sources", net.TotalSources(), "citations", net.TotalCitations())
	return nil
}
