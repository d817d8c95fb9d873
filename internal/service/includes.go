package service

import (
	"context"
	"fmt"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/jsonapi"
	"golang.org/x/sync/errgroup"
)

// includeLoader fetches the related resources of one relationship.
type includeLoader func(ctx context.Context) ([]jsonapi.Resource, error)

// loadIncludes runs the loaders for every requested relationship
// concurrently. The first failure cancels the rest and fails the request, so
// a document is never assembled from a partial fan-out. Unknown include
// names are ignored.
func loadIncludes(
	ctx context.Context,
	requested []string,
	loaders map[string]includeLoader,
) (map[string][]jsonapi.Resource, error) {
	names := make([]string, 0, len(requested))
	for _, name := range requested {
		if _, ok := loaders[name]; ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, nil
	}

	results := make([][]jsonapi.Resource, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		load := loaders[name]
		g.Go(func() error {
			related, err := load(gctx)
			if err != nil {
				return fmt.Errorf("include %s: %w", name, err)
			}
			results[i] = related
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string][]jsonapi.Resource, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	return out, nil
}

// attachIncludes links each loaded relationship on primary and returns the
// included section in request order.
func attachIncludes(primary *jsonapi.Resource, requested []string, loaded map[string][]jsonapi.Resource) []jsonapi.Resource {
	var included []jsonapi.Resource
	for _, name := range requested {
		related, ok := loaded[name]
		if !ok {
			continue
		}
		if primary.Relationships == nil {
			primary.Relationships = map[string]jsonapi.Relationship{}
		}
		ids := make([]jsonapi.Identifier, 0, len(related))
		for _, r := range related {
			ids = append(ids, r.Identifier())
		}
		if rel, exists := primary.Relationships[name]; exists && isToOne(rel) && len(ids) == 1 {
			rel.Meta.Included = true
			primary.Relationships[name] = rel
		} else {
			primary.Relationships[name] = jsonapi.ToMany(ids)
		}
		included = append(included, related...)
	}
	return included
}

func isToOne(rel jsonapi.Relationship) bool {
	_, ok := rel.Data.(*jsonapi.Identifier)
	return ok
}

// invalidID turns an id decoding failure into a 400-class request error.
func invalidID(err error) error {
	return domain.NewRequestError(domain.ErrInvalidID, "id", err.Error())
}
