package bestiary

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/bestiary/internal/store"
)

// FacetKind names one listing of distinct filter values.
type FacetKind string

const (
	FacetEnvironments      FacetKind = "environments"
	FacetSizes             FacetKind = "sizes"
	FacetTypes             FacetKind = "types"
	FacetChallengeRatings  FacetKind = "crs"
	FacetAlignments        FacetKind = "alignments"
	FacetSources           FacetKind = "sources"
	FacetUnofficialSources FacetKind = "unofficial-sources"
)

var facetReaders = map[FacetKind]func(*store.Store, context.Context) ([]string, error){
	FacetEnvironments:      (*store.Store).Environments,
	FacetSizes:             (*store.Store).Sizes,
	FacetTypes:             (*store.Store).Types,
	FacetChallengeRatings:  (*store.Store).ChallengeRatings,
	FacetAlignments:        (*store.Store).Alignments,
	FacetSources:           (*store.Store).OfficialSources,
	FacetUnofficialSources: (*store.Store).UnofficialSources,
}

// FacetKinds lists the supported facet kinds.
func FacetKinds() []FacetKind {
	return []FacetKind{
		FacetEnvironments,
		FacetSizes,
		FacetTypes,
		FacetChallengeRatings,
		FacetAlignments,
		FacetSources,
		FacetUnofficialSources,
	}
}

// ParseFacetKind validates a facet kind name.
func ParseFacetKind(name string) (FacetKind, error) {
	kind := FacetKind(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := facetReaders[kind]; !ok {
		return "", fmt.Errorf("unknown facet %q (want one of %s)", name, joinKinds(FacetKinds()))
	}
	return kind, nil
}

// Facets returns the distinct values of one facet.
func (s *Service) Facets(ctx context.Context, kind FacetKind) ([]string, error) {
	read, ok := facetReaders[kind]
	if !ok {
		return nil, fmt.Errorf("unknown facet %q", kind)
	}

	var values []string
	err := s.withStore(ctx, func(st *store.Store) error {
		var err error
		values, err = read(st, ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

func joinKinds(kinds []FacetKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
