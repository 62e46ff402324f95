package dockerconfig

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/go-logr/logr"
	"github.com/spf13/afero"

	"github.com/redhat-openshift-ecosystem/dockerctx/internal/log"
)

// ContextSummary is one row of a context listing.
type ContextSummary struct {
	// Name as recorded inside the context's own metadata.
	Name string `json:"name"`
	// Host of the docker endpoint, empty when the metadata has none.
	Host string `json:"host,omitempty"`
	// Hash is the content-addressed directory name for the context.
	Hash string `json:"hash"`
}

// Contexts enumerates every context recorded under the configuration
// root, sorted by name. Listing is best effort: entries without a
// readable, parsable meta.json are skipped rather than failing the
// whole listing, since one broken context should not hide the rest. A
// missing contexts directory yields an empty listing.
func (m *Metadata) Contexts(ctx context.Context) ([]ContextSummary, error) {
	logger := logr.FromContextOrDiscard(ctx)

	metaRoot := contextMetaRoot(m.root)
	entries, err := afero.ReadDir(m.fs, metaRoot)
	if err != nil {
		logger.V(log.DBG).Info("no context metadata directory", "path", metaRoot)
		return []ContextSummary{}, nil
	}

	summaries := make([]ContextSummary, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		hash := entry.Name()
		raw, err := afero.ReadFile(m.fs, contextMetaPath(m.root, hash))
		if err != nil {
			logger.V(log.DBG).Info("skipping context without metadata", "hash", hash)
			continue
		}

		var meta metaFile
		if err := json.Unmarshal(raw, &meta); err != nil {
			logger.V(log.DBG).Info("skipping context with unparsable metadata", "hash", hash)
			continue
		}

		summary := ContextSummary{
			Name: meta.Name,
			Hash: hash,
		}
		if endpoint, ok := meta.Endpoints[dockerEndpointName]; ok {
			summary.Host = endpoint.Host
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries, nil
}
