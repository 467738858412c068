package blob

import (
	"context"
	"os"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/define/internal/core/ports"
	"go.trai.ch/zerr"
)

const NodeID graft.ID = "adapter.blob_cache"

func init() {
	graft.Register(graft.Node[ports.BlobCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.BlobCache, error) {
			cacheDir, err := os.UserCacheDir()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to determine user cache directory")
			}
			return NewStore(filepath.Join(cacheDir, "define")), nil
		},
	})
}
