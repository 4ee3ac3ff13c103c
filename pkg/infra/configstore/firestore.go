package configstore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

// Firestore serves the configuration stored in a single Firestore document.
// Each Snapshot reads the document once, so administrators' updates apply to
// the next run without a reload.
type Firestore struct {
	client     *firestore.Client
	collection string
	document   string
}

// NewFirestore creates a Firestore source for collection/document
func NewFirestore(client *firestore.Client, collection, document string) *Firestore {
	return &Firestore{
		client:     client,
		collection: collection,
		document:   document,
	}
}

func (f *Firestore) doc() *firestore.DocumentRef {
	return f.client.Collection(f.collection).Doc(f.document)
}

// Snapshot reads the document. A missing document is an empty, unconfigured
// configuration rather than an error.
func (f *Firestore) Snapshot(ctx context.Context) (*model.FilterConfig, error) {
	snap, err := f.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &model.FilterConfig{}, nil
		}
		return nil, goerr.Wrap(err, "failed to get config document",
			goerr.V("collection", f.collection),
			goerr.V("document", f.document))
	}

	var cfg model.FilterConfig
	if err := snap.DataTo(&cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to decode config document",
			goerr.V("collection", f.collection),
			goerr.V("document", f.document))
	}
	return &cfg, nil
}

// Put overwrites the document with cfg
func (f *Firestore) Put(ctx context.Context, cfg *model.FilterConfig) error {
	if _, err := f.doc().Set(ctx, cfg); err != nil {
		return goerr.Wrap(err, "failed to put config document",
			goerr.V("collection", f.collection),
			goerr.V("document", f.document))
	}
	return nil
}
