package configstore

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
)

// GCSObject reads a configuration document from Cloud Storage
type GCSObject struct {
	client *storage.Client
	bucket string
	object string
}

// NewGCSObject creates a reader for gs://bucket/object
func NewGCSObject(client *storage.Client, bucket, object string) *GCSObject {
	return &GCSObject{client: client, bucket: bucket, object: object}
}

// ReadBlob downloads the object
func (g *GCSObject) ReadBlob(ctx context.Context) ([]byte, error) {
	r, err := g.client.Bucket(g.bucket).Object(g.object).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open config object",
			goerr.V("bucket", g.bucket),
			goerr.V("object", g.object))
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config object",
			goerr.V("bucket", g.bucket),
			goerr.V("object", g.object))
	}
	return data, nil
}

// Name returns the gs:// URI of the object
func (g *GCSObject) Name() string {
	return "gs://" + g.bucket + "/" + g.object
}
