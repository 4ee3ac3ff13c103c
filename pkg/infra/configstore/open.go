package configstore

import (
	"context"
	"net/url"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"

	"github.com/koren-henrik/dxrelay/pkg/domain/interfaces"
	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

// Reloader is implemented by sources that cache a parsed document
type Reloader interface {
	Reload(ctx context.Context) error
}

// GCPOptions configures the Google Cloud clients used by remote sources
type GCPOptions struct {
	ProjectID       string
	CredentialsFile string
}

func (o GCPOptions) clientOptions() []option.ClientOption {
	var opts []option.ClientOption
	if o.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	}
	return opts
}

// Location is a parsed configuration source URI
type Location struct {
	Scheme string // "file", "gs" or "firestore"
	Host   string // bucket or collection
	Path   string // local path, object name or document id
}

// ParseLocation parses a source URI: a local path, gs://bucket/object or
// firestore://collection/document
func ParseLocation(raw string) (*Location, error) {
	if !strings.Contains(raw, "://") {
		if raw == "" {
			return nil, goerr.New("empty config location")
		}
		return &Location{Scheme: "file", Path: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid config location", goerr.V("location", raw))
	}

	loc := &Location{Scheme: u.Scheme, Host: u.Host, Path: strings.TrimPrefix(u.Path, "/")}
	switch loc.Scheme {
	case "file":
		loc.Path = u.Host + u.Path
	case "gs", "firestore":
		if loc.Host == "" || loc.Path == "" {
			return nil, goerr.New("config location must be <scheme>://<bucket|collection>/<object|document>",
				goerr.V("location", raw))
		}
		if loc.Scheme == "firestore" && strings.Contains(loc.Path, "/") {
			return nil, goerr.New("firestore config location must name a top level document",
				goerr.V("location", raw))
		}
	default:
		return nil, goerr.New("unsupported config location scheme", goerr.V("location", raw))
	}
	return loc, nil
}

// Open creates the ConfigSource for raw. The returned close function
// releases remote clients and is never nil.
func Open(ctx context.Context, raw string, gcp GCPOptions) (interfaces.ConfigSource, func() error, error) {
	nop := func() error { return nil }

	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, nop, err
	}

	switch loc.Scheme {
	case "gs":
		client, err := storage.NewClient(ctx, gcp.clientOptions()...)
		if err != nil {
			return nil, nop, goerr.Wrap(err, "failed to create storage client")
		}
		src, err := NewFile(ctx, NewGCSObject(client, loc.Host, loc.Path))
		if err != nil {
			_ = client.Close()
			return nil, nop, err
		}
		return src, client.Close, nil

	case "firestore":
		if gcp.ProjectID == "" {
			return nil, nop, goerr.New("GCP project ID is required for firestore config", goerr.V("location", raw))
		}
		client, err := firestore.NewClient(ctx, gcp.ProjectID, gcp.clientOptions()...)
		if err != nil {
			return nil, nop, goerr.Wrap(err, "failed to create firestore client")
		}
		return NewFirestore(client, loc.Host, loc.Path), client.Close, nil

	default:
		src, err := NewFile(ctx, &LocalFile{Path: loc.Path})
		if err != nil {
			return nil, nop, err
		}
		return src, nop, nil
	}
}

// Publish stores cfg in the Firestore document named by raw
// (firestore://collection/document), the only writable source
func Publish(ctx context.Context, raw string, gcp GCPOptions, cfg *model.FilterConfig) error {
	loc, err := ParseLocation(raw)
	if err != nil {
		return err
	}
	if loc.Scheme != "firestore" {
		return goerr.New("config can only be published to firestore://", goerr.V("location", raw))
	}
	if gcp.ProjectID == "" {
		return goerr.New("GCP project ID is required for firestore config", goerr.V("location", raw))
	}

	client, err := firestore.NewClient(ctx, gcp.ProjectID, gcp.clientOptions()...)
	if err != nil {
		return goerr.Wrap(err, "failed to create firestore client")
	}
	defer func() { _ = client.Close() }()

	return NewFirestore(client, loc.Host, loc.Path).Put(ctx, cfg)
}
