package configstore_test

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/gt"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
	"github.com/koren-henrik/dxrelay/pkg/infra/configstore"
)

func TestFirestore_PutAndSnapshot(t *testing.T) {
	// Requires the Firestore emulator (FIRESTORE_EMULATOR_HOST)
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST is not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "dxrelay-test")
	gt.NoError(t, err)
	defer client.Close()

	src := configstore.NewFirestore(client, "dxrelay-test", uuid.NewString())

	t.Run("missing document is unconfigured", func(t *testing.T) {
		cfg, err := src.Snapshot(ctx)
		gt.NoError(t, err)
		gt.False(t, cfg.IsConfigured())
	})

	t.Run("stored document is returned", func(t *testing.T) {
		want := &model.FilterConfig{
			BaseURL:       "https://dx.example.com",
			BranchPattern: "^release-",
		}
		gt.NoError(t, src.Put(ctx, want))

		cfg, err := src.Snapshot(ctx)
		gt.NoError(t, err)
		gt.Value(t, cfg).Equal(want)
	})
}

func TestPublish_ThenOpen(t *testing.T) {
	// Requires the Firestore emulator (FIRESTORE_EMULATOR_HOST)
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST is not set")
	}

	ctx := context.Background()
	gcp := configstore.GCPOptions{ProjectID: "dxrelay-test"}
	location := "firestore://dxrelay-test/" + uuid.NewString()
	want := &model.FilterConfig{BaseURL: "https://dx.example.com", JobPattern: "^acme/"}

	gt.NoError(t, configstore.Publish(ctx, location, gcp, want))

	src, closer, err := configstore.Open(ctx, location, gcp)
	gt.NoError(t, err)
	defer func() { gt.NoError(t, closer()) }()

	cfg, err := src.Snapshot(ctx)
	gt.NoError(t, err)
	gt.Value(t, cfg).Equal(want)
}

func TestPublish_RejectsNonFirestoreLocation(t *testing.T) {
	cfg := &model.FilterConfig{BaseURL: "https://dx.example.com"}
	gcp := configstore.GCPOptions{ProjectID: "dxrelay-test"}

	for _, location := range []string{"dx.toml", "gs://bucket/dx.toml", "firestore://only-collection"} {
		t.Run(location, func(t *testing.T) {
			gt.Error(t, configstore.Publish(context.Background(), location, gcp, cfg))
		})
	}

	t.Run("missing project", func(t *testing.T) {
		gt.Error(t, configstore.Publish(context.Background(), "firestore://dxrelay/dx", configstore.GCPOptions{}, cfg))
	})
}
