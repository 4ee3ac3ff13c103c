package cli_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/koren-henrik/dxrelay/pkg/cli"
)

const notification = `{
  "job": {"name": "app", "full_name": "acme/app"},
  "number": 42,
  "result": "SUCCESS",
  "start_time_ms": 1700000000000,
  "duration_ms": 65000,
  "build_data": {
    "remote_urls": ["https://github.com/acme/app.git"],
    "last_built_revision": {"sha1": "abc123", "branches": [{"name": "refs/remotes/origin/release-1.2"}]}
  },
  "contributor": {"email": "dev@acme.io"}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type dxServer struct {
	mu       sync.Mutex
	requests []map[string]any
	auth     []string
}

func (s *dxServer) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/api/pipelineRuns.sync")
		body, err := io.ReadAll(r.Body)
		gt.NoError(t, err)

		var payload map[string]any
		gt.NoError(t, json.Unmarshal(body, &payload))

		s.mu.Lock()
		s.requests = append(s.requests, payload)
		s.auth = append(s.auth, r.Header.Get("Authorization"))
		s.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
}

func TestSend_DeliversRun(t *testing.T) {
	dx := &dxServer{}
	ts := httptest.NewServer(dx.handler(t))
	defer ts.Close()

	path := writeFile(t, "run.json", notification)
	err := cli.Run(context.Background(), []string{
		"dxrelay", "--log-level", "debug",
		"send",
		"--dx-base-url", ts.URL,
		"--dx-api-token", "test-token",
		"--include-branch-pattern", "^release-",
		"--fail-on-error",
		path,
	})
	gt.NoError(t, err)

	gt.Number(t, len(dx.requests)).Equal(1)
	gt.Value(t, dx.auth[0]).Equal("Bearer test-token")
	gt.Value(t, dx.requests[0]["head_branch"]).Equal("release-1.2")
	gt.Value(t, dx.requests[0]["repository"]).Equal("app")
	gt.Value(t, dx.requests[0]["email"]).Equal("dev@acme.io")
}

func TestSend_FilteredRunIsNotDelivered(t *testing.T) {
	dx := &dxServer{}
	ts := httptest.NewServer(dx.handler(t))
	defer ts.Close()

	path := writeFile(t, "run.json", notification)
	err := cli.Run(context.Background(), []string{
		"dxrelay",
		"send",
		"--dx-base-url", ts.URL,
		"--dx-api-token", "test-token",
		"--include-branch-pattern", "^main$",
		path,
	})
	gt.NoError(t, err)
	gt.Number(t, len(dx.requests)).Equal(0)
}

func TestSend_FailOnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	path := writeFile(t, "run.json", notification)
	args := []string{
		"dxrelay",
		"send",
		"--dx-base-url", ts.URL,
		"--dx-api-token", "test-token",
	}

	gt.NoError(t, cli.Run(context.Background(), append(args, path)))
	gt.Error(t, cli.Run(context.Background(), append(args, "--fail-on-error", path)))
}

func TestSend_InvalidNotification(t *testing.T) {
	path := writeFile(t, "run.json", `{"number": 1}`)
	err := cli.Run(context.Background(), []string{"dxrelay", "send", "--dx-base-url", "https://example.getdx.net", path})
	gt.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		file    string
		wantErr bool
	}{
		{
			name: "valid flags",
			args: []string{"--dx-base-url", "https://example.getdx.net", "--include-repo-pattern", "acme/"},
		},
		{
			name: "warnings only",
			args: []string{"--dx-base-url", "http://example.getdx.net"},
		},
		{
			name:    "invalid pattern",
			args:    []string{"--dx-base-url", "https://example.getdx.net", "--include-job-pattern", "(foo"},
			wantErr: true,
		},
		{
			name:    "invalid pattern in file",
			file:    "base_url = \"https://example.getdx.net\"\ninclude_branch_pattern = \"[release\"\n",
			wantErr: true,
		},
		{
			name: "valid file",
			file: "base_url = \"https://example.getdx.net\"\ninclude_branch_pattern = \"^release-\"\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"dxrelay", "validate"}, tc.args...)
			if tc.file != "" {
				args = append(args, "--config", writeFile(t, "dx.toml", tc.file))
			}

			err := cli.Run(context.Background(), args)
			if tc.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestValidate_WriteRequiresFirestore(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"dxrelay", "validate",
		"--dx-base-url", "https://example.getdx.net",
		"--write", "gs://bucket/dx.toml",
	})
	gt.Error(t, err)
}

func TestServe_ReturnsWhenAddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	gt.NoError(t, err)
	defer ln.Close()

	result := make(chan error, 1)
	go func() {
		result <- cli.Run(context.Background(), []string{
			"dxrelay", "serve",
			"--addr", ln.Addr().String(),
			"--signing-secret", "test-secret",
			"--dx-base-url", "https://example.getdx.net",
		})
	}()

	select {
	case err := <-result:
		gt.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve kept running without a listener")
	}
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	result := make(chan error, 1)
	go func() {
		result <- cli.Run(ctx, []string{
			"dxrelay", "serve",
			"--addr", "127.0.0.1:0",
			"--signing-secret", "test-secret",
		})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-result:
		gt.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
