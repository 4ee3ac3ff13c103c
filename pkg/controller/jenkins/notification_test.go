package jenkins_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/koren-henrik/dxrelay/pkg/controller/jenkins"
	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

const fullNotification = `{
  "job": {"name": "app", "full_name": "acme/app"},
  "number": 42,
  "result": "SUCCESS",
  "start_time_ms": 1700000000500,
  "duration_ms": 65700,
  "build_data": {
    "remote_urls": ["https://github.com/acme/app.git"],
    "last_built_revision": {"sha1": "abc123", "branches": [{"name": "refs/remotes/origin/PR-7"}]}
  },
  "scm_revision": {
    "head": {"name": "PR-7", "change_request": {"id": "7", "source_branch": "feature/login", "target": {"name": "main"}}}
  },
  "contributor": {"email": "dev@acme.io"},
  "change_sets": [{"items": [{"commit_id": "abc123", "author": {"id": "jdoe", "full_name": "J Doe"}}, {"commit_id": "def456"}]}],
  "causes": [{"user_id": ""}, {"user_id": "admin"}]
}`

func TestDecode_Full(t *testing.T) {
	run, err := jenkins.Decode([]byte(fullNotification))
	gt.NoError(t, err)

	gt.Value(t, run.Job).Equal(model.Job{Name: "app", FullName: "acme/app"})
	gt.Value(t, run.Number).Equal(42)
	gt.Value(t, run.Result).Equal(model.ResultSuccess)
	gt.Value(t, run.StartedAt.Equal(time.UnixMilli(1700000000500))).Equal(true)
	gt.Value(t, run.Duration).Equal(65700 * time.Millisecond)

	gt.Value(t, run.BuildData.RemoteURLs).Equal([]string{"https://github.com/acme/app.git"})
	gt.Value(t, run.BuildData.LastBuiltRevision.SHA1).Equal("abc123")
	gt.Value(t, run.BuildData.LastBuiltRevision.Branches).Equal([]model.Branch{{Name: "refs/remotes/origin/PR-7"}})

	gt.Value(t, run.SCMRevision.Head.Name).Equal("PR-7")
	gt.Value(t, *run.SCMRevision.Head.ChangeRequest).Equal(model.ChangeRequest{
		ID:           "7",
		SourceBranch: "feature/login",
		TargetBranch: "main",
	})

	gt.Value(t, run.Contributor.Email).Equal("dev@acme.io")
	gt.Number(t, len(run.ChangeSets)).Equal(1)
	gt.Number(t, len(run.ChangeSets[0].Entries)).Equal(2)
	gt.Value(t, run.ChangeSets[0].Entries[0].Author.ID).Equal("jdoe")
	gt.Value(t, run.ChangeSets[0].Entries[1].Author == nil).Equal(true)
	gt.Value(t, run.TriggeringUserID()).Equal("admin")
}

func TestDecode_Minimal(t *testing.T) {
	run, err := jenkins.Decode([]byte(`{"job": {"name": "app"}, "number": 1}`))
	gt.NoError(t, err)

	gt.Value(t, run.Job.FullName).Equal("app")
	gt.Value(t, run.Result).Equal(model.Result(""))
	gt.Value(t, run.BuildData == nil).Equal(true)
	gt.Value(t, run.SCMRevision == nil).Equal(true)
	gt.Value(t, run.Contributor == nil).Equal(true)
	gt.Value(t, len(run.ChangeSets)).Equal(0)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not JSON", body: `job=app`},
		{name: "missing job", body: `{"number": 1, "result": "SUCCESS"}`},
		{name: "empty job", body: `{"job": {}, "number": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jenkins.Decode([]byte(tt.body))
			gt.Error(t, err)
		})
	}
}
