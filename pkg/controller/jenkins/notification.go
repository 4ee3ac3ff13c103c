package jenkins

import (
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

// Notification is the run-completed document posted by the Jenkins side
// adapter. Every metadata object is optional.
type Notification struct {
	Job         *Job         `json:"job"`
	Number      int          `json:"number"`
	Result      string       `json:"result"`
	StartTimeMS int64        `json:"start_time_ms"`
	DurationMS  int64        `json:"duration_ms"`
	BuildData   *BuildData   `json:"build_data,omitempty"`
	SCMRevision *SCMRevision `json:"scm_revision,omitempty"`
	Contributor *Contributor `json:"contributor,omitempty"`
	ChangeSets  []ChangeSet  `json:"change_sets,omitempty"`
	Causes      []Cause      `json:"causes,omitempty"`
}

type Job struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

type BuildData struct {
	RemoteURLs        []string  `json:"remote_urls"`
	LastBuiltRevision *Revision `json:"last_built_revision,omitempty"`
}

type Revision struct {
	SHA1     string   `json:"sha1"`
	Branches []Branch `json:"branches"`
}

type Branch struct {
	Name string `json:"name"`
}

type SCMRevision struct {
	Head *SCMHead `json:"head,omitempty"`
}

type SCMHead struct {
	Name          string         `json:"name"`
	ChangeRequest *ChangeRequest `json:"change_request,omitempty"`
}

type ChangeRequest struct {
	ID           string  `json:"id"`
	SourceBranch string  `json:"source_branch"`
	Target       *Branch `json:"target,omitempty"`
}

type Contributor struct {
	Email string `json:"email"`
}

type ChangeSet struct {
	Items []ChangeSetItem `json:"items"`
}

type ChangeSetItem struct {
	CommitID string `json:"commit_id"`
	Author   *User  `json:"author,omitempty"`
}

type User struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type Cause struct {
	UserID string `json:"user_id"`
}

// Decode parses a notification body into a run handle. Only the presence of
// the job identity is checked.
func Decode(body []byte) (*model.Run, error) {
	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal run notification")
	}
	if n.Job == nil || (n.Job.Name == "" && n.Job.FullName == "") {
		return nil, goerr.New("missing job in run notification")
	}
	return n.ToRun(), nil
}

// ToRun converts the notification into the domain run handle
func (n *Notification) ToRun() *model.Run {
	run := &model.Run{
		Number:    n.Number,
		Result:    model.Result(n.Result),
		StartedAt: time.UnixMilli(n.StartTimeMS),
		Duration:  time.Duration(n.DurationMS) * time.Millisecond,
	}

	if n.Job != nil {
		run.Job = model.Job{Name: n.Job.Name, FullName: n.Job.FullName}
		if run.Job.FullName == "" {
			run.Job.FullName = n.Job.Name
		}
	}

	if bd := n.BuildData; bd != nil {
		run.BuildData = &model.BuildData{RemoteURLs: bd.RemoteURLs}
		if rev := bd.LastBuiltRevision; rev != nil {
			revision := &model.Revision{SHA1: rev.SHA1}
			for _, b := range rev.Branches {
				revision.Branches = append(revision.Branches, model.Branch{Name: b.Name})
			}
			run.BuildData.LastBuiltRevision = revision
		}
	}

	if rev := n.SCMRevision; rev != nil {
		run.SCMRevision = &model.SCMRevision{}
		if head := rev.Head; head != nil {
			run.SCMRevision.Head = &model.SCMHead{Name: head.Name}
			if cr := head.ChangeRequest; cr != nil {
				changeRequest := &model.ChangeRequest{
					ID:           cr.ID,
					SourceBranch: cr.SourceBranch,
				}
				if cr.Target != nil {
					changeRequest.TargetBranch = cr.Target.Name
				}
				run.SCMRevision.Head.ChangeRequest = changeRequest
			}
		}
	}

	if n.Contributor != nil {
		run.Contributor = &model.Contributor{Email: n.Contributor.Email}
	}

	for _, cs := range n.ChangeSets {
		set := model.ChangeSet{}
		for _, item := range cs.Items {
			entry := model.ChangeLogEntry{CommitID: item.CommitID}
			if item.Author != nil {
				entry.Author = &model.User{
					ID:       item.Author.ID,
					FullName: item.Author.FullName,
					Email:    item.Author.Email,
				}
			}
			set.Entries = append(set.Entries, entry)
		}
		run.ChangeSets = append(run.ChangeSets, set)
	}

	for _, c := range n.Causes {
		run.Causes = append(run.Causes, model.Cause{UserID: c.UserID})
	}

	return run
}
