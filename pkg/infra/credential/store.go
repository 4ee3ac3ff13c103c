package credential

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/koren-henrik/dxrelay/pkg/utils/fileconf"
)

// Entry is one stored secret. An empty Scope makes the secret global;
// otherwise it is visible to jobs inside the Scope folder only.
type Entry struct {
	ID     string `toml:"id" yaml:"id"`
	Scope  string `toml:"scope" yaml:"scope"`
	Secret string `toml:"secret" yaml:"secret"`
}

type credentialFile struct {
	Credentials []Entry `toml:"credentials" yaml:"credentials"`
}

// Store is an immutable in-memory credential store
type Store struct {
	entries []Entry
}

// New creates a Store from entries. Entries without id or secret are ignored.
func New(entries ...Entry) *Store {
	s := &Store{}
	for _, e := range entries {
		if e.ID == "" || e.Secret == "" {
			continue
		}
		e.Scope = strings.Trim(e.Scope, "/")
		s.entries = append(s.entries, e)
	}
	return s
}

// LoadFile reads credential entries from a TOML or YAML file
func LoadFile(path string) ([]Entry, error) {
	var f credentialFile
	if err := fileconf.DecodeFile(path, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to load credentials file")
	}
	return f.Credentials, nil
}

// Lookup returns the secret for id visible from scope, the full name of the
// job. The most specific folder scope wins over shorter ones and over
// global entries.
func (s *Store) Lookup(ctx context.Context, id, scope string) (string, bool) {
	var (
		found  bool
		secret string
		best   = -1
	)

	for _, e := range s.entries {
		if e.ID != id || !inScope(e.Scope, scope) {
			continue
		}
		if len(e.Scope) > best {
			best = len(e.Scope)
			secret = e.Secret
			found = true
		}
	}

	return secret, found
}

func inScope(folder, job string) bool {
	if folder == "" {
		return true
	}
	return job == folder || strings.HasPrefix(job, folder+"/")
}
