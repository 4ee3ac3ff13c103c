package identity

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
	"github.com/koren-henrik/dxrelay/pkg/utils/fileconf"
)

type directoryFile struct {
	Users map[string]string `toml:"users" yaml:"users"`
}

// Resolver resolves host users to email addresses. Resolution order is the
// email carried by the user itself, the user directory, an id that already
// is an address, then id@MailDomain.
type Resolver struct {
	users      map[string]string
	mailDomain string
}

// Option is a functional option for Resolver
type Option func(*Resolver)

// WithUsers sets the user directory (user id -> email). Ids are case insensitive.
func WithUsers(users map[string]string) Option {
	return func(r *Resolver) {
		for id, email := range users {
			r.users[strings.ToLower(id)] = email
		}
	}
}

// WithMailDomain sets the default domain used for users without an address
func WithMailDomain(domain string) Option {
	return func(r *Resolver) {
		r.mailDomain = strings.TrimPrefix(strings.TrimSpace(domain), "@")
	}
}

// New creates a new Resolver
func New(opts ...Option) *Resolver {
	r := &Resolver{users: map[string]string{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadUsers reads a user directory from a TOML or YAML file with a `users`
// table mapping user id to email
func LoadUsers(path string) (map[string]string, error) {
	var f directoryFile
	if err := fileconf.DecodeFile(path, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to load user directory")
	}
	return f.Users, nil
}

// ResolveEmail returns the email address of user, or empty string
func (r *Resolver) ResolveEmail(ctx context.Context, user model.User) string {
	if email := strings.TrimSpace(user.Email); email != "" {
		return email
	}

	id := strings.TrimSpace(user.ID)
	if id == "" {
		return ""
	}

	if email, ok := r.users[strings.ToLower(id)]; ok && email != "" {
		return email
	}

	if strings.Contains(id, "@") {
		return id
	}

	if r.mailDomain != "" {
		return id + "@" + r.mailDomain
	}

	return ""
}
