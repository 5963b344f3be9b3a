// Package gitrepo records scheduled events as real git commits.
//
// It is the one side-effecting emitter: each event appends a line to the
// configured content file, stages it, and creates a commit whose authored
// and committed dates are both the event's forged timestamp. Remote
// support (clone into a temp dir, push with a token) covers the
// cron/cloud deployment shape where the repository is not checked out
// locally.
package gitrepo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/will-white/fake-history/pkg/model"
)

// Fallbacks when the commit_content block is absent from the config.
const (
	defaultTargetFile = "activity_log.md"
	defaultLinePrefix = "- Log entry:"
)

// Repo wraps a git worktree as an event recorder.
type Repo struct {
	dir     string
	repo    *git.Repository
	wt      *git.Worktree
	content model.ContentConfig
}

// Open opens an existing repository rooted at dir.
func Open(dir string, content model.ContentConfig) (*Repo, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("open git repository at %q: %w", dir, err)
	}
	return wrap(dir, repo, content)
}

// CloneTemp clones url's branch into a fresh temporary directory,
// authenticating with token when non-empty. The returned cleanup removes
// the directory; it is safe to call even after errors.
func CloneTemp(url, branch, token string, content model.ContentConfig) (*Repo, func(), error) {
	dir, err := os.MkdirTemp("", "fakehist-*")
	if err != nil {
		return nil, func() {}, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	opts := &git.CloneOptions{URL: url, SingleBranch: true}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}
	if token != "" {
		opts.Auth = tokenAuth(token)
	}
	repo, err := git.PlainClone(dir, false, opts)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("clone %q: %w", url, err)
	}
	r, err := wrap(dir, repo, content)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return r, cleanup, nil
}

func wrap(dir string, repo *git.Repository, content model.ContentConfig) (*Repo, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolve worktree: %w", err)
	}
	if content.TargetFile == "" {
		content.TargetFile = defaultTargetFile
	}
	if content.LinePrefix == "" {
		content.LinePrefix = defaultLinePrefix
	}
	return &Repo{dir: dir, repo: repo, wt: wt, content: content}, nil
}

// Dir returns the worktree root.
func (r *Repo) Dir() string { return r.dir }

// Emit records one scheduled event: append a line referencing the event
// to the content file, stage it, and commit with the event's author and
// timestamp as both authored and committed date. Implements
// schedule.Emitter.
func (r *Repo) Emit(ev model.ScheduledEvent) error {
	stamp := ev.Time.Format("2006-01-02T15:04:05")
	line := fmt.Sprintf("%s %s\n", r.content.LinePrefix, stamp)
	path := filepath.Join(r.dir, r.content.TargetFile)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open content file %q: %w", r.content.TargetFile, err)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("append to %q: %w", r.content.TargetFile, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", r.content.TargetFile, err)
	}

	if _, err := r.wt.Add(r.content.TargetFile); err != nil {
		return fmt.Errorf("stage %q: %w", r.content.TargetFile, err)
	}
	sig := &object.Signature{Name: ev.Author.Name, Email: ev.Author.Email, When: ev.Time}
	if _, err := r.wt.Commit(ev.Message, &git.CommitOptions{Author: sig, Committer: sig}); err != nil {
		return fmt.Errorf("create commit %q: %w", ev.Message, err)
	}
	return nil
}

// Push pushes the current branch to origin. A remote that is already up
// to date is not an error.
func (r *Repo) Push(token string) error {
	opts := &git.PushOptions{}
	if token != "" {
		opts.Auth = tokenAuth(token)
	}
	if err := r.repo.Push(opts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("push: %w", err)
	}
	return nil
}

// tokenAuth builds HTTP basic auth for a personal access token, matching
// the oauth2:<token>@host URL convention.
func tokenAuth(token string) *http.BasicAuth {
	return &http.BasicAuth{Username: "oauth2", Password: token}
}
