package watcher

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kroma-labs/catalyst-go/gitapi"
	"github.com/kroma-labs/catalyst-go/webhook"
)

// Lister is the slice of gitapi.CommitCommentService the watcher needs.
type Lister interface {
	List(ctx context.Context, ref gitapi.PullRequestReference) ([]gitapi.PullRequestComment, error)
}

// Watcher prints review comments of one pull request, each only once.
type Watcher struct {
	lister Lister
	ref    gitapi.PullRequestReference
	out    io.Writer
	logger zerolog.Logger

	mu   sync.Mutex
	seen map[int64]struct{}
}

func New(lister Lister, ref gitapi.PullRequestReference, out io.Writer, logger zerolog.Logger) *Watcher {
	return &Watcher{
		lister: lister,
		ref:    ref,
		out:    out,
		logger: logger,
		seen:   make(map[int64]struct{}),
	}
}

// Poll lists the comments and prints those not printed before. It returns
// how many were new.
func (w *Watcher) Poll(ctx context.Context) (int, error) {
	comments, err := w.lister.List(ctx, w.ref)
	if err != nil {
		w.logger.Error().
			Err(err).
			Str("pull_request", w.ref.String()).
			Str("kind", gitapi.KindOf(err).String()).
			Msg("listing review comments failed")
		return 0, err
	}

	fresh := 0
	for _, c := range comments {
		if w.Observe(c) {
			fresh++
		}
	}

	w.logger.Debug().
		Str("pull_request", w.ref.String()).
		Int("total", len(comments)).
		Int("new", fresh).
		Msg("polled review comments")
	return fresh, nil
}

// Observe prints c unless a comment with its ID was printed before, and
// reports whether it did. Webhook deliveries and polls share the record.
func (w *Watcher) Observe(c gitapi.PullRequestComment) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.seen[c.ID]; ok {
		return false
	}
	w.seen[c.ID] = struct{}{}
	fmt.Fprintf(w.out, "#%d %s on %s: %s\n", c.ID, c.User.Login, location(c), c.Body)
	return true
}

// HandleReviewComment feeds review comment deliveries for the watched pull
// request into Observe. Deliveries for other pull requests, and deletions,
// are ignored.
func (w *Watcher) HandleReviewComment(
	_ context.Context,
	d webhook.Delivery,
	ev *gitapi.PullRequestReviewCommentEvent,
) error {
	if ev.PullRequest.Number != w.ref.Number ||
		ev.Repository.Name != w.ref.Repo.Name ||
		ev.Repository.Owner.Login != w.ref.Repo.Owner {
		return nil
	}
	if ev.Action == gitapi.CommentDeleted {
		return nil
	}
	if w.Observe(ev.Comment) {
		w.logger.Debug().Str("delivery", d.ID).Int64("comment", ev.Comment.ID).Msg("comment from webhook")
	}
	return nil
}

func location(c gitapi.PullRequestComment) string {
	if c.Position == nil {
		return c.Path + " (outdated)"
	}
	return fmt.Sprintf("%s:%d", c.Path, *c.Position)
}
