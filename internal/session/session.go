// Package session coordinates the user and prompt collections, the selected user, and the
// prompt selection derived from it.
package session

import (
	"context"
	"sync"
	"time"

	"whisperdeck/internal/clip"
	"whisperdeck/internal/model"
	"whisperdeck/internal/mutate"
	"whisperdeck/internal/store"

	"go.uber.org/zap"
)

const defaultCopyTimeout = 3 * time.Second

// CopyResult reports how a fire-and-forget clipboard write ended.
type CopyResult struct {
	User int
	// Name is the user's name when the write started. Indexes may shift before it ends.
	Name string
	Text string
	Err  error
}

// Session owns the user and prompt collections and the selected user.
type Session struct {
	users   *Collection[model.User]
	prompts *Collection[model.Prompt]

	selected Selection

	clip   clip.Writer
	logger *zap.Logger

	// OnCopy, when set, receives the result of every clipboard write. It runs on the
	// goroutine that performed the write, not the caller's.
	OnCopy func(CopyResult)

	copyTimeout time.Duration
	copies      sync.WaitGroup
}

// New returns a session with default collections (no users, the Blank prompt).
// Call Hydrate to load persisted data.
func New(kv store.KV, w clip.Writer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if w == nil {
		w = clip.New(clip.ModeNone)
	}
	return &Session{
		users:       NewCollection(store.KeyUsers, kv, model.DefaultUsers(), logger),
		prompts:     NewCollection(store.KeyPrompts, kv, model.DefaultPrompts(), logger),
		clip:        w,
		logger:      logger,
		copyTimeout: defaultCopyTimeout,
	}
}

// Hydrate loads both collections from storage. It is meant to run once at startup.
func (s *Session) Hydrate(ctx context.Context) error {
	usersLoaded, err := s.users.Hydrate(ctx)
	if err != nil {
		return err
	}
	promptsLoaded, err := s.prompts.Hydrate(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("hydrated",
		zap.Bool("usersLoaded", usersLoaded), zap.Int("users", s.users.Len()),
		zap.Bool("promptsLoaded", promptsLoaded), zap.Int("prompts", s.prompts.Len()),
	)
	return nil
}

// Reload re-reads storage (e.g. after another process changed it) and drops a selection
// that no longer points at a user. Both collections restart from their defaults first, so a
// stored empty user list empties the in-memory one instead of being skipped.
func (s *Session) Reload(ctx context.Context) error {
	users, prompts := s.users.Items(), s.prompts.Items()
	s.users.items = model.DefaultUsers()
	s.prompts.items = model.DefaultPrompts()
	if err := s.Hydrate(ctx); err != nil {
		// Keep what we had rather than defaults a later write would persist.
		s.users.items, s.prompts.items = users, prompts
		return err
	}
	if i, ok := s.selected.Index(); ok && i >= s.users.Len() {
		s.selected = None
	}
	return nil
}

// Users returns a copy of the user list.
func (s *Session) Users() []model.User { return s.users.Items() }

// Prompts returns a copy of the prompt list.
func (s *Session) Prompts() []model.Prompt { return s.prompts.Items() }

// User returns the user at i, or false when i is out of range.
func (s *Session) User(i int) (model.User, bool) { return s.users.At(i) }

// Prompt returns the prompt at i, or false when i is out of range.
func (s *Session) Prompt(i int) (model.Prompt, bool) { return s.prompts.At(i) }

// SelectedUser is the user chosen by the last SelectUser call.
func (s *Session) SelectedUser() Selection { return s.selected }

// SelectedPrompt derives the prompt selection: the first prompt whose short name equals
// the selected user's assigned prompt's short name.
func (s *Session) SelectedPrompt() Selection {
	i, ok := s.selected.Index()
	if !ok {
		return None
	}
	u, ok := s.users.At(i)
	if !ok {
		return None
	}
	return MatchPrompt(u, s.prompts.items)
}

// MatchPrompt returns the first index in prompts whose Short equals u's assigned prompt's
// Short. A user without a prompt matches nothing.
func MatchPrompt(u model.User, prompts []model.Prompt) Selection {
	if u.Prompt == nil {
		return None
	}
	for i, p := range prompts {
		if p.Short == u.Prompt.Short {
			return At(i)
		}
	}
	return None
}

// SelectUser changes the selected user. Selecting a user copies its composed text to the
// clipboard in the background; the write never blocks and its outcome does not affect state.
func (s *Session) SelectUser(sel Selection) error {
	i, ok := sel.Index()
	if !ok {
		s.selected = None
		return nil
	}
	u, ok := s.users.At(i)
	if !ok {
		return mutate.IndexError{Op: "select user", Index: i, Len: s.users.Len()}
	}
	s.selected = sel
	s.copyAsync(i, u.Name, Compose(u))
	return nil
}

func (s *Session) copyAsync(user int, name, text string) {
	s.copies.Add(1)
	go func() {
		defer s.copies.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.copyTimeout)
		defer cancel()

		err := s.clip.WriteText(ctx, text)
		if err != nil {
			// OnCopy receivers report the failure; logging it louder would print it twice.
			s.logger.Debug("clipboard write failed", zap.Int("user", user), zap.Error(err))
		} else {
			s.logger.Debug("copied to clipboard", zap.Int("user", user), zap.Int("bytes", len(text)))
		}
		if s.OnCopy != nil {
			s.OnCopy(CopyResult{User: user, Name: name, Text: text, Err: err})
		}
	}()
}

// Wait blocks until all in-flight clipboard writes have finished.
func (s *Session) Wait() { s.copies.Wait() }

// AddUser appends a user with no prompt.
func (s *Session) AddUser(ctx context.Context, name string) error {
	return s.users.Apply(ctx, mutate.Add(model.User{Name: name}))
}

// RemoveUser deletes user i. Removing the selected user clears the selection; removing a
// user above it keeps the selection on the same user.
func (s *Session) RemoveUser(ctx context.Context, i int) error {
	if err := s.users.Apply(ctx, mutate.Remove[model.User](i)); err != nil {
		return err
	}
	if sel, ok := s.selected.Index(); ok {
		switch {
		case sel == i:
			s.selected = None
		case i < sel:
			s.selected = At(sel - 1)
		}
	}
	return nil
}

// RenameUser replaces user i's name, keeping its assigned prompt.
func (s *Session) RenameUser(ctx context.Context, i int, name string) error {
	u, ok := s.users.At(i)
	if !ok {
		return mutate.IndexError{Op: "rename user", Index: i, Len: s.users.Len()}
	}
	u.Name = name
	return s.users.Apply(ctx, mutate.Modify(i, u))
}

// AssignPrompt assigns a copy of prompt pi to the selected user. It is a no-op when no
// user is selected.
func (s *Session) AssignPrompt(ctx context.Context, pi int) error {
	ui, ok := s.selected.Index()
	if !ok {
		return nil
	}
	return s.AssignPromptTo(ctx, ui, pi)
}

// AssignPromptTo assigns a copy of prompt pi to user ui.
func (s *Session) AssignPromptTo(ctx context.Context, ui, pi int) error {
	p, ok := s.prompts.At(pi)
	if !ok {
		return mutate.IndexError{Op: "assign prompt", Index: pi, Len: s.prompts.Len()}
	}
	u, ok := s.users.At(ui)
	if !ok {
		return mutate.IndexError{Op: "assign prompt", Index: ui, Len: s.users.Len()}
	}
	return s.users.Apply(ctx, mutate.Modify(ui, model.User{Name: u.Name}.WithPrompt(p)))
}

// AddPrompt appends p to the prompt list.
func (s *Session) AddPrompt(ctx context.Context, p model.Prompt) error {
	return s.prompts.Apply(ctx, mutate.Add(p))
}

// ModifyPrompt replaces prompt i. Users keep their own copy of a prompt they were assigned.
func (s *Session) ModifyPrompt(ctx context.Context, i int, p model.Prompt) error {
	return s.prompts.Apply(ctx, mutate.Modify(i, p))
}

// CanDeletePrompt reports whether a prompt may be removed: the last one never can.
func (s *Session) CanDeletePrompt() bool { return s.prompts.Len() > 1 }

// RemovePrompt deletes prompt i, failing with ErrLastPrompt when it is the only one.
func (s *Session) RemovePrompt(ctx context.Context, i int) error {
	if !s.CanDeletePrompt() {
		return ErrLastPrompt
	}
	return s.prompts.Apply(ctx, mutate.Remove[model.Prompt](i))
}

// Import appends the given users and prompts, or replaces both collections when replace is
// set. Replacing with an empty prompt list keeps the default prompt.
func (s *Session) Import(ctx context.Context, users []model.User, prompts []model.Prompt, replace bool) error {
	if replace {
		if len(prompts) == 0 {
			prompts = model.DefaultPrompts()
		}
		if err := s.users.Replace(ctx, users); err != nil {
			return err
		}
		if err := s.prompts.Replace(ctx, prompts); err != nil {
			return err
		}
		s.selected = None
		return nil
	}
	for _, u := range users {
		if err := s.users.Apply(ctx, mutate.Add(u)); err != nil {
			return err
		}
	}
	for _, p := range prompts {
		if err := s.prompts.Apply(ctx, mutate.Add(p)); err != nil {
			return err
		}
	}
	return nil
}
