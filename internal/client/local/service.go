// Package local implements the offline backend: accounts, sessions and
// tasks live entirely in the client's collection store, so the CLI remains
// usable when the server cannot be reached.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mpetrov/taskkeeper/internal/api"
	"github.com/mpetrov/taskkeeper/internal/client/codec"
	"github.com/mpetrov/taskkeeper/internal/client/models"
	"github.com/mpetrov/taskkeeper/internal/client/repositories/tasks"
	"github.com/mpetrov/taskkeeper/internal/client/repositories/users"
	"github.com/mpetrov/taskkeeper/internal/client/store"
	"github.com/mpetrov/taskkeeper/internal/common"
)

// Service is the local backend.Backend implementation. An optional fixed
// latency can be applied to every operation to mimic network round-trips.
type Service struct {
	store   store.Store
	users   users.Repository
	tasks   tasks.Repository
	codec   codec.Codec
	latency time.Duration
}

func NewService(s store.Store, c codec.Codec, latency time.Duration) *Service {
	return &Service{
		store:   s,
		users:   users.NewStoreRepository(s),
		tasks:   tasks.NewStoreRepository(s),
		codec:   c,
		latency: latency,
	}
}

// delay sleeps for the configured artificial latency, honoring cancellation.
func (s *Service) delay(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) loadSession(ctx context.Context) (*models.Session, error) {
	data, err := s.store.Load(ctx, store.CollectionSession)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, common.ErrUnauthorized
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

func (s *Service) saveSession(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.store.Save(ctx, store.CollectionSession, data)
}

func validateSignup(name, email, password string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", common.ErrValidation)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", common.ErrValidation)
	}
	return nil
}

// Signup registers a local account and starts a session. A duplicate email
// yields common.ErrConflict and leaves existing accounts untouched.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*api.AuthResponse, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if err := validateSignup(name, email, password); err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email, EncodedCredential: s.codec.Encode(password)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.beginSession(ctx, user)
}

// Login verifies the credential against the local account. Unknown email and
// wrong password are indistinguishable, and neither starts a session.
func (s *Service) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}

	if !s.codec.Matches(user.EncodedCredential, password) {
		return nil, common.ErrUnauthorized
	}

	return s.beginSession(ctx, user)
}

func (s *Service) beginSession(ctx context.Context, user *models.User) (*api.AuthResponse, error) {
	token, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrInternal
	}
	token = "local-" + token

	sess := &models.Session{Token: token, User: user.ToAPI()}
	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}
	return &api.AuthResponse{Token: token, User: sess.User}, nil
}

// Logout drops the cached session. Logging out twice is not an error.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.delay(ctx); err != nil {
		return err
	}
	return s.store.Delete(ctx, store.CollectionSession)
}

// Me returns the authenticated user read from the users collection. The
// session only identifies the account; the collection is the source of truth.
func (s *Service) Me(ctx context.Context) (*api.User, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	sess, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, sess.User.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}

	u := user.ToAPI()
	return &u, nil
}

// UpdateProfile merges the patch into the stored account. Unset fields keep
// their current values. The cached session user is refreshed afterwards.
func (s *Service) UpdateProfile(ctx context.Context, patch api.UpdateProfileRequest) (*api.User, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	sess, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.users.GetByID(ctx, sess.User.ID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", common.ErrValidation)
		}
		current.Name = name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*patch.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: a valid email is required", common.ErrValidation)
		}
		current.Email = email
	}

	if err := s.users.Update(ctx, current); err != nil {
		return nil, err
	}

	sess.User = current.ToAPI()
	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	u := current.ToAPI()
	return &u, nil
}

// ChangePassword re-encodes the credential after verifying the current one.
// A wrong current password leaves the stored credential unchanged.
func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	if err := s.delay(ctx); err != nil {
		return err
	}

	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", common.ErrValidation)
	}

	sess, err := s.loadSession(ctx)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, sess.User.ID)
	if err != nil {
		return err
	}

	if !s.codec.Matches(user.EncodedCredential, currentPassword) {
		return common.ErrUnauthorized
	}

	user.EncodedCredential = s.codec.Encode(newPassword)
	return s.users.Update(ctx, user)
}

// DeleteAccount removes the account, every task it owns, and the session.
func (s *Service) DeleteAccount(ctx context.Context) error {
	if err := s.delay(ctx); err != nil {
		return err
	}

	sess, err := s.loadSession(ctx)
	if err != nil {
		return err
	}

	if err := s.tasks.DeleteByUser(ctx, sess.User.ID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, sess.User.ID); err != nil {
		return err
	}
	return s.store.Delete(ctx, store.CollectionSession)
}

// ListTasks returns the user's tasks narrowed and ordered by the filter.
func (s *Service) ListTasks(ctx context.Context, filter api.Filter) ([]api.Task, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	sess, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}
	return s.tasks.List(ctx, sess.User.ID, filter)
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if len(title) > api.MaxTitleLen {
		return fmt.Errorf("%w: title must be at most %d characters", common.ErrValidation, api.MaxTitleLen)
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > api.MaxDescriptionLen {
		return fmt.Errorf("%w: description must be at most %d characters", common.ErrValidation, api.MaxDescriptionLen)
	}
	return nil
}

// CreateTask validates the payload, applies defaults, and stores the task.
func (s *Service) CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.Task, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	sess, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}

	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = api.StatusPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrValidation, status)
	}

	priority := req.Priority
	if priority == "" {
		priority = api.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", common.ErrValidation, priority)
	}

	task := &api.Task{
		UserID:      sess.User.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// GetTask returns one of the user's tasks or common.ErrNotFound.
func (s *Service) GetTask(ctx context.Context, id string) (*api.Task, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	sess, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, sess.User.ID, id)
}

// UpdateTask merges the patch over the stored task. Ownership is checked the
// same way as GetTask; the owning user never changes.
func (s *Service) UpdateTask(ctx context.Context, id string, patch api.UpdateTaskRequest) (*api.Task, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	sess, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, sess.User.ID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return nil, err
		}
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", common.ErrValidation, *patch.Status)
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", common.ErrValidation, *patch.Priority)
		}
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes one of the user's tasks or reports common.ErrNotFound.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if err := s.delay(ctx); err != nil {
		return err
	}

	sess, err := s.loadSession(ctx)
	if err != nil {
		return err
	}
	return s.tasks.Delete(ctx, sess.User.ID, id)
}

// TaskStats counts the user's tasks by status, independent of any filter.
func (s *Service) TaskStats(ctx context.Context) (api.Stats, error) {
	if err := s.delay(ctx); err != nil {
		return api.Stats{}, err
	}

	sess, err := s.loadSession(ctx)
	if err != nil {
		return api.Stats{}, err
	}
	return s.tasks.CountByStatus(ctx, sess.User.ID)
}

// Ping always succeeds: the local backend is its own storage.
func (s *Service) Ping(ctx context.Context) error {
	return nil
}
