// Package gtasks implements the sync engine's provider interface
// against the Google Tasks API. Nothing outside this package imports
// the Google SDK.
package gtasks

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"

	"github.com/ermekov/taskfold/internal/config"
	"github.com/ermekov/taskfold/internal/sync"
	"github.com/ermekov/taskfold/internal/unified"
)

const (
	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client talks to Google Tasks with one cached OAuth token per user
type Client struct {
	credentialsFile string
	tokenDir        string
}

// NewClient builds a client from the config directory layout
func NewClient(cfg *config.Config) (*Client, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	credentialsFile := cfg.CredentialsFile
	if credentialsFile == "" {
		credentialsFile = filepath.Join(dir, "credentials.json")
	}

	return &Client{
		credentialsFile: credentialsFile,
		tokenDir:        filepath.Join(dir, "tokens"),
	}, nil
}

// service builds an authenticated Tasks service for one user
func (c *Client) service(ctx context.Context, userID string) (*tasks.Service, error) {
	httpClient, err := c.authClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	srv, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to build Tasks client: %w", err)
	}
	return srv, nil
}

// ListTaskLists implements sync.Provider
func (c *Client) ListTaskLists(ctx context.Context, userID string) ([]sync.TaskList, error) {
	srv, err := c.service(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Tasklists.List().MaxResults(100).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list task lists: %w", err)
	}

	lists := make([]sync.TaskList, 0, len(resp.Items))
	for _, item := range resp.Items {
		lists = append(lists, sync.TaskList{
			ID:        item.Id,
			Title:     item.Title,
			UpdatedAt: parseTime(item.Updated),
		})
	}
	return lists, nil
}

// ListTasks implements sync.Provider, following pagination
func (c *Client) ListTasks(ctx context.Context, userID, listID string, includeDeleted, includeHidden bool) ([]unified.ExternalTask, error) {
	srv, err := c.service(ctx, userID)
	if err != nil {
		return nil, err
	}

	var out []unified.ExternalTask
	pageToken := ""
	for {
		call := srv.Tasks.List(listID).
			ShowCompleted(true).
			ShowDeleted(includeDeleted).
			ShowHidden(includeHidden).
			MaxResults(100).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("unable to list tasks: %w", err)
		}
		for _, item := range resp.Items {
			out = append(out, toExternalTask(item))
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			return out, nil
		}
	}
}

// UpsertTask implements sync.Provider: patch by id, or insert when
// externalID is empty.
func (c *Client) UpsertTask(ctx context.Context, userID, listID string, patch sync.TaskPatch, externalID string) (unified.ExternalTask, error) {
	srv, err := c.service(ctx, userID)
	if err != nil {
		return unified.ExternalTask{}, err
	}

	body := &tasks.Task{
		Title:  patch.Text,
		Status: statusNeedsAction,
	}
	if patch.Completed {
		body.Status = statusCompleted
	}
	if patch.DueAt != nil {
		body.Due = patch.DueAt.UTC().Format(time.RFC3339)
	}

	var saved *tasks.Task
	if externalID != "" {
		saved, err = srv.Tasks.Patch(listID, externalID, body).Context(ctx).Do()
	} else {
		saved, err = srv.Tasks.Insert(listID, body).Context(ctx).Do()
	}
	if err != nil {
		return unified.ExternalTask{}, fmt.Errorf("unable to upsert task: %w", err)
	}

	return toExternalTask(saved), nil
}

func toExternalTask(t *tasks.Task) unified.ExternalTask {
	ext := unified.ExternalTask{
		ID:        t.Id,
		Title:     t.Title,
		Completed: t.Status == statusCompleted,
		UpdatedAt: parseTime(t.Updated),
		Deleted:   t.Deleted,
	}
	if t.Due != "" {
		due := parseTime(t.Due)
		if !due.IsZero() {
			ext.DueAt = &due
		}
	}
	return ext
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
