package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/ermekov/taskfold/internal/models"
)

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	UserID     string
	Text       string
	FolderID   *int64
	DueAt      *time.Time
	RemindAt   *time.Time
	Recurrence string
}

// CreateTask creates a new task at the end of the user's list
func CreateTask(req CreateTaskRequest) (*models.Task, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("task text is required")
	}

	// Folder linkage must belong to the same user
	if req.FolderID != nil {
		var folder models.Folder
		if err := DB.Where("id = ? AND user_id = ?", *req.FolderID, req.UserID).First(&folder).Error; err != nil {
			return nil, fmt.Errorf("folder #%d not found", *req.FolderID)
		}
	}

	task := models.Task{
		UserID:      req.UserID,
		Text:        text,
		FolderID:    req.FolderID,
		DueAt:       req.DueAt,
		RemindAt:    req.RemindAt,
		Recurrence:  req.Recurrence,
		SortOrder:   nextTaskOrder(req.UserID),
		SyncEnabled: true,
	}

	if err := DB.Create(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// nextTaskOrder returns the next free sort position for a user's tasks
func nextTaskOrder(userID string) int {
	var max *int
	DB.Model(&models.Task{}).Where("user_id = ?", userID).Select("MAX(sort_order)").Scan(&max)
	if max == nil {
		return 0
	}
	return *max + 1
}

// GetTasks retrieves a user's tasks in display order
func GetTasks(userID string) ([]models.Task, error) {
	var tasks []models.Task
	err := DB.Preload("Subtasks").
		Where("user_id = ?", userID).
		Order("sort_order").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTaskByID returns one of the user's tasks
func GetTaskByID(userID string, taskID int64) (*models.Task, error) {
	var task models.Task
	if err := DB.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		return nil, fmt.Errorf("task #%d not found", taskID)
	}
	return &task, nil
}

// ToggleTask sets a task's completion flag
func ToggleTask(userID string, taskID int64, completed bool) (*models.Task, error) {
	task, err := GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = completed
	if err := DB.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task and its subtasks
func DeleteTask(userID string, taskID int64) error {
	task, err := GetTaskByID(userID, taskID)
	if err != nil {
		return err
	}

	if err := DB.Where("task_id = ?", task.ID).Delete(&models.Subtask{}).Error; err != nil {
		return err
	}
	return DB.Delete(task).Error
}

// ReorderTask moves a task to a new position and renumbers the rest
// so sort orders stay contiguous and unique.
func ReorderTask(userID string, taskID int64, newOrder int) error {
	tasks, err := GetTasks(userID)
	if err != nil {
		return err
	}

	from := -1
	for i, t := range tasks {
		if t.ID == taskID {
			from = i
			break
		}
	}
	if from == -1 {
		return fmt.Errorf("task #%d not found", taskID)
	}

	if newOrder < 0 {
		newOrder = 0
	}
	if newOrder > len(tasks)-1 {
		newOrder = len(tasks) - 1
	}

	moved := tasks[from]
	tasks = append(tasks[:from], tasks[from+1:]...)
	tasks = append(tasks[:newOrder], append([]models.Task{moved}, tasks[newOrder:]...)...)

	for i := range tasks {
		if tasks[i].SortOrder != i {
			if err := DB.Model(&models.Task{}).Where("id = ?", tasks[i].ID).
				Update("sort_order", i).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// CountTasks returns how many tasks a user has
func CountTasks(userID string) (int64, error) {
	var count int64
	err := DB.Model(&models.Task{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ApplyExternalUpdate overwrites a task's content from the external
// provider and stamps its sync time (external -> local pull).
func ApplyExternalUpdate(taskID int64, text string, completed bool, dueAt *time.Time, syncedAt time.Time) error {
	return DB.Model(&models.Task{}).Where("id = ?", taskID).Updates(map[string]interface{}{
		"text":           text,
		"completed":      completed,
		"due_at":         dueAt,
		"last_synced_at": syncedAt,
	}).Error
}

// CompleteFromTombstone marks a task done when the provider reports its
// mirror deleted. The task itself is never removed.
func CompleteFromTombstone(taskID int64, syncedAt time.Time) error {
	return DB.Model(&models.Task{}).Where("id = ?", taskID).Updates(map[string]interface{}{
		"completed":      true,
		"last_synced_at": syncedAt,
	}).Error
}

// LinkExternalTask stores the provider-assigned id on a task
func LinkExternalTask(taskID int64, googleTaskID string, syncedAt time.Time) error {
	return DB.Model(&models.Task{}).Where("id = ?", taskID).Updates(map[string]interface{}{
		"google_task_id": googleTaskID,
		"last_synced_at": syncedAt,
	}).Error
}

// TouchTaskSynced stamps a task's last sync time after a push
func TouchTaskSynced(taskID int64, syncedAt time.Time) error {
	return DB.Model(&models.Task{}).Where("id = ?", taskID).
		Update("last_synced_at", syncedAt).Error
}
