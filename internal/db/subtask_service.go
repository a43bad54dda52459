package db

import (
	"fmt"
	"strings"

	"github.com/ermekov/taskfold/internal/models"
)

// CreateSubtask adds a checklist item under one of the user's tasks
func CreateSubtask(userID string, taskID int64, text string) (*models.Subtask, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("subtask text is required")
	}

	// Parent must exist and belong to the user
	task, err := GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	subtask := models.Subtask{
		TaskID:    task.ID,
		Text:      text,
		SortOrder: nextSubtaskOrder(task.ID),
	}

	if err := DB.Create(&subtask).Error; err != nil {
		return nil, err
	}
	return &subtask, nil
}

func nextSubtaskOrder(taskID int64) int {
	var max *int
	DB.Model(&models.Subtask{}).Where("task_id = ?", taskID).Select("MAX(sort_order)").Scan(&max)
	if max == nil {
		return 0
	}
	return *max + 1
}

// GetSubtasks retrieves a task's subtasks in display order
func GetSubtasks(userID string, taskID int64) ([]models.Subtask, error) {
	if _, err := GetTaskByID(userID, taskID); err != nil {
		return nil, err
	}

	var subtasks []models.Subtask
	err := DB.Where("task_id = ?", taskID).Order("sort_order").Find(&subtasks).Error
	if err != nil {
		return nil, err
	}
	return subtasks, nil
}

// ToggleSubtask sets a subtask's completion flag
func ToggleSubtask(userID string, subtaskID int64, completed bool) (*models.Subtask, error) {
	var subtask models.Subtask
	err := DB.Joins("JOIN tasks ON tasks.id = subtasks.task_id").
		Where("subtasks.id = ? AND tasks.user_id = ?", subtaskID, userID).
		First(&subtask).Error
	if err != nil {
		return nil, fmt.Errorf("subtask #%d not found", subtaskID)
	}

	subtask.Completed = completed
	if err := DB.Save(&subtask).Error; err != nil {
		return nil, err
	}
	return &subtask, nil
}

// CountSubtasks returns how many subtasks exist across a user's tasks
func CountSubtasks(userID string) (int64, error) {
	var count int64
	err := DB.Model(&models.Subtask{}).
		Joins("JOIN tasks ON tasks.id = subtasks.task_id").
		Where("tasks.user_id = ?", userID).
		Count(&count).Error
	return count, err
}
