package db

import (
	"fmt"
	"strings"

	"github.com/ermekov/taskfold/internal/models"
)

// FolderColors is the fixed palette folders may use
var FolderColors = []string{"purple", "blue", "green", "yellow", "orange", "red", "pink", "grey"}

// CreateFolderRequest holds the data needed to create a folder
type CreateFolderRequest struct {
	UserID string
	Name   string
	Color  string
}

// CreateFolder creates a folder at the end of the user's folder list
func CreateFolder(req CreateFolderRequest) (*models.Folder, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 1 || len(name) > 100 {
		return nil, fmt.Errorf("folder name must be 1-100 characters")
	}

	color := req.Color
	if color == "" {
		color = FolderColors[0]
	}
	if !validFolderColor(color) {
		return nil, fmt.Errorf("invalid folder color %q. Use one of: %s", color, strings.Join(FolderColors, ", "))
	}

	folder := models.Folder{
		UserID:    req.UserID,
		Name:      name,
		Color:     color,
		SortOrder: nextFolderOrder(req.UserID),
	}

	if err := DB.Create(&folder).Error; err != nil {
		return nil, err
	}

	return &folder, nil
}

func validFolderColor(color string) bool {
	for _, c := range FolderColors {
		if c == color {
			return true
		}
	}
	return false
}

// nextFolderOrder returns the next free sort position for a user's folders
func nextFolderOrder(userID string) int {
	var max *int
	DB.Model(&models.Folder{}).Where("user_id = ?", userID).Select("MAX(sort_order)").Scan(&max)
	if max == nil {
		return 0
	}
	return *max + 1
}

// GetFolders retrieves a user's folders in display order
func GetFolders(userID string) ([]models.Folder, error) {
	var folders []models.Folder
	err := DB.Where("user_id = ?", userID).Order("sort_order").Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

// GetFolderByID returns one of the user's folders
func GetFolderByID(userID string, folderID int64) (*models.Folder, error) {
	var folder models.Folder
	if err := DB.Where("id = ? AND user_id = ?", folderID, userID).First(&folder).Error; err != nil {
		return nil, fmt.Errorf("folder #%d not found", folderID)
	}
	return &folder, nil
}

// DeleteFolder removes a folder; its tasks keep existing without a folder
func DeleteFolder(userID string, folderID int64) error {
	folder, err := GetFolderByID(userID, folderID)
	if err != nil {
		return err
	}

	if err := DB.Model(&models.Task{}).Where("folder_id = ?", folder.ID).
		Update("folder_id", nil).Error; err != nil {
		return err
	}
	return DB.Delete(folder).Error
}

// CountFolders returns how many folders a user has
func CountFolders(userID string) (int64, error) {
	var count int64
	err := DB.Model(&models.Folder{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
