package parser

import (
	"regexp"
	"strings"
	"time"
)

// ParsedTask represents a task parsed from natural language
type ParsedTask struct {
	Title    string
	Folder   string
	DueDate  *time.Time
	RemindAt *time.Time
	Errors   []string
}

// ParseTitle extracts metadata from a task title using natural syntax
// Syntax: "Task title @folder due:3days remind:30 minutes"
func ParseTitle(input string) ParsedTask {
	result := ParsedTask{
		Title:  input,
		Errors: []string{},
	}

	// Extract folder (@folder-name)
	folderRegex := regexp.MustCompile(`@([a-zA-Z0-9_-]+)`)
	folderMatches := folderRegex.FindStringSubmatch(input)
	if len(folderMatches) > 1 {
		result.Folder = folderMatches[1]
		// Remove from title
		input = folderRegex.ReplaceAllString(input, "")
	}

	// Extract due date (due:3days, due:15/12/2026, due:tomorrow)
	dueRegex := regexp.MustCompile(`due:([^\s]+)`)
	dueMatches := dueRegex.FindStringSubmatch(input)
	if len(dueMatches) > 1 {
		dueDate, err := ParseDueDate(normalizeExpr(dueMatches[1]))
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+dueMatches[1]+"': "+err.Error())
		} else {
			result.DueDate = dueDate
		}
		// Remove from title
		input = dueRegex.ReplaceAllString(input, "")
	}

	// Extract reminder (remind:30min, remind:1day)
	remindRegex := regexp.MustCompile(`remind:([^\s]+)`)
	remindMatches := remindRegex.FindStringSubmatch(input)
	if len(remindMatches) > 1 {
		remindAt, err := ParseReminder(normalizeExpr(remindMatches[1]))
		if err != nil {
			result.Errors = append(result.Errors, "Invalid reminder '"+remindMatches[1]+"': "+err.Error())
		} else {
			result.RemindAt = remindAt
		}
		// Remove from title
		input = remindRegex.ReplaceAllString(input, "")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")
	result.Title = strings.TrimSpace(result.Title)

	return result
}

// normalizeExpr turns compact expressions like "3days" or "30min" into
// the spaced form the date parsers expect
func normalizeExpr(expr string) string {
	compact := regexp.MustCompile(`^(\d+)(minutes|minute|min|hours|hour|days|day|weeks|week)$`)
	if matches := compact.FindStringSubmatch(strings.ToLower(expr)); len(matches) == 3 {
		return matches[1] + " " + matches[2]
	}
	return expr
}
