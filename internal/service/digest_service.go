package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskdeck/internal/dates"
	"taskdeck/internal/model"
	"taskdeck/internal/repository"
)

// digestWindowDays is how far ahead the digest looks for upcoming tasks.
const digestWindowDays = 2

// DigestService builds a plain-text summary of a user's overdue and
// soon-due tasks for the daily notification.
type DigestService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewDigestService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *DigestService {
	return &DigestService{taskRepo: taskRepo, categoryRepo: categoryRepo}
}

// DailyDigest returns the summary for the user, or "" when nothing is
// overdue or due within the window.
func (s *DigestService) DailyDigest(ctx context.Context, user model.User, now time.Time) (string, error) {
	tasks, err := s.taskRepo.ListIncomplete(ctx, user.ID)
	if err != nil {
		return "", err
	}

	var overdue, upcoming []model.Task
	for _, task := range tasks {
		switch {
		case dates.IsPast(task.DueDate, now):
			overdue = append(overdue, task)
		case dates.WithinDays(task.DueDate, now, digestWindowDays):
			upcoming = append(upcoming, task)
		}
	}

	if len(overdue) == 0 && len(upcoming) == 0 {
		return "", nil
	}

	categories, err := s.categoryRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return "", err
	}
	catNames := make(map[string]string, len(categories))
	for _, cat := range categories {
		catNames[cat.ID] = cat.Name
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Task digest for %s\n", now.Format("Jan 2, 2006")))

	if len(overdue) > 0 {
		builder.WriteString("\nOverdue:\n")
		for _, task := range overdue {
			builder.WriteString(formatDigestLine(task, catNames, now))
		}
	}

	if len(upcoming) > 0 {
		builder.WriteString("\nComing up:\n")
		for _, task := range upcoming {
			builder.WriteString(formatDigestLine(task, catNames, now))
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatDigestLine(task model.Task, catNames map[string]string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("- ")
	sb.WriteString(strings.TrimSpace(task.Title))

	if name, ok := catNames[task.CategoryID]; ok {
		trimmed := strings.TrimSpace(name)
		if trimmed != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", trimmed))
		}
	}

	sb.WriteString(fmt.Sprintf(", due %s", dates.Relative(task.DueDate, now)))
	if task.Priority == model.PriorityHigh {
		sb.WriteString(" [high]")
	}

	sb.WriteByte('\n')
	return sb.String()
}
