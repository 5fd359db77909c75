package domain

import "fmt"

type TaskStatus string

const (
	TaskNotStarted    TaskStatus = "not_started"
	TaskInProgress    TaskStatus = "in_progress"
	TaskPendingReview TaskStatus = "pending_review"
	TaskApproved      TaskStatus = "approved"
	TaskRetake        TaskStatus = "retake"
	TaskFinal         TaskStatus = "final"
)

var taskStatuses = []TaskStatus{TaskNotStarted, TaskInProgress, TaskPendingReview, TaskApproved, TaskRetake, TaskFinal}

func (s TaskStatus) Valid() bool {
	for _, v := range taskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func ParseTaskStatus(raw string) (TaskStatus, error) {
	s := TaskStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown task status %q", ErrInvalidArgument, raw)
	}
	return s, nil
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) Valid() bool {
	for _, v := range priorities {
		if p == v {
			return true
		}
	}
	return false
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(raw)
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown priority %q", ErrInvalidArgument, raw)
	}
	return p, nil
}
