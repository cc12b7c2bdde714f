package domain

import (
	"fmt"
	"strings"
	"time"
)

type Quote struct {
	ID     int64
	Quote  string
	Author string
}

type DailyQuote struct {
	ID        int64
	QuoteID   int64
	Timestamp time.Time
}

type TaskStatus string

const (
	TaskIncomplete TaskStatus = "incomplete"
	TaskComplete   TaskStatus = "complete"
)

func (s TaskStatus) IsValid() bool {
	return s == TaskIncomplete || s == TaskComplete
}

func ParseTaskStatus(value string) (TaskStatus, error) {
	parsed := TaskStatus(strings.ToLower(strings.TrimSpace(value)))
	if parsed == "" {
		return TaskIncomplete, nil
	}
	if !parsed.IsValid() {
		return "", fmt.Errorf("invalid task status: %s", value)
	}
	return parsed, nil
}

type Task struct {
	ID          int64
	Name        string
	Description string
	Status      TaskStatus
	CreatedAt   time.Time
	DueDate     *time.Time
	RenewalDays int
	ParentID    *int64
}

type SearchEntry struct {
	ID        string
	Query     string
	Website   string
	AllInText string
	Timestamp time.Time
}

// QueryString is the query as typed into the search engine, operators included.
func (e SearchEntry) QueryString() string {
	return BuildQueryString(e.Query, e.Website, e.AllInText)
}

func BuildQueryString(query, site, allInText string) string {
	var b strings.Builder
	b.WriteString(query)
	if site != "" {
		b.WriteString(" site:")
		b.WriteString(site)
	}
	if allInText != "" {
		b.WriteString(" allintext:")
		b.WriteString(allInText)
	}
	return b.String()
}
