package commit

import (
	"strings"
	"time"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// Compose builds the commit message for changes staged at now. The first
// change note becomes the headline; the remaining non-empty notes become
// bullets under the "Updated:" header.
func Compose(changes []string, now time.Time, entries []domain.StatusEntry) domain.CommitMessage {
	ts := now.Format(domain.CommitTimeLayout)
	msg := domain.CommitMessage{
		Headline:     "Updated: " + ts,
		Timestamp:    ts,
		FilesChanged: entries,
	}
	if len(changes) == 0 {
		return msg
	}

	msg.HasNotes = true
	if headline := strings.TrimSpace(changes[0]); headline != "" {
		msg.Headline = headline
	}
	for _, change := range changes[1:] {
		change = strings.TrimSpace(change)
		if change == "" {
			continue
		}
		msg.Changes = append(msg.Changes, change)
	}
	return msg
}
