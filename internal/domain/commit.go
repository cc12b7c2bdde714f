package domain

import "strings"

const CommitTimeLayout = "2006-01-02 15:04:05"

// CommitMessage is the structured form of a composed commit message.
// Changes holds the bullet lines of the body; it is only rendered together
// with the "Updated:" header when the caller supplied change notes.
type CommitMessage struct {
	Headline     string
	Timestamp    string
	HasNotes     bool
	Changes      []string
	FilesChanged []StatusEntry
}

func (m CommitMessage) String() string {
	var b strings.Builder
	b.WriteString(m.Headline)
	b.WriteString("\n\n")
	if m.HasNotes {
		b.WriteString("Updated: ")
		b.WriteString(m.Timestamp)
		b.WriteByte('\n')
		if len(m.Changes) > 0 {
			b.WriteString("\nChanges:\n")
			for _, change := range m.Changes {
				b.WriteString("- ")
				b.WriteString(change)
				b.WriteByte('\n')
			}
		}
	}
	b.WriteString("\nFiles Changed:\n")
	for _, entry := range m.FilesChanged {
		b.WriteString(entry.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Identity is the author/committer used for new commits.
type Identity struct {
	Name  string
	Email string
}
