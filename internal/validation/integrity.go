package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tally/internal/models"
)

// IssueType classifies a data integrity problem.
type IssueType string

const (
	IssueOrphanEntry        IssueType = "orphan_entry"
	IssueDuplicateCounterID IssueType = "duplicate_counter_id"
	IssueDuplicateEntryID   IssueType = "duplicate_entry_id"
	IssueEmptyName          IssueType = "empty_name"
	IssueNegativeInitial    IssueType = "negative_initial_count"
	IssueDuplicateTag       IssueType = "duplicate_tag"
)

type Issue struct {
	Type        IssueType
	Description string
	IDs         []string
}

type IntegrityResult struct {
	Issues []Issue
}

func (r *IntegrityResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// FormatReport returns a human-readable list of issues.
func (r *IntegrityResult) FormatReport() string {
	if !r.HasIssues() {
		return "No integrity issues detected."
	}
	var b strings.Builder
	b.WriteString("Integrity issues detected:\n")
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "- %s\n", issue.Description)
	}
	return b.String()
}

// CheckIntegrity looks for data the storage layer should never hold: entries
// without a counter, repeated ids, blank names, negative starting values and
// repeated tags on a single counter.
func CheckIntegrity(counters []models.Counter, entries []models.Entry) IntegrityResult {
	var result IntegrityResult

	known := make(map[string]bool, len(counters))
	for _, c := range counters {
		if known[c.ID] {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueDuplicateCounterID,
				Description: fmt.Sprintf("counter id %s is used more than once", c.ID),
				IDs:         []string{c.ID},
			})
		}
		known[c.ID] = true

		if strings.TrimSpace(c.Name) == "" {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueEmptyName,
				Description: fmt.Sprintf("counter %s has an empty name", c.ID),
				IDs:         []string{c.ID},
			})
		}
		if c.InitialCount < 0 {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueNegativeInitial,
				Description: fmt.Sprintf("counter %q starts at %d", c.Name, c.InitialCount),
				IDs:         []string{c.ID},
			})
		}

		seen := make(map[string]bool, len(c.Tags))
		for _, tag := range c.Tags {
			if seen[tag] {
				result.Issues = append(result.Issues, Issue{
					Type:        IssueDuplicateTag,
					Description: fmt.Sprintf("counter %q has tag %q more than once", c.Name, tag),
					IDs:         []string{c.ID},
				})
			}
			seen[tag] = true
		}
	}

	entryIDs := make(map[string]bool, len(entries))
	orphans := make(map[string][]string)
	for _, e := range entries {
		if entryIDs[e.ID] {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueDuplicateEntryID,
				Description: fmt.Sprintf("entry id %s is used more than once", e.ID),
				IDs:         []string{e.ID},
			})
		}
		entryIDs[e.ID] = true
		if !known[e.CounterID] {
			orphans[e.CounterID] = append(orphans[e.CounterID], e.ID)
		}
	}
	for counterID, ids := range orphans {
		result.Issues = append(result.Issues, Issue{
			Type:        IssueOrphanEntry,
			Description: fmt.Sprintf("%d entries reference missing counter %s", len(ids), counterID),
			IDs:         ids,
		})
	}

	return result
}
