// Package karma implements Clem's reputation system: parsing ++/-- style
// mention annotations out of chat messages and keeping the per-user totals.
package karma

import (
	"fmt"
	"regexp"
)

// Extract scans message content for karma annotations aimed at the mentioned
// users. An annotation is a mention token (<@id> or <@!id>), whitespace, then
// a run of + or - characters. Each run is worth len(run)/2, negative for -.
// Multiple runs aimed at the same user sum into one delta.
//
// A lone + or - floors to zero and is dropped outright: it creates no entry
// and no announcement. Users with no matching run are absent from the result.
func Extract(content string, mentionedUserIDs []string) map[string]int {
	deltas := make(map[string]int)
	for _, userID := range mentionedUserIDs {
		pattern := regexp.MustCompile(fmt.Sprintf(`<@!?%s>\s+(\++|-+)`, regexp.QuoteMeta(userID)))
		matches := pattern.FindAllStringSubmatch(content, -1)
		for _, match := range matches {
			run := match[1]
			change := len(run) / 2
			if change == 0 {
				continue
			}
			if run[0] == '-' {
				change = -change
			}
			deltas[userID] += change
		}
	}
	return deltas
}
