package calibrate

import (
	"sort"

	"github.com/adapt-sciences/adapt"
)

// observation is an internal representation of one administration of an
// item for training.
type observation struct {
	theta float64 // ability estimate when the item was served
	label float64 // 1 if correct, 0 otherwise
}

// formatLogs groups response logs by item id, preserving each item's
// administration order by timestamp.
func formatLogs(logs []adapt.ResponseLog) map[string][]observation {
	if len(logs) == 0 {
		return nil
	}

	// Group by item id.
	groups := make(map[string][]adapt.ResponseLog)
	for _, rec := range logs {
		groups[rec.ItemID] = append(groups[rec.ItemID], rec)
	}

	result := make(map[string][]observation, len(groups))
	for itemID, itemLogs := range groups {
		sort.Slice(itemLogs, func(i, j int) bool {
			return itemLogs[i].Timestamp.Before(itemLogs[j].Timestamp)
		})

		obs := make([]observation, len(itemLogs))
		for i, rec := range itemLogs {
			label := 0.0
			if rec.Correct {
				label = 1.0
			}
			obs[i] = observation{theta: rec.Theta, label: label}
		}
		result[itemID] = obs
	}

	return result
}
