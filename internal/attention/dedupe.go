package attention

import "github.com/teamdeck/attention-engine/internal/model"

// dedupe collapses items describing the same underlying object down to one
// survivor per (source_type, source_id). The survivor is the first item in
// the model.Less order: highest classification priority, then highest score,
// then most recent activity, then lexically smallest attention_id.
func dedupe(items []model.AttentionItem) []model.AttentionItem {
	survivors := make(map[model.DedupKey]int, len(items))
	out := make([]model.AttentionItem, 0, len(items))

	for _, item := range items {
		key := item.Key()
		idx, seen := survivors[key]
		if !seen {
			survivors[key] = len(out)
			out = append(out, item)
			continue
		}
		if model.Less(&item, &out[idx]) {
			out[idx] = item
		}
	}
	return out
}
