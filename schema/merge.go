package schema

import (
	"fmt"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

// MergeDrafts lays the overlay draft over the base draft (RFC 7386 merge
// semantics): scalar and object fields set in the overlay win, fields it
// leaves unset keep their base value, and an item list in the overlay
// replaces the base list wholesale. Used when a dialogue is restarted with
// fresh extraction output while earlier answers should survive.
func MergeDrafts(base, overlay OrderDraft) (OrderDraft, error) {
	baseJSON, err := EncodeDraft(base)
	if err != nil {
		return OrderDraft{}, err
	}
	overlayJSON, err := EncodeDraft(overlay)
	if err != nil {
		return OrderDraft{}, err
	}
	mergedJSON, err := jsonpatch.MergePatch(baseJSON, overlayJSON)
	if err != nil {
		return OrderDraft{}, fmt.Errorf("merge drafts: %w", err)
	}
	var merged OrderDraft
	if err := sonic.Unmarshal(mergedJSON, &merged); err != nil {
		return OrderDraft{}, fmt.Errorf("decode merged draft: %w", err)
	}
	return merged, nil
}
