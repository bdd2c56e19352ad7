package domain

// FunnelMetadata is the per-session, merge-only key/value bag carried through
// the funnel (time commitment, micro-commitments, email, current screen,
// timestamps). It is created empty at quiz start and merged on every
// funnel-step call, never fully overwritten.
type FunnelMetadata map[string]interface{}

// Well-known metadata keys.
const (
	MetadataKeyCurrentScreen    = "current_screen"
	MetadataKeyTimeCommitment   = "time_commitment"
	MetadataKeyMicroCommitments = "micro_commitments"
	MetadataKeyEmail            = "email"
	MetadataKeyFirstName        = "first_name"
	MetadataKeyCheckoutCanceled = "checkout_canceled"
	MetadataKeyCompletedAt      = "completed_at"
)

// MergeFunnelMetadata merges a patch into existing metadata and returns the
// merged copy. The merge is shallow except for the micro_commitments map,
// which is merged key-wise so individual commitment flags accumulate across
// funnel steps instead of replacing each other.
func MergeFunnelMetadata(existing, patch FunnelMetadata) FunnelMetadata {
	merged := make(FunnelMetadata, len(existing)+len(patch))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range patch {
		if k == MetadataKeyMicroCommitments {
			merged[k] = mergeMicroCommitments(merged[k], v)
			continue
		}
		merged[k] = v
	}
	return merged
}

func mergeMicroCommitments(existing, patch interface{}) interface{} {
	patchMap, ok := asStringMap(patch)
	if !ok {
		return patch
	}
	existingMap, ok := asStringMap(existing)
	if !ok {
		return patchMap
	}
	merged := make(map[string]interface{}, len(existingMap)+len(patchMap))
	for k, v := range existingMap {
		merged[k] = v
	}
	for k, v := range patchMap {
		merged[k] = v
	}
	return merged
}

func asStringMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case FunnelMetadata:
		return m, true
	}
	return nil, false
}
