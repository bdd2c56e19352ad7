package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeFunnelMetadata(t *testing.T) {
	t.Run("shallow merge keeps untouched keys", func(t *testing.T) {
		existing := FunnelMetadata{
			MetadataKeyEmail:         "a@example.com",
			MetadataKeyCurrentScreen: "B",
		}
		patch := FunnelMetadata{
			MetadataKeyCurrentScreen: "C1",
		}

		merged := MergeFunnelMetadata(existing, patch)
		assert.Equal(t, "a@example.com", merged[MetadataKeyEmail])
		assert.Equal(t, "C1", merged[MetadataKeyCurrentScreen])
	})

	t.Run("micro commitments merge key-wise", func(t *testing.T) {
		existing := FunnelMetadata{
			MetadataKeyMicroCommitments: map[string]interface{}{
				"daily_check_in": true,
			},
		}
		patch := FunnelMetadata{
			MetadataKeyMicroCommitments: map[string]interface{}{
				"no_snooze": true,
			},
		}

		merged := MergeFunnelMetadata(existing, patch)
		commitments := merged[MetadataKeyMicroCommitments].(map[string]interface{})
		assert.Equal(t, true, commitments["daily_check_in"])
		assert.Equal(t, true, commitments["no_snooze"])
	})

	t.Run("micro commitment flags can be overwritten individually", func(t *testing.T) {
		existing := FunnelMetadata{
			MetadataKeyMicroCommitments: map[string]interface{}{"no_snooze": true},
		}
		patch := FunnelMetadata{
			MetadataKeyMicroCommitments: map[string]interface{}{"no_snooze": false},
		}

		merged := MergeFunnelMetadata(existing, patch)
		commitments := merged[MetadataKeyMicroCommitments].(map[string]interface{})
		assert.Equal(t, false, commitments["no_snooze"])
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		existing := FunnelMetadata{MetadataKeyEmail: "a@example.com"}
		patch := FunnelMetadata{MetadataKeyEmail: "b@example.com"}

		_ = MergeFunnelMetadata(existing, patch)
		assert.Equal(t, "a@example.com", existing[MetadataKeyEmail])
	})

	t.Run("nil existing behaves like empty", func(t *testing.T) {
		merged := MergeFunnelMetadata(nil, FunnelMetadata{MetadataKeyFirstName: "Ann"})
		assert.Equal(t, "Ann", merged[MetadataKeyFirstName])
	})

	t.Run("non-map micro commitment patch replaces", func(t *testing.T) {
		existing := FunnelMetadata{
			MetadataKeyMicroCommitments: map[string]interface{}{"daily_check_in": true},
		}
		patch := FunnelMetadata{MetadataKeyMicroCommitments: "reset"}

		merged := MergeFunnelMetadata(existing, patch)
		assert.Equal(t, "reset", merged[MetadataKeyMicroCommitments])
	})
}
