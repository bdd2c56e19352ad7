package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	assert.Equal(t,
		"quizfunnel:funnel:result:session-1",
		GenerateCacheKey("funnel", "result", "session-1"))

	assert.Equal(t,
		"quizfunnel:funnel:insights:session-1:stress-check_v1",
		GenerateCacheKey("funnel", "insights", "session-1", "stress-check", "v1"))
}
