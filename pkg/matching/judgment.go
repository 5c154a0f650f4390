// Package matching turns the vision model's loose text into a committed
// resolution: parse the embedded judgment object, then apply the
// deterministic first-match / first-candidate-fallback policy.
package matching

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/minhquyminhquy/LocalLens/pkg/models"
)

// ParseJudgment extracts the judgment object embedded in the model's raw
// response. The model wraps its JSON in prose or markdown fences often enough
// that a strict parse of the whole text is useless; instead the substring
// from the first '{' to the last '}' is parsed. A failure here is recoverable
// and routes the pipeline through the fallback path.
func ParseJudgment(raw string) (*models.AIJudgment, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var judgment models.AIJudgment
	if err := json.Unmarshal([]byte(raw[start:end+1]), &judgment); err != nil {
		return nil, fmt.Errorf("failed to parse judgment: %w", err)
	}

	return &judgment, nil
}
