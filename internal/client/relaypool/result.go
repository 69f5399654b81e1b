package relaypool

import (
	"fmt"
	"time"
)

// Outcome records how a single relay answered one publish attempt. Outcomes
// are transient: they exist to be aggregated into a PublishResult and to feed
// the progress callback.
type Outcome struct {
	RelayURL string
	Accepted bool
	Message  string
	Latency  time.Duration
}

func (o Outcome) statusLine() string {
	if o.Accepted {
		return fmt.Sprintf("%s: accepted (%s)", o.RelayURL, o.Latency.Round(time.Millisecond))
	}
	return fmt.Sprintf("%s: %s", o.RelayURL, o.Message)
}

// PublishResult is the aggregate of one fan-out publish. OverallSuccess holds
// iff at least one relay accepted; callers that need a stricter threshold
// check SuccessRate themselves.
type PublishResult struct {
	EventID        string
	Published      []string
	Failed         []string
	SuccessRate    float64
	OverallSuccess bool
}

// Progress is invoked after each relay attempt settles, in settle order.
// completed is strictly non-decreasing and reaches total exactly when all
// attempts have settled.
type Progress func(completed, total int, status string)
