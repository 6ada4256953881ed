package domain

// Pipeline lists the fulfillment steps a normal order walks through.
// Cancelled is not part of the pipeline: it is a terminal branch reachable
// from any non-terminal step.
var Pipeline = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusPacked,
	OrderStatusDispatched,
	OrderStatusInTransit,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// StatusRank returns the position of a status in the pipeline, or -1 for
// cancelled and unknown statuses.
func StatusRank(status string) int {
	for i, s := range Pipeline {
		if s == status {
			return i
		}
	}
	return -1
}

// IsKnownStatus reports whether status is a recognized order status.
func IsKnownStatus(status string) bool {
	return status == OrderStatusCancelled || StatusRank(status) >= 0
}

// IsTerminalStatus reports whether an order can no longer move through
// the pipeline.
func IsTerminalStatus(status string) bool {
	return status == OrderStatusDelivered || status == OrderStatusCancelled
}

// TimelineStep is one rendered entry of an order's progress view.
type TimelineStep struct {
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
	Cancelled bool   `json:"cancelled"`
}

// BuildTimeline renders the fulfillment pipeline for a given order status.
// Steps strictly before the current one are completed, the current one is
// active. A cancelled order shows no pipeline progress; instead the view
// ends with a single cancelled step.
func BuildTimeline(status string) []TimelineStep {
	if status == OrderStatusCancelled {
		steps := make([]TimelineStep, 0, len(Pipeline)+1)
		for _, s := range Pipeline {
			steps = append(steps, TimelineStep{Status: s})
		}
		steps = append(steps, TimelineStep{
			Status:    OrderStatusCancelled,
			Active:    true,
			Cancelled: true,
		})
		return steps
	}

	rank := StatusRank(status)
	steps := make([]TimelineStep, len(Pipeline))
	for i, s := range Pipeline {
		steps[i] = TimelineStep{
			Status:    s,
			Completed: rank >= 0 && i < rank,
			Active:    rank >= 0 && i == rank,
		}
	}
	return steps
}
