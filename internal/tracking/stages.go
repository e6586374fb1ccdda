package tracking

import (
	"strings"

	"github.com/prontopizzas/pronto-backend/pkg/enums"
)

var stageLabels = map[enums.OrderStatus]string{
	enums.OrderStatusOrdered:    "Order Placed",
	enums.OrderStatusPreparing:  "Preparing your order",
	enums.OrderStatusBaking:     "Baking in the oven",
	enums.OrderStatusReady:      "Ready for pickup/delivery",
	enums.OrderStatusDelivering: "Out for delivery",
	enums.OrderStatusDelivered:  "Delivered",
}

// Stage is one step of the progress bar.
type Stage struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

// CurrentStep maps a free-text status to its 1-based stage; unknown is 0.
func CurrentStep(status string) int {
	trimmed := strings.TrimSpace(status)
	for i, stage := range enums.OrderStatusProgression() {
		if strings.EqualFold(stage.Key(), trimmed) {
			return i + 1
		}
	}
	return 0
}

// StatusDisplay is the stage label for known statuses and the raw value otherwise.
func StatusDisplay(status string) string {
	step := CurrentStep(status)
	if step == 0 {
		return status
	}
	return stageLabels[enums.OrderStatusProgression()[step-1]]
}

// Stages renders the fixed progression; every stage up to step is completed
// and only step itself is current.
func Stages(step int) []Stage {
	progression := enums.OrderStatusProgression()
	out := make([]Stage, 0, len(progression))
	for i, status := range progression {
		out = append(out, Stage{
			Key:       status.Key(),
			Label:     stageLabels[status],
			Completed: step > i,
			Current:   step == i+1,
		})
	}
	return out
}
