package slots

import (
	"strings"

	"github.com/provida/volunteer-portal/pkg/core/model"
)

// order is the fixed inspection order; slot1 always wins when both are free
var order = []model.Slot{model.Slot1, model.Slot2}

// ChooseSlot returns the first empty slot of the activity.
// ok is false when both slots are occupied.
func ChooseSlot(activity model.Activity) (slot model.Slot, ok bool) {
	for _, s := range order {
		if activity.SlotValue(s) == "" {
			return s, true
		}
	}
	return 0, false
}

// StatusOf derives the display status from the number of free slots
func StatusOf(activity model.Activity) model.SlotStatus {
	free := 0
	for _, s := range order {
		if activity.SlotValue(s) == "" {
			free++
		}
	}

	switch free {
	case 0:
		return model.StatusCompleted
	case 1:
		return model.StatusOneOpen
	default:
		return model.StatusBothOpen
	}
}

// IsOpen reports whether at least one slot is free
func IsOpen(activity model.Activity) bool {
	_, ok := ChooseSlot(activity)
	return ok
}

// Holds returns the slot occupied by name, comparing trimmed values case-insensitively
func Holds(activity model.Activity, name string) (model.Slot, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}
	for _, s := range order {
		if strings.EqualFold(activity.SlotValue(s), name) {
			return s, true
		}
	}
	return 0, false
}
