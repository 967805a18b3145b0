package picker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/sahibbilal/ollaama-gpt/internal/api"
)

// FormatSize renders a byte count as a human readable string.
func FormatSize(bytes int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// ModelItem wraps an installed model for display in a picker.
type ModelItem struct {
	Model api.Model
}

func (i ModelItem) Title() string {
	return i.Model.Name
}

func (i ModelItem) Description() string {
	desc := FormatSize(i.Model.Size)
	if i.Model.ModifiedAt != "" {
		desc += " | modified " + i.Model.ModifiedAt
	}
	return desc
}

func (i ModelItem) FilterValue() string {
	return i.Model.Name
}

// NewModelPicker creates a new picker for installed models in loading state.
func NewModelPicker(width, height int) Model {
	return NewLoading(width, height)
}

// SetModels sets the installed models in the picker.
func SetModels(m *Model, models []api.Model) {
	items := make([]list.Item, len(models))
	for i, model := range models {
		items[i] = ModelItem{Model: model}
	}
	m.SetItems("Select a model", items)
}

// GetModel extracts the installed model from a selected item.
func GetModel(item list.Item) *api.Model {
	if mi, ok := item.(ModelItem); ok {
		return &mi.Model
	}
	return nil
}
