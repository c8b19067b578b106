package editor

import (
	"pbr-demo/math"
	"pbr-demo/scene"
)

// TransformTool defines the active transform tool
type TransformTool int

const (
	ToolSelect TransformTool = iota
	ToolTranslate
	ToolRotate
	ToolScale
)

// Selection tracks the selected scene objects and the active light.
type Selection struct {
	Objects []*scene.Node

	// Active object (last selected, shown in the properties panel)
	ActiveObject *scene.Node

	// ActiveLight indexes Scene.Lights; -1 means no light selected.
	ActiveLight int
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{
		Objects:     make([]*scene.Node, 0),
		ActiveLight: -1,
	}
}

// Clear removes all selections
func (s *Selection) Clear() {
	s.Objects = s.Objects[:0]
	s.ActiveObject = nil
	s.ActiveLight = -1
}

// SelectSingle selects a single object, clearing the previous selection
func (s *Selection) SelectSingle(node *scene.Node) {
	s.Objects = []*scene.Node{node}
	s.ActiveObject = node
}

// ToggleObject adds/removes an object from the selection (Shift+Click)
func (s *Selection) ToggleObject(node *scene.Node) {
	for i, n := range s.Objects {
		if n == node {
			// Remove from selection
			s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
			if s.ActiveObject == node {
				if len(s.Objects) > 0 {
					s.ActiveObject = s.Objects[len(s.Objects)-1]
				} else {
					s.ActiveObject = nil
				}
			}
			return
		}
	}
	// Add to selection
	s.Objects = append(s.Objects, node)
	s.ActiveObject = node
}

// IsSelected checks if a node is selected
func (s *Selection) IsSelected(node *scene.Node) bool {
	for _, n := range s.Objects {
		if n == node {
			return true
		}
	}
	return false
}

// CycleLight advances the active light index, wrapping past the end back to
// "no light selected".
func (s *Selection) CycleLight(lightCount int) {
	if lightCount == 0 {
		s.ActiveLight = -1
		return
	}
	s.ActiveLight++
	if s.ActiveLight >= lightCount {
		s.ActiveLight = -1
	}
}

// GetSelectionCenter returns the center position of all selected objects
func (s *Selection) GetSelectionCenter() math.Vec3 {
	if len(s.Objects) == 0 {
		return math.Vec3Zero
	}

	center := math.Vec3Zero
	for _, obj := range s.Objects {
		center = center.Add(obj.Transform.Position)
	}
	return center.Div(float32(len(s.Objects)))
}

// HasSelection returns true if anything is selected
func (s *Selection) HasSelection() bool {
	return len(s.Objects) > 0 || s.ActiveLight >= 0
}
