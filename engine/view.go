package engine

// View is the ephemeral editor UI state: which section is active in the
// preview, which settings panel is expanded, and the preview viewport. It is
// never persisted and never part of the configuration tree.
type View struct {
	ActiveView   string  `json:"activeView"`
	ExpandedItem *string `json:"expandedItem"`
	IsDesktop    bool    `json:"isDesktop"`
}

func defaultView() View {
	expanded := "design"
	return View{
		ActiveView:   "design",
		ExpandedItem: &expanded,
		IsDesktop:    true,
	}
}

// View returns a copy of the current editor view state.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view
}

func (e *Engine) SetActiveView(view string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.ActiveView = view
}

// SetExpandedItem expands one settings panel; nil collapses all of them.
func (e *Engine) SetExpandedItem(item *string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.ExpandedItem = item
}

func (e *Engine) SetIsDesktop(isDesktop bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.IsDesktop = isDesktop
}
