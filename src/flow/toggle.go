package flow

// ToggleEvent is the single upward event a toggle group emits per
// transition: either a new active choice or a cleared group.
type ToggleEvent struct {
	Group   string
	Choice  string
	Cleared bool
}

// ToggleGroup is the control panel's per-group state machine with
// radio-button semantics plus toggle-off: at most one member is active;
// selecting the active member clears the group; selecting another member
// deactivates its siblings.
//
// The active id held here is an optimistic local echo for instant visual
// feedback. The store's filter state remains authoritative;
// SyncAuthoritative overwrites the echo whenever they disagree.
type ToggleGroup struct {
	id       string
	choices  []string
	active   string
	onChange func(ToggleEvent)
}

// NewToggleGroup builds a group in the "none active" state.
func NewToggleGroup(id string, choices []string, onChange func(ToggleEvent)) *ToggleGroup {
	return &ToggleGroup{id: id, choices: append([]string{}, choices...), onChange: onChange}
}

// ID returns the group identifier.
func (g *ToggleGroup) ID() string { return g.id }

// Choices returns the member ids in display order.
func (g *ToggleGroup) Choices() []string { return append([]string{}, g.choices...) }

// Active returns the locally active choice, "" when none.
func (g *ToggleGroup) Active() string { return g.active }

// Select applies one user click and emits exactly one event describing the
// resulting state. Clicking the active member clears the group; clicking
// any other member activates it and deactivates the rest. Unknown choices
// are ignored without an event.
func (g *ToggleGroup) Select(choice string) {
	known := false
	for _, c := range g.choices {
		if c == choice {
			known = true
			break
		}
	}
	if !known {
		return
	}
	var ev ToggleEvent
	if g.active == choice {
		g.active = ""
		ev = ToggleEvent{Group: g.id, Cleared: true}
	} else {
		g.active = choice
		ev = ToggleEvent{Group: g.id, Choice: choice}
	}
	if g.onChange != nil {
		g.onChange(ev)
	}
}

// SyncAuthoritative overwrites the local echo with the store's view of this
// group's selection. No event is emitted: authoritative updates flow
// downward only, they never loop back up.
func (g *ToggleGroup) SyncAuthoritative(choice string) {
	g.active = choice
}
