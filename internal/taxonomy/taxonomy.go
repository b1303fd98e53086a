package taxonomy

// GroupID is the stable identifier of a category group.
type GroupID string

const (
	ParseHTML            GroupID = "parseHTML"
	StyleLayout          GroupID = "styleLayout"
	PaintCompositeRender GroupID = "paintCompositeRender"
	ScriptParseCompile   GroupID = "scriptParseCompile"
	ScriptEvaluation     GroupID = "scriptEvaluation"
	GarbageCollection    GroupID = "garbageCollection"
	Other                GroupID = "other"
)

// Group is a named functional category of main-thread work.
type Group struct {
	ID    GroupID
	Label string

	// TraceEventNames lists the raw event names that resolve to this group.
	TraceEventNames []string
}

// Taxonomy maps raw trace event names to category groups. It is immutable
// after construction and safe for concurrent use.
type Taxonomy struct {
	groups []Group
	byName map[string]*Group
	other  *Group
}

// New builds a Taxonomy from the given groups, in order. The Other group is
// appended implicitly and never receives explicit names. A name listed in two
// groups resolves to the first one.
func New(groups []Group) *Taxonomy {
	t := &Taxonomy{
		groups: make([]Group, 0, len(groups)+1),
		byName: make(map[string]*Group),
	}

	for _, g := range groups {
		if g.ID == Other {
			continue
		}
		names := make([]string, len(g.TraceEventNames))
		copy(names, g.TraceEventNames)
		g.TraceEventNames = names
		t.groups = append(t.groups, g)
	}
	t.groups = append(t.groups, Group{ID: Other, Label: "Other"})

	// Pointers are taken only once the slice stops growing.
	for i := range t.groups {
		g := &t.groups[i]
		for _, name := range g.TraceEventNames {
			if _, dup := t.byName[name]; !dup {
				t.byName[name] = g
			}
		}
	}
	t.other = &t.groups[len(t.groups)-1]

	return t
}

// Lookup returns the group recognizing the raw event name, if any.
func (t *Taxonomy) Lookup(eventName string) (*Group, bool) {
	g, ok := t.byName[eventName]
	return g, ok
}

// Recognizes reports whether any group lists the event name.
func (t *Taxonomy) Recognizes(eventName string) bool {
	_, ok := t.byName[eventName]
	return ok
}

// Other returns the fallback group.
func (t *Taxonomy) Other() *Group {
	return t.other
}

// Group returns the group with the given ID.
func (t *Taxonomy) Group(id GroupID) (*Group, bool) {
	for i := range t.groups {
		if t.groups[i].ID == id {
			return &t.groups[i], true
		}
	}
	return nil, false
}

// Groups returns a copy of all groups in order, Other last.
func (t *Taxonomy) Groups() []Group {
	out := make([]Group, len(t.groups))
	copy(out, t.groups)
	return out
}

// EventNames returns every recognized event name.
func (t *Taxonomy) EventNames() []string {
	names := make([]string, 0, len(t.byName))
	for _, g := range t.groups {
		for _, name := range g.TraceEventNames {
			if t.byName[name] == nil || t.byName[name].ID != g.ID {
				continue
			}
			names = append(names, name)
		}
	}
	return names
}
