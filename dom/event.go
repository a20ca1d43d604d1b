package dom

// EventInit configures a new Event.
type EventInit struct {
	Bubbles    bool
	Cancelable bool
	Detail     any
}

// Event is a synchronously dispatched host event. Detail is a payload slot
// that listeners may write into; the dispatcher can read it as soon as
// DispatchEvent returns.
type Event struct {
	Type   string
	Detail any

	bubbles    bool
	cancelable bool

	target   *Node
	current  *Node
	stopped  bool
	canceled bool
}

type listener struct {
	fn func(*Event)
}

// NewEvent creates an event of the given type.
func NewEvent(typ string, init EventInit) *Event {
	return &Event{
		Type:       typ,
		Detail:     init.Detail,
		bubbles:    init.Bubbles,
		cancelable: init.Cancelable,
	}
}

// Target returns the node the event was dispatched from.
func (e *Event) Target() *Node { return e.target }

// CurrentTarget returns the node whose listener is running.
func (e *Event) CurrentTarget() *Node { return e.current }

// StopPropagation prevents the event from reaching further nodes. Remaining
// listeners on the current node still run.
func (e *Event) StopPropagation() { e.stopped = true }

// PreventDefault marks a cancelable event as canceled.
func (e *Event) PreventDefault() {
	if e.cancelable {
		e.canceled = true
	}
}

// DefaultPrevented reports whether PreventDefault took effect.
func (e *Event) DefaultPrevented() bool { return e.canceled }

// AddEventListener registers fn for events of type typ on n and returns a
// function that removes it.
func (n *Node) AddEventListener(typ string, fn func(*Event)) (remove func()) {
	if n.listeners == nil {
		n.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: fn}
	n.listeners[typ] = append(n.listeners[typ], l)
	return func() {
		list := n.listeners[typ]
		for i, cur := range list {
			if cur == l {
				n.listeners[typ] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// DispatchEvent runs the event's listeners along its propagation path and
// returns false if a listener canceled it.
func (n *Node) DispatchEvent(e *Event) bool {
	e.target = n
	path := []*Node{n}
	if e.bubbles {
		path = EventPath(n)
	}
	for _, cur := range path {
		e.current = cur
		list := cur.listeners[e.Type]
		snapshot := make([]*listener, len(list))
		copy(snapshot, list)
		for _, l := range snapshot {
			l.fn(e)
		}
		if e.stopped {
			break
		}
	}
	e.current = nil
	return !e.canceled
}

// EventPath returns the composed propagation path starting at n: a light child
// assigned to a slot continues at that slot, a shadow root continues at its
// host, any other node at its parent.
func EventPath(n *Node) []*Node {
	var path []*Node
	for cur := n; cur != nil; cur = composedParent(cur) {
		path = append(path, cur)
	}
	return path
}

func composedParent(n *Node) *Node {
	if slot := AssignedSlot(n); slot != nil {
		return slot
	}
	if n.parent != nil {
		return n.parent
	}
	return n.host
}

// SlotName returns the projection group n belongs to; "" is the default group.
func SlotName(n *Node) string {
	if n.Type != ElementNode {
		return ""
	}
	name, _ := n.GetAttribute(SlotAttr)
	return name
}

// AssignedSlot returns the slot element inside the parent's shadow root that n
// is projected into, or nil when the parent has no shadow root or no slot
// matches.
func AssignedSlot(n *Node) *Node {
	if n.parent == nil || n.parent.shadow == nil {
		return nil
	}
	if n.Type != ElementNode && n.Type != TextNode {
		return nil
	}
	want := SlotName(n)
	var found *Node
	Walk(n.parent.shadow, func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Type == ElementNode && c.Tag == "slot" {
			name, _ := c.GetAttribute("name")
			if name == want {
				found = c
				return false
			}
		}
		return true
	})
	return found
}

// AssignedNodes returns the light children of the slot's host that are
// projected into slot, in document order.
func AssignedNodes(slot *Node) []*Node {
	root := slot
	for root.parent != nil {
		root = root.parent
	}
	if root.host == nil {
		return nil
	}
	var out []*Node
	for _, c := range root.host.children {
		if AssignedSlot(c) == slot {
			out = append(out, c)
		}
	}
	return out
}
