package particlefield

// Element attribute names set on every surface element.
const (
	AttrAriaHidden    = "aria-hidden"
	AttrPointerEvents = "pointer-events"
	AttrBackground    = "background"
)

// Element is the screen node a Surface is presented through. It belongs to at
// most one Container at a time.
type Element struct {
	ID      string
	Attrs   map[string]string
	Surface *Surface
	parent  Container
}

func newSurfaceElement(id string, s *Surface) *Element {
	return &Element{
		ID:      id,
		Surface: s,
		Attrs: map[string]string{
			AttrAriaHidden:    "true",
			AttrPointerEvents: "none",
			AttrBackground:    "transparent",
		},
	}
}

// Parent returns the container the element is attached to, or nil.
func (e *Element) Parent() Container { return e.parent }

// Container is the screen region a Field renders into.
type Container interface {
	// Attached reports whether the region is on screen and can host a surface.
	Attached() bool
	// Size is the region's current pixel size.
	Size() (width, height int)
	AppendChild(el *Element)
	RemoveChild(el *Element)
}

// Presenter is implemented by containers that need to be told when an
// element's surface holds a fresh frame.
type Presenter interface {
	Present(el *Element)
}

// attach moves el under c, detaching it from any previous parent.
func attach(c Container, el *Element) {
	if el.parent != nil && el.parent != c {
		el.parent.RemoveChild(el)
	}
	el.parent = c
	c.AppendChild(el)
}

func detach(el *Element) {
	if el.parent == nil {
		return
	}
	p := el.parent
	el.parent = nil
	p.RemoveChild(el)
}

// BaseContainer is an in-memory Container. Hosts embed it and override Size or
// add Present.
type BaseContainer struct {
	attached bool
	width    int
	height   int
	children []*Element
}

func NewBaseContainer(width, height int) *BaseContainer {
	return &BaseContainer{attached: true, width: width, height: height}
}

func (c *BaseContainer) Attached() bool { return c != nil && c.attached }

func (c *BaseContainer) SetAttached(attached bool) { c.attached = attached }

func (c *BaseContainer) Size() (int, int) { return c.width, c.height }

func (c *BaseContainer) SetSize(width, height int) {
	c.width, c.height = width, height
}

func (c *BaseContainer) AppendChild(el *Element) {
	for _, ch := range c.children {
		if ch == el {
			return
		}
	}
	c.children = append(c.children, el)
}

func (c *BaseContainer) RemoveChild(el *Element) {
	for i, ch := range c.children {
		if ch == el {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

func (c *BaseContainer) Children() []*Element { return c.children }

func (c *BaseContainer) Contains(el *Element) bool {
	for _, ch := range c.children {
		if ch == el {
			return true
		}
	}
	return false
}
