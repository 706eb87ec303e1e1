package rolegate

import (
	"sync"

	"github.com/ytget/yt-classroom/internal/model"
)

// Tag marks who may see an element
type Tag int

const (
	Everyone Tag = iota
	TeacherOnly
	StudentOnly
)

// Toggler is anything that can be shown or hidden, such as a fyne.CanvasObject
type Toggler interface {
	Show()
	Hide()
}

// Visible reports whether an element tagged tag is shown to role.
// Invalid roles see only untagged elements.
func Visible(tag Tag, role model.Role) bool {
	switch role {
	case model.RoleTeacher:
		return tag != StudentOnly
	case model.RoleStudent:
		return tag != TeacherOnly
	default:
		return tag == Everyone
	}
}

// Gate keeps tagged elements and applies a role to all of them at once
type Gate struct {
	mu       sync.Mutex
	elements map[Tag][]Toggler
}

// New creates an empty gate
func New() *Gate {
	return &Gate{elements: make(map[Tag][]Toggler)}
}

// Register tags elements. They stay in their current state until Apply.
func (g *Gate) Register(tag Tag, elements ...Toggler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.elements[tag] = append(g.elements[tag], elements...)
}

// Apply shows or hides every registered element for role
func (g *Gate) Apply(role model.Role) {
	g.mu.Lock()
	snapshot := make(map[Tag][]Toggler, len(g.elements))
	for tag, els := range g.elements {
		snapshot[tag] = append([]Toggler(nil), els...)
	}
	g.mu.Unlock()

	for tag, els := range snapshot {
		visible := Visible(tag, role)
		for _, el := range els {
			if visible {
				el.Show()
			} else {
				el.Hide()
			}
		}
	}
}

// Reset forgets all registered elements
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.elements = make(map[Tag][]Toggler)
}
