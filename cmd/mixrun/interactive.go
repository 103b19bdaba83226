package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/mixin-runtime/object"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

type interactiveModel struct {
	err       error
	scene     *scene
	scenePath string
	status    string
	input     textinput.Model
	selected  int
	mixSel    int
	state     modelState
}

type modelState int

const (
	stateObjects modelState = iota
	stateMixins
	stateNameNew
	stateNameCopy
)

func newInteractiveModel(scenePath string) *interactiveModel {
	return &interactiveModel{
		scenePath: scenePath,
		state:     stateObjects,
	}
}

type sceneLoadedMsg struct {
	err   error
	scene *scene
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadScene
}

func (m *interactiveModel) loadScene() tea.Msg {
	sf, err := loadSceneFile(m.scenePath)
	if err != nil {
		return sceneLoadedMsg{err: err}
	}
	s, err := buildScene(sf)
	if err != nil {
		return sceneLoadedMsg{err: err}
	}
	for _, mut := range sf.Mutations {
		if err := s.mutate(mut); err != nil {
			s.Close()
			return sceneLoadedMsg{err: err}
		}
	}
	return sceneLoadedMsg{scene: s}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateNameNew || m.state == stateNameCopy {
			return m.updateNaming(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			if m.scene != nil {
				m.scene.Close()
			}
			return m, tea.Quit
		}

		if m.scene == nil {
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			switch m.state {
			case stateObjects:
				if m.selected > 0 {
					m.selected--
				}
			case stateMixins:
				if m.mixSel > 0 {
					m.mixSel--
				}
			}

		case "down", "j":
			switch m.state {
			case stateObjects:
				if m.selected < len(m.scene.names)-1 {
					m.selected++
				}
			case stateMixins:
				if m.mixSel < len(m.scene.registered())-1 {
					m.mixSel++
				}
			}

		case "enter", " ":
			switch m.state {
			case stateObjects:
				if len(m.scene.names) > 0 {
					m.state = stateMixins
					m.mixSel = 0
					m.status = ""
				}
			case stateMixins:
				m.toggleMixin()
			}

		case "n":
			if m.state == stateObjects {
				m.beginNaming(stateNameNew, "new object name")
			}

		case "c":
			if m.state == stateObjects && len(m.scene.names) > 0 {
				m.beginNaming(stateNameCopy, "copy name")
			}

		case "d":
			if m.state == stateObjects && len(m.scene.names) > 0 {
				m.deleteSelected()
			}

		case "esc":
			if m.state == stateMixins {
				m.state = stateObjects
				m.status = ""
			}
		}

	case sceneLoadedMsg:
		m.err = msg.err
		m.scene = msg.scene
	}

	return m, nil
}

func (m *interactiveModel) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name != "" {
			if m.state == stateNameNew {
				m.createObject(name)
			} else {
				m.copySelected(name)
			}
		}
		m.state = stateObjects
		return m, nil

	case "esc":
		m.state = stateObjects
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) beginNaming(next modelState, placeholder string) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "name: "
	ti.Width = 32
	ti.Focus()
	m.input = ti
	m.state = next
	m.status = ""
}

func (m *interactiveModel) createObject(name string) {
	if _, dup := m.scene.objects[name]; dup {
		m.status = errStyle.Render("object " + name + " already exists")
		return
	}
	m.scene.add(name, object.New())
	m.selected = len(m.scene.names) - 1
	m.status = okStyle.Render("created " + name + " (empty)")
}

func (m *interactiveModel) copySelected(name string) {
	if _, dup := m.scene.objects[name]; dup {
		m.status = errStyle.Render("object " + name + " already exists")
		return
	}
	src := m.scene.objects[m.scene.names[m.selected]]
	cp, err := src.Copy()
	if err != nil {
		m.status = errStyle.Render("copy: " + err.Error())
		if cp != nil {
			cp.Close()
		}
		return
	}
	m.scene.add(name, cp)
	m.status = okStyle.Render("copied to " + name)
}

func (m *interactiveModel) deleteSelected() {
	name := m.scene.names[m.selected]
	o := m.scene.objects[name]
	m.scene.remove(name)
	o.Close()
	if m.selected >= len(m.scene.names) && m.selected > 0 {
		m.selected--
	}
	m.status = okStyle.Render("closed " + name)
}

func (m *interactiveModel) toggleMixin() {
	name := m.scene.names[m.selected]
	o := m.scene.objects[name]
	mixin := m.scene.registered()[m.mixSel]

	mut := object.Mutate(o, m.scene.dom)
	if o.HasNamed(mixin) {
		mut.Remove(mixin)
	} else {
		mut.Add(mixin)
	}
	if err := mut.Apply(); err != nil {
		m.status = errStyle.Render(err.Error())
		return
	}
	m.status = okStyle.Render(name + " is now " + describeShape(m.scene, o))
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.scene == nil {
		return "Loading scene..."
	}

	var b strings.Builder

	b.WriteString(headStyle.Render("mixrun"))
	b.WriteString(" ")
	b.WriteString(m.scenePath)
	b.WriteString("\n\n")

	switch m.state {
	case stateObjects:
		m.viewObjects(&b)
	case stateMixins:
		m.viewMixins(&b)
	case stateNameNew, stateNameCopy:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("enter confirm • esc cancel"))
	}

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(m.status)
	}
	return b.String()
}

func (m *interactiveModel) viewObjects(b *strings.Builder) {
	if len(m.scene.names) == 0 {
		b.WriteString("No objects. Press n to create one.\n")
	}
	for i, name := range m.scene.names {
		o := m.scene.objects[name]
		line := nameStyle.Render(name) + ": " + mixinStyle.Render(describeShape(m.scene, o))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ select • enter mixins • n new • c copy • d delete • q quit"))
}

func (m *interactiveModel) viewMixins(b *strings.Builder) {
	name := m.scene.names[m.selected]
	o := m.scene.objects[name]
	b.WriteString(fmt.Sprintf("Mixins of %s:\n\n", nameStyle.Render(name)))

	for i, mixin := range m.scene.registered() {
		mark := "[ ]"
		if o.HasNamed(mixin) {
			mark = "[x]"
		}
		line := mark + " " + mixin
		if i == m.mixSel {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ select • enter toggle • esc back"))
}

func describeShape(s *scene, o *object.Object) string {
	if o.Empty() {
		return "(empty)"
	}
	return strings.Join(s.mixinNames(o), " + ")
}

func runInteractive(scenePath string) error {
	p := tea.NewProgram(newInteractiveModel(scenePath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
