package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/mixin-runtime/object"
	"github.com/wippyai/mixin-runtime/registry"
)

func main() {
	var (
		scenePath   = flag.String("scene", "", "Path to a TOML scene file")
		listMixins  = flag.Bool("list", false, "List built-in mixins and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			registry.SetLogger(l)
			object.SetLogger(l)
		}
	}

	if *listMixins {
		if err := list(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: mixrun -scene <file.toml> [-i] [-v]")
		fmt.Fprintln(os.Stderr, "       mixrun -list")
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*scenePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*scenePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func list() error {
	dom, err := buildDomain()
	if err != nil {
		return err
	}
	for id := 0; id < dom.NumMixins(); id++ {
		info := dom.Mixin(registry.MixinID(id))
		caps := make([]string, 0, 4)
		if info.Ops.CopyConstruct != nil && info.Ops.CopyAssign != nil {
			caps = append(caps, "copyable")
		}
		if info.Ops.MoveConstruct != nil {
			caps = append(caps, "movable")
		}
		for _, f := range info.Features {
			caps = append(caps, fmt.Sprintf("feature:%d", f))
		}
		fmt.Printf("%-12s id=%-3d %s\n", info.Name, info.ID, strings.Join(caps, " "))
	}
	return nil
}

func run(scenePath string) error {
	sf, err := loadSceneFile(scenePath)
	if err != nil {
		return err
	}

	s, err := buildScene(sf)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, m := range sf.Mutations {
		if err := s.mutate(m); err != nil {
			return fmt.Errorf("mutation on %q: %w", m.Object, err)
		}
	}

	report(s)
	return nil
}

var (
	headStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	mixinStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

func report(s *scene) {
	colored := term.IsTerminal(int(os.Stdout.Fd()))
	style := func(st lipgloss.Style, text string) string {
		if !colored {
			return text
		}
		return st.Render(text)
	}

	fmt.Println(style(headStyle, fmt.Sprintf("scene: %d objects, %d composed types interned", len(s.names), s.dom.NumTypes())))

	for _, name := range s.names {
		o := s.objects[name]
		tags := make([]string, 0, 2)
		if o.Allocator() != nil {
			tags = append(tags, "arena")
		}
		if !o.Copyable() {
			tags = append(tags, "non-copyable")
		}
		suffix := ""
		if len(tags) > 0 {
			suffix = " " + style(dimStyle, "("+strings.Join(tags, ", ")+")")
		}
		fmt.Printf("  %s: %s%s\n",
			style(nameStyle, name),
			style(mixinStyle, strings.Join(s.mixinNames(o), " + ")),
			suffix)
	}

	fmt.Println(style(dimStyle, "live mixin instances:"))
	for id := 0; id < s.dom.NumMixins(); id++ {
		info := s.dom.Mixin(registry.MixinID(id))
		if info.NumLive() == 0 {
			continue
		}
		fmt.Printf("  %-12s %d\n", info.Name, info.NumLive())
	}
}
