// Package demo holds the sample components served by the vhook CLI.
package demo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/vhook/internal/errors"
	"github.com/vango-dev/vhook/pkg/hooks"
	"github.com/vango-dev/vhook/pkg/vdom"
)

// DefaultApp is the app rendered when none is named.
const DefaultApp = "app"

var apps = map[string]vdom.Component{
	"app":     App,
	"counter": Counter,
	"todo":    TodoList,
}

// Names returns the registered app names, sorted.
func Names() []string {
	names := make([]string, 0, len(apps))
	for name := range apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the component registered under name.
func Lookup(name string) (vdom.Component, error) {
	if name == "" {
		name = DefaultApp
	}
	c, ok := apps[name]
	if !ok {
		return nil, errors.New("E160").
			WithDetail(fmt.Sprintf("No app is registered as %q.", name)).
			WithSuggestion("Available apps: " + strings.Join(Names(), ", "))
	}
	return c, nil
}

// Counter is a click counter. An effect keyed on the count tracks how
// often it ran.
func Counter() *vdom.VNode {
	count, setCount := hooks.UseState(0)
	renders, bumpRenders := hooks.UseStateFunc(0)

	hooks.UseEffect(func() {
		bumpRenders(func(n int) int { return n + 1 })
	}, []any{count})

	return vdom.Section(vdom.Class("counter"),
		vdom.H2("Counter"),
		vdom.P(vdom.Strong(vdom.ID("count"), count), " clicks"),
		vdom.Button(vdom.ID("dec"), vdom.OnClick(func() { setCount(count - 1) }), "-"),
		vdom.Button(vdom.ID("inc"), vdom.OnClick(func() { setCount(count + 1) }), "+"),
		vdom.Button(vdom.ID("reset"), vdom.Disabled(count == 0), vdom.OnClick(func() { setCount(0) }), "reset"),
		vdom.P(vdom.Class("muted"), "effect ran ", renders, " times"),
	)
}

// Todo is one entry of TodoList.
type Todo struct {
	Title string
	Done  bool
}

// TodoList keeps a list of todos with a draft input.
func TodoList() *vdom.VNode {
	todos, setTodos := hooks.UseState([]Todo(nil))
	draft, setDraft := hooks.UseState("")

	add := func() {
		title := strings.TrimSpace(draft)
		if title == "" {
			return
		}
		setTodos(append(append([]Todo(nil), todos...), Todo{Title: title}))
		setDraft("")
	}

	toggle := func(i int) func() {
		return func() {
			next := append([]Todo(nil), todos...)
			next[i].Done = !next[i].Done
			setTodos(next)
		}
	}

	remove := func(i int) func() {
		return func() {
			next := append(append([]Todo(nil), todos[:i]...), todos[i+1:]...)
			setTodos(next)
		}
	}

	left := 0
	for _, t := range todos {
		if !t.Done {
			left++
		}
	}

	return vdom.Section(vdom.Class("todos"),
		vdom.H2("Todos"),
		vdom.Form(vdom.OnSubmit(add),
			vdom.Input(vdom.ID("draft"), vdom.Placeholder("What needs doing?"), vdom.Value(draft), vdom.OnInput(setDraft)),
			vdom.Button(vdom.ID("add"), vdom.OnClick(add), "Add"),
		),
		vdom.Ul(vdom.Range(todos, func(t Todo, i int) *vdom.VNode {
			return vdom.Li(vdom.Class(itemClass(t)),
				vdom.Input(vdom.Type("checkbox"), vdom.Checked(t.Done), vdom.OnChange(toggle(i))),
				vdom.Span(t.Title),
				vdom.Button(vdom.Class("remove"), vdom.OnClick(remove(i)), "x"),
			)
		})),
		vdom.If(len(todos) > 0, vdom.P(vdom.ID("left"), left, " left")),
	)
}

func itemClass(t Todo) string {
	if t.Done {
		return "done"
	}
	return "open"
}

// App composes the other demos.
func App() *vdom.VNode {
	return vdom.Main(vdom.ID("app"),
		vdom.H1("vhook"),
		vdom.H(Counter, nil),
		vdom.H(TodoList, nil),
	)
}
