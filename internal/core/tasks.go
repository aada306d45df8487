package core

import (
	"strings"

	"pnc-buildconfig/internal/types"
)

// Task is one artifact in the build graph. Dependencies are kept as names
// and resolved against the owning Tasks on demand.
type Task struct {
	Name         string
	Dependencies []string

	tasks *Tasks
}

// Tasks is the set of buildable artifacts and their declared build
// requirements.
type Tasks struct {
	byName map[string]*Task
	order  []string
}

func NewTasks() *Tasks {
	return &Tasks{byName: map[string]*Task{}}
}

// Add registers a task. Adding a name twice replaces its dependencies but
// keeps its original position.
func (t *Tasks) Add(name string, dependencies []string) *Task {
	task, ok := t.byName[name]
	if !ok {
		task = &Task{Name: name, tasks: t}
		t.byName[name] = task
		t.order = append(t.order, name)
	}
	task.Dependencies = append([]string(nil), dependencies...)
	return task
}

func (t *Tasks) Task(name string) (*Task, error) {
	task, ok := t.byName[name]
	if !ok {
		return nil, types.NewConfigError(types.ErrUnknownArtifact, name, "", "artifact is not configured")
	}
	return task, nil
}

// All returns the tasks in the order they were added.
func (t *Tasks) All() []*Task {
	out := make([]*Task, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

func (t *Tasks) Len() int { return len(t.order) }

// BuildOrder returns the given roots, or every task when none are given,
// preceded by their transitive dependencies. Dependencies are visited
// depth first in declared order and each name is emitted once, at its
// first completion.
func (t *Tasks) BuildOrder(roots ...string) ([]string, error) {
	if len(roots) == 0 {
		roots = t.order
	}
	w := newWalker(t)
	for _, root := range roots {
		if _, ok := t.byName[root]; !ok {
			return nil, types.NewConfigError(types.ErrUnknownArtifact, root, "", "artifact is not configured")
		}
		if err := w.visit(root, ""); err != nil {
			return nil, err
		}
	}
	return taskNames(w.order), nil
}

// DependencyTasks resolves the direct dependencies of the task.
func (task *Task) DependencyTasks() ([]*Task, error) {
	out := make([]*Task, 0, len(task.Dependencies))
	for _, name := range task.Dependencies {
		dep, ok := task.tasks.byName[name]
		if !ok {
			return nil, unresolved(task.Name, name)
		}
		out = append(out, dep)
	}
	return out, nil
}

// OrderedDependencies returns the transitive dependency closure of the
// task in build order: every task appears after all of its own
// dependencies. The task itself is not included.
func (task *Task) OrderedDependencies() ([]*Task, error) {
	w := newWalker(task.tasks)
	w.enter(task.Name)
	for _, dep := range task.Dependencies {
		if err := w.visit(dep, task.Name); err != nil {
			return nil, err
		}
	}
	return w.order, nil
}

// OrderedDependencyNames is OrderedDependencies reduced to names.
func (task *Task) OrderedDependencyNames() ([]string, error) {
	deps, err := task.OrderedDependencies()
	if err != nil {
		return nil, err
	}
	return taskNames(deps), nil
}

type walker struct {
	tasks    *Tasks
	visiting map[string]bool
	visited  map[string]bool
	path     []string
	order    []*Task
}

func newWalker(tasks *Tasks) *walker {
	return &walker{
		tasks:    tasks,
		visiting: map[string]bool{},
		visited:  map[string]bool{},
	}
}

func (w *walker) enter(name string) {
	w.visiting[name] = true
	w.path = append(w.path, name)
}

func (w *walker) leave(name string) {
	w.visiting[name] = false
	w.path = w.path[:len(w.path)-1]
}

func (w *walker) visit(name, requiredBy string) error {
	if w.visited[name] {
		return nil
	}
	if w.visiting[name] {
		return w.cycle(name)
	}
	task, ok := w.tasks.byName[name]
	if !ok {
		return unresolved(requiredBy, name)
	}
	w.enter(name)
	for _, dep := range task.Dependencies {
		if err := w.visit(dep, name); err != nil {
			return err
		}
	}
	w.leave(name)
	w.visited[name] = true
	w.order = append(w.order, task)
	return nil
}

func (w *walker) cycle(name string) error {
	start := 0
	for i, step := range w.path {
		if step == name {
			start = i
			break
		}
	}
	path := append(append([]string(nil), w.path[start:]...), name)
	return types.NewConfigError(types.ErrCyclicDependency, name, "buildrequires",
		"cycle: %s", strings.Join(path, " -> "))
}

func unresolved(requiredBy, name string) error {
	return types.NewConfigError(types.ErrUnresolvedDependency, requiredBy, "buildrequires",
		"%q is not a configured artifact", name)
}

func taskNames(tasks []*Task) []string {
	names := make([]string, 0, len(tasks))
	for _, task := range tasks {
		names = append(names, task.Name)
	}
	return names
}
