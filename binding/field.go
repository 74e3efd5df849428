// Package binding holds the per-field state a UI binding layer keeps around
// the datefmt pipelines, and a registry for active widgets.
package binding

import (
	"github.com/goliatone/go-datefmt"
)

// State of a bound field relative to its model.
type State int

const (
	// StateClean means the view reflects the model (or a rejected edit).
	StateClean State = iota
	// StateDirty means the view was edited and not parsed yet.
	StateDirty
)

func (s State) String() string {
	if s == StateDirty {
		return "dirty"
	}
	return "clean"
}

// Pipeline is satisfied by *datefmt.DatePipeline and *datefmt.TimePipeline.
type Pipeline interface {
	Parse(text string) (datefmt.Value, error)
	Model(model any) (datefmt.Value, error)
	Render(model any) (string, error)
}

// Field tracks one bound input. It is not safe for concurrent use; a UI
// event loop owns it.
type Field struct {
	pipeline Pipeline
	state    State
	valid    bool
	view     string
	model    datefmt.Value
	onChange func(datefmt.Value)
}

// FieldOption mutates a Field during construction
type FieldOption func(*Field)

// OnChange registers a callback invoked after every committed model value.
func OnChange(fn func(datefmt.Value)) FieldOption {
	return func(f *Field) {
		f.onChange = fn
	}
}

func NewField(pipeline Pipeline, opts ...FieldOption) *Field {
	f := &Field{pipeline: pipeline, valid: true}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

func (f *Field) State() State         { return f.state }
func (f *Field) Valid() bool          { return f.valid }
func (f *Field) View() string         { return f.view }
func (f *Field) Model() datefmt.Value { return f.model }

// Edit records user input; the field stays dirty until Commit.
func (f *Field) Edit(text string) {
	f.view = text
	f.state = StateDirty
}

// Commit parses a dirty view. On success the model is replaced and the
// field is valid; on failure the raw text stays in the view, the model is
// cleared and the field is marked invalid. Either way the field is clean.
func (f *Field) Commit() error {
	if f.state != StateDirty {
		return nil
	}
	f.state = StateClean

	value, err := f.pipeline.Parse(f.view)
	if err != nil {
		f.valid = false
		f.model = datefmt.Value{}
		return err
	}

	f.valid = true
	f.model = value
	if f.onChange != nil {
		f.onChange(value)
	}
	return nil
}

// SetModel stores a model pushed from outside and renders it into the
// view. The model is kept as given; only layout text is parsed.
func (f *Field) SetModel(model any) error {
	value, err := f.pipeline.Model(model)
	if err != nil {
		f.valid = false
		return err
	}

	view, err := f.pipeline.Render(value)
	if err != nil {
		f.valid = false
		return err
	}

	f.view = view
	f.model = value
	f.valid = true
	f.state = StateClean
	return nil
}
