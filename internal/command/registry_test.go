package command

import (
	"errors"
	"testing"
)

func TestRegistryRegisterAndExecute(t *testing.T) {
	r := NewRegistry()

	var got Params
	err := r.Register(New("Zoom", "Zoom in or out", func(p Params) error {
		got = p
		return nil
	}))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := r.Execute("Zoom", NewParams("action", "in")); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got.Get("action") != "in" {
		t.Errorf("handler params = %v, want action=in", got)
	}

	if err := r.Execute("Zoom", nil); err != nil {
		t.Fatalf("Execute(nil) error = %v", err)
	}
	if got == nil {
		t.Error("nil params should reach the handler as empty params")
	}
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()
	noop := func(Params) error { return nil }

	if err := r.Register(nil); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Register(nil) error = %v, want ErrInvalidCommand", err)
	}
	if err := r.Register(New("", "", noop)); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Register(unnamed) error = %v, want ErrInvalidCommand", err)
	}
	if err := r.Register(New("Undo", "", noop)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(New("Undo", "", noop)); !errors.Is(err, ErrDuplicateCommand) {
		t.Errorf("duplicate Register() error = %v, want ErrDuplicateCommand", err)
	}
	if err := r.Execute("Redo", nil); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Execute(unknown) error = %v, want ErrUnknownCommand", err)
	}

	boom := errors.New("boom")
	_ = r.Register(New("Fail", "", func(Params) error { return boom }))
	if err := r.Execute("Fail", nil); !errors.Is(err, boom) {
		t.Errorf("Execute(Fail) error = %v, want wrapped boom", err)
	}
}

func TestRegistrySuggest(t *testing.T) {
	r := NewRegistry()
	noop := func(Params) error { return nil }
	for _, name := range []string{"NewFile", "OpenFile", "SaveFile", "Undo"} {
		_ = r.Register(New(name, "", noop))
	}

	got := r.Suggest("NewFiel")
	if len(got) == 0 || got[0] != "NewFile" {
		t.Errorf("Suggest(NewFiel) = %v, want NewFile first", got)
	}
	if got := r.Suggest("CompletelyDifferent"); len(got) != 0 {
		t.Errorf("Suggest(CompletelyDifferent) = %v, want none", got)
	}
	if names := r.Names(); len(names) != 4 || names[0] != "NewFile" {
		t.Errorf("Names() = %v, want sorted names", names)
	}
}
