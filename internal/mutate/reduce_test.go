package mutate

import (
	"errors"
	"testing"

	"whisperdeck/internal/model"

	"github.com/google/go-cmp/cmp"
)

func prompts(shorts ...string) []model.Prompt {
	out := make([]model.Prompt, 0, len(shorts))
	for _, s := range shorts {
		out = append(out, model.Prompt{Short: s, Full: s + "-full"})
	}
	return out
}

func TestReduce_Add_AppendsAndKeepsPrior(t *testing.T) {
	t.Parallel()

	state := prompts("a", "b")
	v := model.Prompt{Short: "c", Full: "see"}

	got, err := Reduce(state, Add(v))
	if err != nil {
		t.Fatalf("Reduce add: %v", err)
	}
	want := append(prompts("a", "b"), v)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("add mismatch (-want +got):\n%s", diff)
	}
	if len(state) != 2 {
		t.Fatalf("input state changed length: %d", len(state))
	}
}

func TestReduce_Add_ToEmpty(t *testing.T) {
	t.Parallel()

	got, err := Reduce[model.User](nil, Add(model.User{Name: "alice"}))
	if err != nil {
		t.Fatalf("Reduce add: %v", err)
	}
	if diff := cmp.Diff([]model.User{{Name: "alice"}}, got); diff != "" {
		t.Fatalf("add mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_Remove_ExcisesPreservingOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		index int
		want  []model.Prompt
	}{
		{name: "first", index: 0, want: prompts("b", "c", "d")},
		{name: "middle", index: 2, want: prompts("a", "b", "d")},
		{name: "last", index: 3, want: prompts("a", "b", "c")},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			state := prompts("a", "b", "c", "d")
			got, err := Reduce(state, Remove[model.Prompt](tc.index))
			if err != nil {
				t.Fatalf("Reduce remove: %v", err)
			}
			if len(got) != len(state)-1 {
				t.Fatalf("expected len %d; got %d", len(state)-1, len(got))
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("remove mismatch (-want +got):\n%s", diff)
			}
			// Input must be untouched.
			if diff := cmp.Diff(prompts("a", "b", "c", "d"), state); diff != "" {
				t.Fatalf("input mutated (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReduce_Modify_ReplacesOnlyIndex(t *testing.T) {
	t.Parallel()

	state := prompts("a", "b", "c")
	v := model.Prompt{Short: "B", Full: "bee"}

	got, err := Reduce(state, Modify(1, v))
	if err != nil {
		t.Fatalf("Reduce modify: %v", err)
	}
	if got[1] != v {
		t.Fatalf("expected element 1 to be %#v; got %#v", v, got[1])
	}
	if got[0] != state[0] || got[2] != state[2] {
		t.Fatalf("expected other elements unchanged; got %#v", got)
	}
	if state[1].Short != "b" {
		t.Fatalf("input mutated: %#v", state)
	}
}

func TestReduce_OutOfRange(t *testing.T) {
	t.Parallel()

	state := prompts("a")
	for _, a := range []Action[model.Prompt]{
		Remove[model.Prompt](1),
		Remove[model.Prompt](-1),
		Modify(5, model.Prompt{}),
		Modify(-1, model.Prompt{}),
	} {
		got, err := Reduce(state, a)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("%s(%d): expected ErrIndexOutOfRange; got %v", a.Name(), a.Index(), err)
		}
		var ie IndexError
		if !errors.As(err, &ie) || ie.Len != 1 {
			t.Fatalf("%s: expected IndexError with Len=1; got %#v", a.Name(), err)
		}
		if diff := cmp.Diff(state, got); diff != "" {
			t.Fatalf("%s: state changed on error (-want +got):\n%s", a.Name(), diff)
		}
	}
}

func TestReduce_Load_ReplacesVerbatim(t *testing.T) {
	t.Parallel()

	loaded := prompts("x", "y")
	for _, state := range [][]model.Prompt{nil, prompts("a"), prompts("a", "b", "c")} {
		got, err := Reduce(state, Load(loaded))
		if err != nil {
			t.Fatalf("Reduce load: %v", err)
		}
		if diff := cmp.Diff(loaded, got); diff != "" {
			t.Fatalf("load mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestReduce_Load_Idempotent(t *testing.T) {
	t.Parallel()

	loaded := []model.User{{Name: "a", Prompt: &model.Prompt{Short: "X", Full: "f"}}, {Name: "b"}}
	once, err := Reduce(model.DefaultUsers(), Load(loaded))
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	twice, err := Reduce(once, Load(loaded))
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("load not idempotent (-once +twice):\n%s", diff)
	}
}

func TestAction_Persists(t *testing.T) {
	t.Parallel()

	if !Add(1).Persists() || !Remove[int](0).Persists() || !Modify(0, 1).Persists() {
		t.Fatalf("expected add/remove/modify to persist")
	}
	if Load([]int{1}).Persists() {
		t.Fatalf("expected load not to persist")
	}
	if got := Add(1).Index(); got != -1 {
		t.Fatalf("expected add index -1; got %d", got)
	}
	if got := Modify(3, 1).Index(); got != 3 {
		t.Fatalf("expected modify index 3; got %d", got)
	}
}

func TestReduce_ZeroActionPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for zero Action")
		}
	}()
	_, _ = Reduce([]int{1}, Action[int]{})
}
