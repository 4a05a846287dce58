package setcover

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseModel(t *testing.T) {
	output := `c glucose-syrup
c some statistics
s SATISFIABLE
v 1 -2 3
v -4 5 0
v 6 0
`
	got, err := ParseModel([]byte(output))
	if err != nil {
		t.Fatal(err)
	}
	want := Model{1: true, 2: false, 3: true, 4: false, 5: true}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Fatalf("ParseModel (-got, +want):\n%s", diff)
	}
	if got.Value(6) || got.Value(2) || !got.Value(5) {
		t.Errorf("Value: got 6=%t 2=%t 5=%t", got.Value(6), got.Value(2), got.Value(5))
	}
}

func TestParseModelWithoutSentinel(t *testing.T) {
	got, err := ParseModel([]byte("s SATISFIABLE\nv -1 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, Model{1: false, 2: true}); diff != "" {
		t.Fatalf("ParseModel (-got, +want):\n%s", diff)
	}
}

func TestParseModelError(t *testing.T) {
	if m, err := ParseModel([]byte("v 1 two 0\n")); err == nil {
		t.Fatalf("got %v; want error", m)
	}
}

func TestModelFromBools(t *testing.T) {
	got := ModelFromBools([]bool{true, false, true})
	want := Model{1: true, 2: false, 3: true}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Fatalf("ModelFromBools (-got, +want):\n%s", diff)
	}
}
