package todo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
)

func newABC(t *testing.T) *Store {
	t.Helper()
	s := New()
	for _, txt := range []string{"A", "B", "C"} {
		_, ok := s.Add(txt)
		require.True(t, ok)
	}
	return s
}

func ids(items []model.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestAddAppendsTrimmedOpenItem(t *testing.T) {
	s := New()
	it, ok := s.Add("Buy milk")
	require.True(t, ok)

	want := []model.Item{{ID: it.ID, Text: "Buy milk", Completed: false}}
	if diff := cmp.Diff(want, s.Items()); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestAddTrimsWhitespace(t *testing.T) {
	s := newABC(t)
	before := s.Len()

	it, ok := s.Add("  \tWalk the dog \n")
	require.True(t, ok)
	assert.Equal(t, before+1, s.Len())

	last := s.Items()[s.Len()-1]
	assert.Equal(t, it, last)
	assert.Equal(t, "Walk the dog", last.Text)
	assert.False(t, last.Completed)
}

func TestAddRejectsBlank(t *testing.T) {
	for _, raw := range []string{"", " ", "   ", "\t\n", "  "} {
		s := newABC(t)
		before := s.Items()

		_, ok := s.Add(raw)
		assert.False(t, ok, "input %q", raw)
		if diff := cmp.Diff(before, s.Items()); diff != "" {
			t.Errorf("Add(%q) changed the list (-want +got):\n%s", raw, diff)
		}
	}
}

func TestIDsAreUniqueAcrossRemovals(t *testing.T) {
	s := New()
	seen := map[int64]bool{}
	for i := 0; i < 100; i++ {
		it, ok := s.Add("x")
		require.True(t, ok)
		require.False(t, seen[it.ID], "id %d reused", it.ID)
		seen[it.ID] = true
		if i%3 == 0 {
			s.Remove(it.ID)
		}
	}
}

func TestToggleFlipsOnlyTarget(t *testing.T) {
	s := New()
	a, _ := s.Add("A")
	b, _ := s.Add("B")

	require.True(t, s.Toggle(a.ID))

	got := s.Items()
	assert.Equal(t, []int64{a.ID, b.ID}, ids(got))
	assert.True(t, got[0].Completed)
	assert.False(t, got[1].Completed)

	require.True(t, s.Toggle(a.ID))
	assert.False(t, s.Items()[0].Completed)
}

func TestRemovePreservesOrder(t *testing.T) {
	s := newABC(t)
	all := s.Items()

	require.True(t, s.Remove(all[1].ID))
	assert.Equal(t, []int64{all[0].ID, all[2].ID}, ids(s.Items()))
	_, found := s.Get(all[1].ID)
	assert.False(t, found)
}

func TestUnknownIDIsNoop(t *testing.T) {
	s := newABC(t)
	s.Toggle(s.Items()[0].ID)
	before := s.Items()

	assert.False(t, s.Toggle(999))
	assert.False(t, s.Remove(999))
	assert.False(t, s.Remove(-1))
	if diff := cmp.Diff(before, s.Items()); diff != "" {
		t.Errorf("list changed (-want +got):\n%s", diff)
	}
}

func TestCounts(t *testing.T) {
	s := New(WithSeed([]Seed{
		{Text: "one", Completed: true},
		{Text: "two"},
		{Text: "three", Completed: true},
	}))
	assert.Equal(t, 1, s.Remaining())
	assert.Equal(t, 2, s.CompletedCount())

	ops := []func(){
		func() { s.Add("four") },
		func() { s.Toggle(s.Items()[0].ID) },
		func() { s.Remove(s.Items()[1].ID) },
		func() { s.Add("   ") },
		func() { s.Toggle(12345) },
	}
	for _, op := range ops {
		op()
		assert.Equal(t, s.Len(), s.Remaining()+s.CompletedCount())
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	s := newABC(t)
	snap := s.Items()
	snap[0].Text = "mutated"
	snap[1].Completed = true

	assert.Equal(t, "A", s.Items()[0].Text)
	assert.False(t, s.Items()[1].Completed)
}

func TestWithSeedSkipsBlankAndKeepsOrder(t *testing.T) {
	s := New(WithSeed([]Seed{
		{Text: " first "},
		{Text: "  ", Completed: true},
		{Text: "second", Completed: true},
	}))
	got := s.Items()
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Text)
	assert.False(t, got[0].Completed)
	assert.Equal(t, "second", got[1].Text)
	assert.True(t, got[1].Completed)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestDemoSeed(t *testing.T) {
	s := New(WithSeed(DemoSeed()))
	require.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.Remaining())
	assert.Equal(t, 1, s.CompletedCount())
	assert.Equal(t, "Build UI library with shadcn", s.Items()[1].Text)

	// ids continue after the seeds
	it, _ := s.Add("Ship it")
	for _, seeded := range s.Items()[:3] {
		assert.NotEqual(t, seeded.ID, it.ID)
	}
}
