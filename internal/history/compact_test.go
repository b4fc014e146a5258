package history

import (
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/noodle/internal/game"
)

var compactTests = map[*[]Binding][]BindingsCompact{
	{}: {},
	{{Time: 1, Track: "a"}, {Time: 2, Track: "b"}, {Time: 3, Track: "a"}}: {
		{Track: "a", Times: []float64{1, 3}},
		{Track: "b", Times: []float64{2}},
	},
	{{Time: 5, Track: "b"}, {Time: 6, Track: "b"}}: {
		{Track: "b", Times: []float64{5, 6}},
	},
}

func compactEqual(p, q []BindingsCompact) bool {
	if len(p) != len(q) {
		return false
	}
	for i := 0; i < len(p); i++ {
		pi, qi := p[i], q[i]
		if pi.Track != qi.Track || len(pi.Times) != len(qi.Times) {
			return false
		}
		for j := 0; j < len(pi.Times); j++ {
			if pi.Times[j] != qi.Times[j] {
				return false
			}
		}
	}
	return true
}

func bindingsEqual(p, q []Binding) bool {
	if len(p) != len(q) {
		return false
	}
	for i := 0; i < len(p); i++ {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

func TestCompactBindings(t *testing.T) {
	for in, expected := range compactTests {
		out := compactBindings(*in)
		if !compactEqual(out, expected) {
			t.Log("out     ", out)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

func TestUncompactBindings(t *testing.T) {
	for expected, in := range compactTests {
		out := uncompactBindings(in)
		if !bindingsEqual(out, *expected) {
			t.Log("in      ", in)
			t.Log("expected", *expected)
			t.Fail()
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	var s DefaultStore
	if err := s.Init(filepath.Join(t.TempDir(), "history.db")); nil != err {
		t.Fatal(err)
	}
	defer s.Deinit()

	b := &game.Beatmap{Sum: "abc"}
	other := &game.Beatmap{Sum: "def"}
	played := time.Unix(1700000000, 0)
	s.Save(b, &Session{Played: played, Animated: 42, Bindings: []Binding{{Time: 1, Track: "p"}, {Time: 2, Track: "q"}}})
	s.Save(b, &Session{Played: played, Animated: 7})
	s.Save(other, &Session{Played: played})

	sessions := s.Load(b)
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %v", len(sessions))
	}
	first := sessions[0]
	if first.Sum != "abc" || first.Animated != 42 || !first.Played.Equal(played) {
		t.Errorf("unexpected session %+v", first)
	}
	if !bindingsEqual(first.Bindings, []Binding{{Time: 1, Track: "p"}, {Time: 2, Track: "q"}}) {
		t.Errorf("unexpected bindings %v", first.Bindings)
	}
	if len(sessions[1].Bindings) != 0 {
		t.Errorf("expected no bindings, got %v", sessions[1].Bindings)
	}
}
