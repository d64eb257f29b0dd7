package di

import "testing"

type counter struct{ n int }

func TestContainer_LazySingleton(t *testing.T) {
	c := NewContainer()
	builds := 0
	tok := NewToken[*counter]("test.counter")

	RegisterToken(c, tok, func(sr ServiceRegistry) *counter {
		builds++
		return &counter{n: 7}
	})

	if builds != 0 {
		t.Fatalf("factory ran before first Get")
	}

	a := GetToken(c, tok)
	b := GetToken(c, tok)

	if a != b {
		t.Error("expected the same instance on repeated Get")
	}
	if builds != 1 {
		t.Errorf("builds = %d, want 1", builds)
	}
	if a.n != 7 {
		t.Errorf("n = %d, want 7", a.n)
	}
}

func TestContainer_FactoryResolvesDependencies(t *testing.T) {
	c := NewContainer()
	c.Register("config", 3)

	tok := NewToken[*counter]("test.dep")
	RegisterToken(c, tok, func(sr ServiceRegistry) *counter {
		return &counter{n: sr.Get("config").(int) * 2}
	})

	if got := GetToken(c, tok).n; got != 6 {
		t.Errorf("n = %d, want 6", got)
	}
}

func TestContainer_UnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown service")
		}
	}()
	NewContainer().Get("missing")
}

func TestContainer_CyclePanics(t *testing.T) {
	c := NewContainer()
	c.AddFactory("a", func(sr ServiceRegistry) any { return sr.Get("b") })
	c.AddFactory("b", func(sr ServiceRegistry) any { return sr.Get("a") })

	defer func() {
		if recover() == nil {
			t.Error("expected panic for dependency cycle")
		}
	}()
	c.Get("a")
}
