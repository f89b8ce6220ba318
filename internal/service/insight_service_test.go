package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"familywallet/internal/insights"
	"familywallet/internal/models"
)

type fakeGenerator struct {
	mu       sync.Mutex
	calls    int
	insight  string
	ideas    string
	err      error
	blockOne chan struct{} // first call waits on this when set
	started  chan struct{}
}

func (f *fakeGenerator) callNumber() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.calls
}

func (f *fakeGenerator) ChildInsight(ctx context.Context, name string, missionCount int, lastActivity string) (string, error) {
	n := f.callNumber()
	if n == 1 && f.blockOne != nil {
		f.started <- struct{}{}
		<-f.blockOne
	}
	if f.err != nil {
		return "", f.err
	}
	if f.insight != "" {
		return f.insight, nil
	}
	return fmt.Sprintf("insight %d for %s", n, name), nil
}

func (f *fakeGenerator) Ideas(ctx context.Context, kind, childContext string) (string, error) {
	f.callNumber()
	return f.ideas, f.err
}

func (f *fakeGenerator) EditImage(ctx context.Context, image []byte, mimeType, prompt string) ([]byte, string, error) {
	f.callNumber()
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte("edited"), "image/png", nil
}

func insightTestChild() models.Child {
	return models.Child{
		ID:   "child-1",
		Name: "Мия",
		Missions: []models.Mission{
			{ID: "m1", Status: models.MissionStatusActive},
			{ID: "m2", Status: models.MissionStatusPending},
		},
		Activities: []models.Activity{
			{ID: "a1", Description: "Миссия: Помыть посуду"},
		},
	}
}

func TestChildInsightSuccess(t *testing.T) {
	svc := NewInsightService(&fakeGenerator{insight: "Отличный прогресс!"})

	got := svc.ChildInsight(context.Background(), insightTestChild())
	if got != "Отличный прогресс!" {
		t.Errorf("insight = %q", got)
	}
}

func TestChildInsightFailureYieldsFallback(t *testing.T) {
	svc := NewInsightService(&fakeGenerator{err: errors.New("quota exceeded")})

	got := svc.ChildInsight(context.Background(), insightTestChild())
	if got != fallbackInsightUnavailable {
		t.Errorf("insight = %q, want fallback", got)
	}
}

func TestChildInsightEmptyResponseYieldsDefault(t *testing.T) {
	svc := NewInsightService(&emptyGenerator{})

	got := svc.ChildInsight(context.Background(), insightTestChild())
	if got != fallbackInsightEmpty {
		t.Errorf("insight = %q, want empty-response default", got)
	}
}

// emptyGenerator always returns an empty successful response
type emptyGenerator struct{}

func (e *emptyGenerator) ChildInsight(ctx context.Context, name string, missionCount int, lastActivity string) (string, error) {
	return "", nil
}
func (e *emptyGenerator) Ideas(ctx context.Context, kind, childContext string) (string, error) {
	return "", nil
}
func (e *emptyGenerator) EditImage(ctx context.Context, image []byte, mimeType, prompt string) ([]byte, string, error) {
	return nil, "", nil
}

func TestChildInsightNilGenerator(t *testing.T) {
	svc := NewInsightService(nil)

	got := svc.ChildInsight(context.Background(), insightTestChild())
	if got != fallbackInsightUnavailable {
		t.Errorf("insight = %q, want fallback when disabled", got)
	}
}

func TestChildInsightSupersededRequestIsDiscarded(t *testing.T) {
	fake := &fakeGenerator{
		blockOne: make(chan struct{}),
		started:  make(chan struct{}),
	}
	svc := NewInsightService(fake)
	child := insightTestChild()

	first := make(chan string)
	go func() {
		first <- svc.ChildInsight(context.Background(), child)
	}()

	<-fake.started

	// second request for the same child supersedes the in-flight one
	second := svc.ChildInsight(context.Background(), child)
	if second != "insight 2 for Мия" {
		t.Errorf("second insight = %q", second)
	}

	close(fake.blockOne)
	if got := <-first; got != fallbackInsightUnavailable {
		t.Errorf("superseded insight = %q, want fallback", got)
	}
}

func TestIdeas(t *testing.T) {
	t.Run("missions kind parses list", func(t *testing.T) {
		svc := NewInsightService(&fakeGenerator{ideas: "Помыть посуду, Полить цветы"})

		text, items, err := svc.Ideas(context.Background(), insights.KindMissions, "ребенок 8 лет")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "Помыть посуду, Полить цветы" {
			t.Errorf("text = %q", text)
		}
		if len(items) != 2 || items[0] != "Помыть посуду" {
			t.Errorf("items = %v", items)
		}
	})

	t.Run("advice kind has no list", func(t *testing.T) {
		svc := NewInsightService(&fakeGenerator{ideas: "Хвалите за усилия, а не за результат"})

		_, items, err := svc.Ideas(context.Background(), insights.KindAdvice, "ctx")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if items != nil {
			t.Errorf("advice must not produce items, got %v", items)
		}
	})

	t.Run("generator failure yields fallback", func(t *testing.T) {
		svc := NewInsightService(&fakeGenerator{err: errors.New("boom")})

		text, items, err := svc.Ideas(context.Background(), insights.KindPrizes, "ctx")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != fallbackIdeasError || items != nil {
			t.Errorf("text = %q, items = %v", text, items)
		}
	})

	t.Run("unknown kind is a caller error", func(t *testing.T) {
		svc := NewInsightService(&fakeGenerator{})

		if _, _, err := svc.Ideas(context.Background(), "stories", "ctx"); !errors.Is(err, ErrUnknownIdeaKind) {
			t.Errorf("expected ErrUnknownIdeaKind, got %v", err)
		}
	})
}

func TestEditDreamImage(t *testing.T) {
	t.Run("success returns bytes", func(t *testing.T) {
		svc := NewInsightService(&fakeGenerator{})

		data, mime := svc.EditDreamImage(context.Background(), "child-1", []byte("src"), "image/png", "add stars")
		if string(data) != "edited" || mime != "image/png" {
			t.Errorf("data = %q, mime = %q", data, mime)
		}
	})

	t.Run("failure returns no image", func(t *testing.T) {
		svc := NewInsightService(&fakeGenerator{err: errors.New("boom")})

		data, _ := svc.EditDreamImage(context.Background(), "child-1", []byte("src"), "image/png", "add stars")
		if data != nil {
			t.Errorf("expected nil image on failure, got %q", data)
		}
	})
}
