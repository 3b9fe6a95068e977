package syntax

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/aspecta/internal/cache"
	"github.com/ppiankov/aspecta/internal/model"
)

func TestCached_Parse(t *testing.T) {
	calls := 0
	inner := ParserFunc(func(ctx context.Context, tokens []string) ([]model.Annotation, error) {
		calls++
		return []model.Annotation{{Index: 0, Text: tokens[0], POS: model.POSNoun, Dep: model.DepRoot, Head: 0}}, nil
	})

	parser := NewCached(inner, cache.NewMemoryCache(time.Minute, time.Minute), "test", 0, nil)

	for i := 0; i < 3; i++ {
		parse, err := parser.Parse(context.Background(), []string{"Метод"})
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(parse) != 1 || parse[0].Text != "Метод" || !parse[0].IsRoot() {
			t.Errorf("unexpected parse: %+v", parse)
		}
	}

	if calls != 1 {
		t.Errorf("expected 1 call to the wrapped parser, got %d", calls)
	}

	if _, err := parser.Parse(context.Background(), []string{"Подход"}); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("expected a miss for new tokens, got %d calls", calls)
	}
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	calls := 0
	inner := ParserFunc(func(ctx context.Context, tokens []string) ([]model.Annotation, error) {
		calls++
		return nil, errors.New("unavailable")
	})

	parser := NewCached(inner, cache.NewMemoryCache(time.Minute, time.Minute), "test", 0, nil)

	for i := 0; i < 2; i++ {
		if _, err := parser.Parse(context.Background(), []string{"Метод"}); err == nil {
			t.Error("expected error")
		}
	}
	if calls != 2 {
		t.Errorf("expected errors not to be cached, got %d calls", calls)
	}
}

func TestCached_DropsCorruptEntries(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set(cache.Key("parse:test", "Метод"), []byte("not json"), 0)

	calls := 0
	inner := ParserFunc(func(ctx context.Context, tokens []string) ([]model.Annotation, error) {
		calls++
		return []model.Annotation{{Index: 0, Head: 0}}, nil
	})

	parser := NewCached(inner, c, "test", 0, nil)
	if _, err := parser.Parse(context.Background(), []string{"Метод"}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("expected corrupt entry to be reparsed, got %d calls", calls)
	}
}
