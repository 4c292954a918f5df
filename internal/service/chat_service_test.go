package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestChatPostAndHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.register(t, "apoc")

	for _, text := range []string{"  hello  ", "", strings.Repeat("я", 501)} {
		_, err := env.chat.Post(ctx, id, text)
		if text == "  hello  " {
			if err != nil {
				t.Fatalf("post: %v", err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("post %d runes: err = %v, want invalid input", len([]rune(text)), err)
		}
	}

	if _, err := env.chat.Post(ctx, id, strings.Repeat("я", 500)); err != nil {
		t.Fatalf("post 500 runes: %v", err)
	}

	msgs, err := env.chat.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Text != "hello" || msgs[0].Username != "apoc" {
		t.Fatalf("first message = %+v", msgs[0])
	}
}

func TestChatHistoryKeepsLatest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.register(t, "mouse")

	for i := 0; i < ChatHistoryLimit+10; i++ {
		env.clock.Advance(time.Second)
		if _, err := env.chat.Post(ctx, id, "msg"); err != nil {
			t.Fatalf("post: %v", err)
		}
	}
	msgs, err := env.chat.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != ChatHistoryLimit {
		t.Fatalf("got %d messages", len(msgs))
	}
	if !msgs[0].CreatedAt.Before(msgs[len(msgs)-1].CreatedAt) {
		t.Fatal("history not in chronological order")
	}
	if want := t0.Add(11 * time.Second); !msgs[0].CreatedAt.Equal(want) {
		t.Fatalf("oldest kept = %v, want %v", msgs[0].CreatedAt, want)
	}
}
