package infra

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewRedisClientRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	if _, err := NewRedisClient(ctx, "", "tokenizer"); err == nil {
		t.Fatalf("empty url must be rejected")
	}
	if _, err := NewRedisClient(ctx, "not-a-url", "tokenizer"); err == nil {
		t.Fatalf("malformed url must be rejected")
	}
}

func TestNewRedisClientConnects(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr(), "tokenizer")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	if client.Options().ClientName != "tokenizer" {
		t.Fatalf("client name not applied: %q", client.Options().ClientName)
	}
	if client.Options().DialTimeout == 0 {
		t.Fatalf("dial timeout must be bounded")
	}
}

func TestNewRedisClientFailsFastWhenDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisClient(context.Background(), "redis://"+addr, "tokenizer"); err == nil {
		t.Fatalf("unreachable redis must error")
	}
}
