package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/adapters/redis"
	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/domain"
)

func TestCache_RoundTripExtractedRecords(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	guest := "Pedro Oliveira"
	in := []domain.ExtractedReservation{
		{GuestName: &guest, SourceDocID: "doc-1", SourcePage: 1, Confidence: 0.85},
	}
	if err := c.Set(ctx, "extract:abc", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out []domain.ExtractedReservation
	ok, err := c.Get(ctx, "extract:abc", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(out) != 1 || out[0].GuestName == nil || *out[0].GuestName != guest {
		t.Fatalf("unexpected round trip: %+v", out)
	}
	if out[0].Confidence != 0.85 {
		t.Fatalf("confidence lost: %+v", out[0])
	}
}

func TestCache_MissAndDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var dst []domain.ExtractedReservation
	ok, err := c.Get(ctx, "extract:none", &dst)
	if err != nil || ok {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "extract:gone", dst, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "extract:gone"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = c.Get(ctx, "extract:gone", &dst)
	if ok {
		t.Fatalf("expected miss after delete")
	}
}
