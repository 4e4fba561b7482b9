package main

import (
	"context"
	"testing"

	"musicroot/internal/app/music"
	"musicroot/internal/config"
)

func TestBootstrapDemoDataIsRepeatable(t *testing.T) {
	ctx := context.Background()
	b, err := openBackend(ctx, &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}})
	if err != nil {
		t.Fatalf("openBackend: %v", err)
	}
	defer b.Close()

	svc := newServices(b)
	for i := 0; i < 2; i++ {
		if err := bootstrapDemoData(ctx, b.demoCategories, svc); err != nil {
			t.Fatalf("bootstrap #%d: %v", i+1, err)
		}
	}

	account, err := svc.musicians.Authenticate(ctx, demoEmail, demoPassword)
	if err != nil {
		t.Fatalf("authenticate demo musician: %v", err)
	}

	own, err := svc.music.ListOwn(ctx, account.ID, music.OwnFilter{}, 1, 50)
	if err != nil {
		t.Fatalf("ListOwn: %v", err)
	}
	if own.TotalItems != 6 {
		t.Fatalf("expected 6 demo tracks, got %d", own.TotalItems)
	}

	onAlbum, err := svc.music.ListOwn(ctx, account.ID, music.OwnFilter{Album: "kind of"}, 1, 50)
	if err != nil {
		t.Fatalf("ListOwn album filter: %v", err)
	}
	if onAlbum.TotalItems != 3 {
		t.Fatalf("expected 3 tracks on Kind of Blue, got %d", onAlbum.TotalItems)
	}
}
