package blog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lysyi3m/fitbhaskar/app/gateway"
	"github.com/lysyi3m/fitbhaskar/app/gateway/gatewaytest"
	"github.com/lysyi3m/fitbhaskar/app/metrics"
)

func TestLoadApprovedPosts_OnlyApproved(t *testing.T) {
	fake := scenarioFake()
	defer fake.Close()

	loader := NewFeedLoader(newGateway(t, fake), nil)
	result := loader.LoadApprovedPosts(context.Background())

	if result.Fallback || result.Err != nil {
		t.Fatalf("Expected a live feed, got fallback=%t err=%v", result.Fallback, result.Err)
	}
	if len(result.Posts) != 1 || result.Posts[0].Subject != "X" {
		t.Errorf("Expected only post 'X', got %+v", result.Posts)
	}
}

func TestLoadApprovedPosts_NeverLeaksUnapproved(t *testing.T) {
	fake := gatewaytest.New(
		gatewaytest.Row{Row: 1, Approved: "Yes"},
		gatewaytest.Row{Row: 2, Approved: "pending"},
		gatewaytest.Row{Row: 3, Approved: ""},
		gatewaytest.Row{Row: 4, Approved: " YES "},
		gatewaytest.Row{Row: 5, Approved: "No"},
	)
	defer fake.Close()

	result := NewFeedLoader(newGateway(t, fake), nil).LoadApprovedPosts(context.Background())

	if len(result.Posts) != 2 || result.Posts[0].Row != 1 || result.Posts[1].Row != 4 {
		t.Errorf("Expected rows [1 4] in gateway order, got %+v", result.Posts)
	}
	for _, p := range result.Posts {
		if !p.IsApproved() {
			t.Errorf("Public feed contains unapproved row %d", p.Row)
		}
	}
}

func TestLoadApprovedPosts_GatewayDown(t *testing.T) {
	fake := scenarioFake()
	defer fake.Close()
	fake.SetDown(true)

	registry := metrics.NewRegistry()
	loader := NewFeedLoader(newGateway(t, fake), registry)
	result := loader.LoadApprovedPosts(context.Background())

	if !result.Fallback {
		t.Fatal("Expected fallback feed")
	}
	if !gateway.IsNetworkError(result.Err) {
		t.Errorf("Expected network error, got: %v", result.Err)
	}
	if len(result.Posts) != 2 || result.Posts[0].Name != "Rahul Sharma" {
		t.Errorf("Expected the two sample posts, got %+v", result.Posts)
	}
	if loader.Loading() {
		t.Error("Loading indicator must clear after a failed load")
	}
	if fake.CallCount() != 1 {
		t.Errorf("Expected exactly one gateway call, got %d", fake.CallCount())
	}
}

func TestLoadApprovedPosts_RejectionFallsBack(t *testing.T) {
	fake := gatewaytest.New()
	defer fake.Close()
	fake.SetRawBody(`{"status": "error", "message": "quota"}`)

	result := NewFeedLoader(newGateway(t, fake), nil).LoadApprovedPosts(context.Background())
	if !result.Fallback || !gateway.IsRejection(result.Err) {
		t.Errorf("Expected fallback on rejection, got fallback=%t err=%v", result.Fallback, result.Err)
	}
}

func TestLoadApprovedPosts_LoadingIndicator(t *testing.T) {
	gw := newBlockingGateway(&gateway.ListResponse{}, nil)
	loader := NewFeedLoader(gw, nil)

	done := make(chan LoadResult)
	go func() { done <- loader.LoadApprovedPosts(context.Background()) }()

	<-gw.started
	if !loader.Loading() {
		t.Error("Expected loading indicator while the gateway call is in flight")
	}

	close(gw.release)
	<-done

	if loader.Loading() {
		t.Error("Loading indicator must clear after a successful load")
	}
}

func TestLoadApprovedPosts_OverlappingLoadsShareOneCall(t *testing.T) {
	gw := newBlockingGateway(&gateway.ListResponse{Posts: []gateway.RawPost{
		{Row: gateway.LooseNumber(1), Approved: gateway.Loose("Yes")},
	}}, nil)
	loader := NewFeedLoader(gw, nil)

	var wg sync.WaitGroup
	results := make([]LoadResult, 3)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = loader.LoadApprovedPosts(context.Background())
		}(i)
	}

	<-gw.started
	time.Sleep(20 * time.Millisecond)
	close(gw.release)
	wg.Wait()

	if gw.Calls() != 1 {
		t.Errorf("Expected overlapping loads to share 1 gateway call, got %d", gw.Calls())
	}
	for i, r := range results {
		if len(r.Posts) != 1 {
			t.Errorf("Result %d: expected 1 post, got %d", i, len(r.Posts))
		}
	}
}

func TestReloadApprovedPosts_StartsNewCall(t *testing.T) {
	gw := newBlockingGateway(&gateway.ListResponse{}, nil)
	loader := NewFeedLoader(gw, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		loader.LoadApprovedPosts(context.Background())
	}()
	<-gw.started

	go func() {
		defer wg.Done()
		loader.ReloadApprovedPosts(context.Background())
	}()

	deadline := time.Now().Add(2 * time.Second)
	for gw.Calls() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	close(gw.release)
	wg.Wait()

	if gw.Calls() != 2 {
		t.Errorf("Expected reload to start its own gateway call, got %d calls", gw.Calls())
	}
}
