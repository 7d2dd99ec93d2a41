package capability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const validProfile = "version: \"1\"\neffect: drawPath\nmax_parts: 8\n"

func wait(t *testing.T, ch <-chan Ready) Ready {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for capability")
		return Unavailable
	}
}

// TestLoaderAvailable 测试成功加载
func TestLoaderAvailable(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(validProfile))
	}))
	defer srv.Close()

	l := NewLoader(&HTTPFetcher{URL: srv.URL}, time.Second)
	if got := wait(t, l.Ensure(context.Background())); got != Available {
		t.Fatalf("Ensure() = %v, want available", got)
	}

	// 已加载：立即可读，不再请求
	select {
	case r := <-l.Ensure(context.Background()):
		if r != Available {
			t.Errorf("second Ensure() = %v", r)
		}
	default:
		t.Error("second Ensure() should resolve immediately")
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}
	if r, ok := l.Status(); !ok || r != Available {
		t.Errorf("Status() = %v, %v", r, ok)
	}
	if got := MaxParts(l); got != 8 {
		t.Errorf("MaxParts() = %d, want 8 from profile", got)
	}
}

// TestLoaderFailuresDegrade 测试各类失败均降级为不可用
func TestLoaderFailuresDegrade(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"非2xx", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}},
		{"无效YAML", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("version: [\n"))
		}},
		{"不支持的效果", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("version: \"1\"\neffect: morph\n"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			l := NewLoader(&HTTPFetcher{URL: srv.URL}, time.Second)
			if got := wait(t, l.Ensure(context.Background())); got != Unavailable {
				t.Errorf("Ensure() = %v, want unavailable", got)
			}
		})
	}
}

// TestLoaderNetworkError 测试网络错误降级，且不会重试
func TestLoaderNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	l := NewLoader(&HTTPFetcher{URL: url}, time.Second)
	if got := wait(t, l.Ensure(context.Background())); got != Unavailable {
		t.Errorf("Ensure() = %v, want unavailable", got)
	}
	wait(t, l.Ensure(context.Background()))
	if l.Attempts() != 1 {
		t.Errorf("Attempts() = %d, want 1", l.Attempts())
	}
}

// TestLoaderSharesInFlight 测试加载进行中的并发请求共享一次加载
func TestLoaderSharesInFlight(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	f := FetcherFunc(func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []byte(validProfile), nil
	})
	l := NewLoader(f, time.Second)

	const n = 8
	chans := make([]<-chan Ready, n)
	for i := range chans {
		chans[i] = l.Ensure(context.Background())
	}
	// 等待第一次加载真正开始
	deadline := time.Now().Add(time.Second)
	for atomic.LoadInt32(&calls) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	close(release)

	var wg sync.WaitGroup
	for _, ch := range chans {
		wg.Add(1)
		go func(ch <-chan Ready) {
			defer wg.Done()
			if r := <-ch; r != Available {
				t.Errorf("shared result = %v", r)
			}
		}(ch)
	}
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("fetch calls = %d, want 1", got)
	}
}

// TestLoaderNilFetcher 测试没有资源地址时直接不可用
func TestLoaderNilFetcher(t *testing.T) {
	l := NewLoader(nil, 0)
	select {
	case r := <-l.Ensure(context.Background()):
		if r != Unavailable {
			t.Errorf("Ensure() = %v", r)
		}
	default:
		t.Fatal("nil fetcher should resolve immediately")
	}
	if l.Attempts() != 0 {
		t.Errorf("Attempts() = %d, want 0", l.Attempts())
	}
}

// TestLoaderCallerCancel 测试调用方取消不影响加载结果缓存
func TestLoaderCallerCancel(t *testing.T) {
	release := make(chan struct{})
	f := FetcherFunc(func(ctx context.Context) ([]byte, error) {
		<-release
		return nil, errors.New("boom")
	})
	l := NewLoader(f, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	l.Ensure(ctx)
	cancel()
	close(release)

	if got := wait(t, l.Ensure(context.Background())); got != Unavailable {
		t.Errorf("Ensure() = %v, want unavailable", got)
	}
	if l.Attempts() != 1 {
		t.Errorf("Attempts() = %d, want 1", l.Attempts())
	}
}

// TestStatic 测试固定来源
func TestStatic(t *testing.T) {
	if r := <-Static(Available).Ensure(context.Background()); r != Available {
		t.Errorf("Static(Available) = %v", r)
	}
	if Available.String() != "available" || Unavailable.String() != "unavailable" {
		t.Error("unexpected String()")
	}
}

// TestParseProfile 测试描述文件校验
func TestParseProfile(t *testing.T) {
	p, err := ParseProfile([]byte(validProfile))
	if err != nil {
		t.Fatalf("ParseProfile() error: %v", err)
	}
	if p.MaxParts != 8 {
		t.Errorf("MaxParts = %d", p.MaxParts)
	}
	if _, err := ParseProfile([]byte("effect: drawPath\n")); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("missing version err = %v", err)
	}
}

// TestMaxPartsWithoutLimiter 测试不提供上限的来源与加载失败时均为不限
func TestMaxPartsWithoutLimiter(t *testing.T) {
	if got := MaxParts(Static(Available)); got != 0 {
		t.Errorf("MaxParts(Static) = %d, want 0", got)
	}
	l := NewLoader(FetcherFunc(func(context.Context) ([]byte, error) {
		return []byte("version: \"1\"\neffect: other\nmax_parts: 4\n"), nil
	}), time.Second)
	if got := wait(t, l.Ensure(context.Background())); got != Unavailable {
		t.Fatalf("Ensure() = %v, want unavailable", got)
	}
	if got := l.MaxParts(); got != 0 {
		t.Errorf("MaxParts() after failed load = %d, want 0", got)
	}
}
