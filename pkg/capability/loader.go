// Package capability 负责可选的描边绘制能力（drawPath）的探测与加载。
//
// 加载结果只有"可用"和"不可用"两种，任何失败都降级为不可用并记录日志，
// 调用方永远不会收到错误。
package capability

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Ready 能力加载结果
type Ready int

const (
	// Unavailable 能力不可用，变体走裁剪/透明度降级路径
	Unavailable Ready = iota
	// Available 能力可用，变体可以逐路径描边
	Available
)

// String 返回可读名称
func (r Ready) String() string {
	if r == Available {
		return "available"
	}
	return "unavailable"
}

// Source 能力来源。Ensure 返回的通道恰好产出一个结果。
type Source interface {
	Ensure(ctx context.Context) <-chan Ready
}

// DefaultTimeout 单次加载的超时
const DefaultTimeout = 5 * time.Second

// Loader 对一个 Fetcher 至多加载一次，并发请求共享同一次加载
type Loader struct {
	fetcher Fetcher
	timeout time.Duration
	group   singleflight.Group

	mu       sync.Mutex
	done     bool
	ready    Ready
	maxParts int
	attempts int
}

// NewLoader 创建加载器
//
// 参数：
//   - f: 资源获取器，为 nil 时直接判定为不可用（不发起任何请求）
//   - timeout: 加载超时，≤0 时使用 DefaultTimeout
func NewLoader(f Fetcher, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{
		fetcher: f,
		timeout: timeout,
	}
}

// Ensure 请求能力。已有结果时返回的通道立即可读；
// 加载进行中时与正在进行的加载共享结果。
// ctx 只影响调用方的等待，不会取消共享的加载。
func (l *Loader) Ensure(ctx context.Context) <-chan Ready {
	ch := make(chan Ready, 1)

	l.mu.Lock()
	if l.done {
		ch <- l.ready
		l.mu.Unlock()
		return ch
	}
	if l.fetcher == nil {
		l.done = true
		l.ready = Unavailable
		l.mu.Unlock()
		ch <- Unavailable
		return ch
	}
	l.mu.Unlock()

	result := l.group.DoChan("capability", func() (interface{}, error) {
		return l.load(), nil
	})
	go func() {
		select {
		case res := <-result:
			ch <- res.Val.(Ready)
		case <-ctx.Done():
			// 调用方放弃等待；加载仍会完成并缓存结果
		}
	}()
	return ch
}

// Status 返回已缓存的结果；尚未加载完成时 ok 为 false
func (l *Loader) Status() (ready Ready, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ready, l.done
}

// MaxParts 描述文件声明的可单独描边的路径上限，0 表示不限（或尚未加载）
func (l *Loader) MaxParts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxParts
}

// Attempts 实际发起的加载次数
func (l *Loader) Attempts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.attempts
}

func (l *Loader) load() Ready {
	l.mu.Lock()
	if l.done {
		r := l.ready
		l.mu.Unlock()
		return r
	}
	l.attempts++
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	ready := Available
	maxParts := 0
	var profile *Profile
	data, err := l.fetcher.Fetch(ctx)
	if err == nil {
		profile, err = ParseProfile(data)
	}
	if err != nil {
		log.Printf("[CapabilityLoader] Warning: drawPath capability unavailable, using fallback reveal: %v", err)
		ready = Unavailable
	} else {
		maxParts = profile.MaxParts
		log.Printf("[CapabilityLoader] drawPath capability loaded (max_parts %d)", maxParts)
	}

	l.mu.Lock()
	l.done = true
	l.ready = ready
	l.maxParts = maxParts
	l.mu.Unlock()
	return ready
}

// Limiter 能给出路径上限的能力来源（如 Loader）
type Limiter interface {
	MaxParts() int
}

// MaxParts 来源声明的路径上限，来源不提供上限时返回 0（不限）
func MaxParts(s Source) int {
	if l, ok := s.(Limiter); ok {
		return l.MaxParts()
	}
	return 0
}

type staticSource Ready

// Static 立即产出固定结果的能力来源
func Static(r Ready) Source {
	return staticSource(r)
}

func (s staticSource) Ensure(context.Context) <-chan Ready {
	ch := make(chan Ready, 1)
	ch <- Ready(s)
	return ch
}

var (
	defaultMu     sync.Mutex
	defaultLoader *Loader
)

// Configure 设置进程级默认加载器的资源地址。只有第一次调用生效，
// 保证整个进程生命周期内至多尝试一次加载。
//
// 参数：
//   - url: 能力描述文件地址，空字符串表示不加载（始终不可用）
//   - timeout: 加载超时
func Configure(url string, timeout time.Duration) *Loader {
	var f Fetcher
	if url != "" {
		f = &HTTPFetcher{URL: url}
	}
	return ConfigureFetcher(f, timeout)
}

// ConfigureFetcher 与 Configure 相同，但直接指定描述文件来源（如嵌入资源）
func ConfigureFetcher(f Fetcher, timeout time.Duration) *Loader {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLoader != nil {
		return defaultLoader
	}
	defaultLoader = NewLoader(f, timeout)
	return defaultLoader
}

func Default() *Loader {
	return Configure("", 0)
}
