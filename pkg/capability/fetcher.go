package capability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"gopkg.in/yaml.v3"
)

var (
	// ErrBadStatus 服务器返回非 2xx
	ErrBadStatus = errors.New("capability: unexpected status")
	// ErrInvalidProfile 描述文件无法解析或不支持
	ErrInvalidProfile = errors.New("capability: invalid profile")
)

// maxProfileSize 描述文件大小上限
const maxProfileSize = 64 << 10

// Fetcher 获取能力描述文件
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FetcherFunc 函数适配器
type FetcherFunc func(ctx context.Context) ([]byte, error)

// Fetch 调用 f
func (f FetcherFunc) Fetch(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// HTTPFetcher 通过 HTTP GET 获取描述文件
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// Fetch 发起请求，非 2xx 返回 ErrBadStatus
func (h *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", h.URL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", h.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d from %s", ErrBadStatus, resp.StatusCode, h.URL)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", h.URL, err)
	}
	return data, nil
}

// Profile 能力描述文件
//
//	version: "1"
//	effect: drawPath
//	max_parts: 16
type Profile struct {
	Version  string `yaml:"version"`
	Effect   string `yaml:"effect"`
	MaxParts int    `yaml:"max_parts"`
}

// EffectDrawPath 唯一支持的效果名
const EffectDrawPath = "drawPath"

// ParseProfile 解析并校验描述文件
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if p.Version == "" {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidProfile)
	}
	if p.Effect != EffectDrawPath {
		return nil, fmt.Errorf("%w: unsupported effect %q", ErrInvalidProfile, p.Effect)
	}
	if p.MaxParts < 0 {
		return nil, fmt.Errorf("%w: negative max_parts", ErrInvalidProfile)
	}
	return &p, nil
}
