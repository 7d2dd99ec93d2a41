// Package motion 提供减弱动效策略以及对应的降级时间轴。
package motion

import (
	"os"
	"strings"

	"github.com/decker502/brandintro/pkg/timeline"
	"github.com/decker502/brandintro/pkg/tracks"
)

// EnvVar 环境变量开关，取值 1/true/yes/on 表示减弱动效
const EnvVar = "BRANDINTRO_REDUCED_MOTION"

// FallbackID 降级时间轴的名称
const FallbackID = "reduced-motion"

// FallbackDuration 降级淡入时长
const FallbackDuration = 0.6

// Policy 每次播放请求读取一次
type Policy interface {
	ShouldReduceMotion() bool
}

// PolicyFunc 函数适配器
type PolicyFunc func() bool

// ShouldReduceMotion 实现 Policy
func (f PolicyFunc) ShouldReduceMotion() bool {
	return f()
}

// Static 固定结果的策略
func Static(reduce bool) Policy {
	return PolicyFunc(func() bool { return reduce })
}

// Env 读取环境变量的策略（每次调用重新读取）
func Env() Policy {
	return PolicyFunc(func() bool {
		return truthy(os.Getenv(EnvVar))
	})
}

// Preference 用户偏好来源（如设置管理器）
type Preference interface {
	ReducedMotion() bool
}

// FromPreference 读取用户偏好，pref 为 nil 时总是返回 false
func FromPreference(pref Preference) Policy {
	return PolicyFunc(func() bool {
		return pref != nil && pref.ReducedMotion()
	})
}

// Any 任一策略要求减弱即减弱；nil 策略被忽略
func Any(policies ...Policy) Policy {
	return PolicyFunc(func() bool {
		for _, p := range policies {
			if p != nil && p.ShouldReduceMotion() {
				return true
			}
		}
		return false
	})
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Fallback 构建降级时间轴：对一个轨道做单次透明度淡入，不含 Cue。
// 目标优先级：容器、徽标、其余第一个已挂载的轨道。没有任何轨道时返回 nil。
func Fallback(reg *tracks.Registry) *timeline.Timeline {
	name, ok := fallbackTrack(reg)
	if !ok {
		return nil
	}
	b := timeline.NewBuilder(FallbackID, nil).WithBudget(FallbackDuration)
	b.FromTo(timeline.On(name), 0, FallbackDuration, "outQuad",
		timeline.Props{timeline.Opacity: 0},
		timeline.Props{timeline.Opacity: 1})
	return b.Build()
}

func fallbackTrack(reg *tracks.Registry) (string, bool) {
	for _, name := range []string{tracks.Container, tracks.Emblem} {
		if reg.Has(name) {
			return name, true
		}
	}
	if names := reg.Names(); len(names) > 0 {
		return names[0], true
	}
	return "", false
}
