package playback

// State 播放控制器状态
type State int

const (
	// StateIdle 尚未播放，或构建结果为空
	StateIdle State = iota
	// StateBuilding 等待能力加载完成
	StateBuilding
	// StatePlaying 时间轴推进中
	StatePlaying
	// StatePaused 已冻结，只能通过 Play/Replay 从头开始
	StatePaused
	// StateCompleted 播放到结尾，停留在最后一帧
	StateCompleted
	// StateKilled 已被 Kill 撤销
	StateKilled
)

var stateNames = map[State]string{
	StateIdle:      "idle",
	StateBuilding:  "building",
	StatePlaying:   "playing",
	StatePaused:    "paused",
	StateCompleted: "completed",
	StateKilled:    "killed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
