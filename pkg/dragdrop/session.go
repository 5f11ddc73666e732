package dragdrop

// SessionState 拖拽会话状态
//
//	Idle → Armed → Dragging → {Committed | RolledBack} → Idle
type SessionState int

const (
	StateIdle SessionState = iota
	StateArmed
	StateDragging
	StateCommitted
	StateRolledBack
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateDragging:
		return "dragging"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled-back"
	}
	return "unknown"
}

// transitions 合法的状态迁移
var transitions = map[SessionState][]SessionState{
	StateIdle:       {StateArmed},
	StateArmed:      {StateDragging, StateCommitted, StateRolledBack},
	StateDragging:   {StateCommitted, StateRolledBack},
	StateCommitted:  {StateIdle},
	StateRolledBack: {StateIdle},
}

// Session 一次按下到松开手势期间的临时状态
type Session[T any] struct {
	ItemID     string
	Payload    T
	Size       Size
	SourceCell string // 按下时物品的锚点单元格，物品不在网格上时为空
	Groups     []string
	DragTags   []string

	state    SessionState
	ghost    Ghost
	pointerX float64
	pointerY float64

	// hovered 被悬停单元格 -> 它的足迹检查点亮的单元格
	hovered map[string][]string
}

func newSession[T any](itemID string, payload T, size Size, source string, groups, dragTags []string) *Session[T] {
	return &Session[T]{
		ItemID:     itemID,
		Payload:    payload,
		Size:       size.normalize(),
		SourceCell: source,
		Groups:     groups,
		DragTags:   dragTags,
		state:      StateIdle,
		hovered:    make(map[string][]string),
	}
}

// State 当前状态
func (s *Session[T]) State() SessionState {
	return s.state
}

// Pointer 最近一次收到的指针位置
func (s *Session[T]) Pointer() (x, y float64) {
	return s.pointerX, s.pointerY
}

// accepts 会话是否接受放到该分组
func (s *Session[T]) accepts(group string) bool {
	return containsGroup(s.Groups, group)
}

func containsGroup(groups []string, group string) bool {
	for _, g := range groups {
		if g == group {
			return true
		}
	}
	return false
}

// advance 迁移到下一个状态，非法迁移返回 false 且状态不变
func (s *Session[T]) advance(to SessionState) bool {
	for _, next := range transitions[s.state] {
		if next == to {
			s.state = to
			return true
		}
	}
	return false
}
