package view

const noSelection = -1

// Selection 手牌选择状态机：Empty 或 Selected(index)
// 序号只相对当前快照的手牌排列有意义，快照更新后必须 Reset
type Selection struct {
	index    int
	onCommit func(index int)
	onWarn   func(msg string)
}

// NewSelection 创建选择状态机
// onCommit 在同一张牌被连点两次（选中即打出的快捷操作）时触发
// onWarn 在未选牌就提交时向玩家提示
func NewSelection(onCommit func(int), onWarn func(string)) *Selection {
	return &Selection{index: noSelection, onCommit: onCommit, onWarn: onWarn}
}

// Reset 无条件清空选择，每次快照落地后调用
func (s *Selection) Reset() {
	s.index = noSelection
}

// Index 返回当前选中的手牌序号
func (s *Selection) Index() (int, bool) {
	if s.index == noSelection {
		return 0, false
	}
	return s.index, true
}

// Activate 点选手牌
// 再次点击已选中的同一张牌视为"选中后立即打出"，触发 onCommit 并回到 Empty
// 点击另一张牌则改为选中那张，不触发提交
func (s *Selection) Activate(index int) {
	if s.index == index {
		s.index = noSelection
		if s.onCommit != nil {
			s.onCommit(index)
		}
		return
	}
	s.index = index
}

// Commit 显式提交（打牌或立直打牌按钮）
// 未选中时提示玩家并保持原状，不静默失败；成功时返回序号并回到 Empty
func (s *Selection) Commit() (int, bool) {
	if s.index == noSelection {
		if s.onWarn != nil {
			s.onWarn("No tile selected")
		}
		return 0, false
	}
	index := s.index
	s.index = noSelection
	return index, true
}
