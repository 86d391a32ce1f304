package view

import (
	"sync"

	"github.com/mjsandagi/riichi-mahjong/common/log"
	"github.com/mjsandagi/riichi-mahjong/mahjong"
)

// Renderer 渲染端，只消费完整的 ViewModel，本层不触碰任何展示原语
type Renderer interface {
	Render(vm *ViewModel)
	ShowWarning(msg string)
	ShowEvent(ev *GameEvent)
}

// Sender 出站消息通道，由传输层实现，发送即忘
type Sender interface {
	Send(route string, payload any) error
}

// Synchronizer 视图同步器：持有最近一次快照与能力描述符，
// 把每个入站快照/事件翻译成 ViewModel 交给渲染端，
// 把渲染端的输入回调翻译成出站操作消息
// 所有入口串行处理，同一时刻只消化一个事件
type Synchronizer struct {
	mu sync.Mutex

	renderer  Renderer
	sender    Sender
	sessionID string

	localSeat int
	snapshot  *Snapshot
	caps      *Capabilities
	selection *Selection
	closed    bool
}

func NewSynchronizer(renderer Renderer, sender Sender, sessionID string) *Synchronizer {
	s := &Synchronizer{
		renderer:  renderer,
		sender:    sender,
		sessionID: sessionID,
		localSeat: -1,
	}
	s.selection = NewSelection(s.sendDiscard, renderer.ShowWarning)
	return s
}

// SetLocalSeat 入座确认后记录本家座位并立即重算画面
func (s *Synchronizer) SetLocalSeat(seat int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.localSeat = seat
	s.render()
}

// LocalSeat 本家座位，-1 表示尚未入座
func (s *Synchronizer) LocalSeat() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.localSeat
}

// OnSnapshot 整包替换当前快照
// 手牌序号随新快照全部失效，选择状态无条件清空
func (s *Synchronizer) OnSnapshot(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.snapshot = snap
	s.caps = snap.AvailableActions
	s.selection.Reset()
	s.render()
}

// OnCapabilities 不带完整快照的决策点事件，新描述符整体替换旧值
func (s *Synchronizer) OnCapabilities(caps *Capabilities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.caps = caps
	s.render()
}

// OnGameEvent 过程事件只投递给渲染端做日志展示，随后重算一次画面
func (s *Synchronizer) OnGameEvent(ev *GameEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.renderer.ShowEvent(ev)
	s.render()
}

// OnGameOver 终局：冻结后续同步，给出按分数降序的结算列表
// 在收到重置信号之前不再接受任何快照或输入
func (s *Synchronizer) OnGameOver(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.snapshot = snap
	s.caps = nil
	s.selection.Reset()
	s.closed = true

	vm := s.buildViewModel()
	vm.Closed = true
	vm.Ranking = rankPlayers(snap)
	s.renderer.Render(vm)
}

// OnReset 丢弃全部状态并解除冻结，等待新的快照
func (s *Synchronizer) OnReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	s.caps = nil
	s.selection.Reset()
	s.closed = false
	s.render()
}

// OnTileActivated 渲染端回调：玩家点选了本家第 index 张牌
func (s *Synchronizer) OnTileActivated(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.snapshot == nil {
		return
	}
	s.selection.Activate(index)
	s.render()
}

// Invoke 渲染端回调：玩家点击了某个操作按钮
func (s *Synchronizer) Invoke(offer ActionOffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	switch offer.Kind {
	case ActionDiscard:
		if index, ok := s.selection.Commit(); ok {
			s.sendDiscard(index)
		}
	case ActionRiichi:
		// 立直在提交时才要求已选牌，未选则由状态机提示玩家
		if index, ok := s.selection.Commit(); ok {
			s.sendAction(ActionMessage{ActionType: ActionRiichi.Wire(), TileIndex: &index})
		}
	case ActionChi:
		opt := offer.ChiOption
		s.sendAction(ActionMessage{ActionType: ActionChi.Wire(), ChiOption: &opt})
	default:
		s.sendAction(ActionMessage{ActionType: offer.Kind.Wire()})
	}
	s.render()
}

// RequestStart 请求开局（空位由服务器补 AI）
func (s *Synchronizer) RequestStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sender.Send(RouteStartGame, SessionMessage{SessionID: s.sessionID}); err != nil {
		log.Warn("发送开局请求失败: %v", err)
	}
}

// RequestRestart 请求重开一局
func (s *Synchronizer) RequestRestart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sender.Send(RouteRestartGame, SessionMessage{SessionID: s.sessionID}); err != nil {
		log.Warn("发送重开请求失败: %v", err)
	}
}

func (s *Synchronizer) sendDiscard(index int) {
	s.sendAction(ActionMessage{ActionType: ActionDiscard.Wire(), TileIndex: &index})
}

func (s *Synchronizer) sendAction(msg ActionMessage) {
	msg.SessionID = s.sessionID
	if err := s.sender.Send(RoutePlayerAction, msg); err != nil {
		// 发送失败不致命：连接层负责上报连通性，下一份快照会覆盖画面
		log.Warn("发送操作消息失败: action=%s, err=%v", msg.ActionType, err)
	}
}

func (s *Synchronizer) render() {
	s.renderer.Render(s.buildViewModel())
}

// buildViewModel 从当前快照、描述符和选择状态重建渲染数据
func (s *Synchronizer) buildViewModel() *ViewModel {
	vm := emptyViewModel()
	snap := s.snapshot
	if snap == nil {
		return vm
	}

	vm.Phase = snap.Phase
	vm.TurnCount = snap.TurnCount
	vm.WallRemaining = snap.WallRemaining
	vm.DoraIndicators = snap.DoraIndicators
	vm.LastDiscard = snap.LastDiscard
	vm.ActiveSlot = mahjong.DisplaySlot(snap.ActivePlayerIndex, s.localSeat)
	if snap.WinnerIndex != nil {
		vm.WinnerSeat = *snap.WinnerIndex
	}
	vm.WinningYaku = snap.WinningYaku

	for _, p := range snap.Players {
		slot := mahjong.DisplaySlot(p.Index, s.localSeat)
		if slot < 0 || slot >= len(vm.Slots) {
			continue
		}
		sv := SeatView{
			Seat:       p.Index,
			Slot:       slot,
			Name:       p.Name,
			Score:      p.Score,
			Riichi:     p.IsRiichi,
			Menzen:     p.IsMenzen,
			Furiten:    p.IsFuriten,
			Shanten:    p.Shanten,
			Active:     p.Index == snap.ActivePlayerIndex,
			HandSize:   p.HandSize,
			DrawnIndex: -1,
			Waits:      p.Waits,
			Discards:   p.Discards,
		}
		if len(p.OpenMelds) > 0 {
			sv.Melds = make([]mahjong.Meld, 0, len(p.OpenMelds))
			for _, raw := range p.OpenMelds {
				sv.Melds = append(sv.Melds, mahjong.DecodeMeld(raw))
			}
		}
		if p.Index == s.localSeat {
			sv.Hand = p.Hand
			// 摸切阶段把刚摸到的那张单独展示（引擎把摸牌追加在手牌末尾）
			if snap.Phase == PhaseDiscard && snap.ActivePlayerIndex == p.Index &&
				snap.DrawnTile != nil && len(p.Hand) > 0 {
				last := len(p.Hand) - 1
				if p.Hand[last] == *snap.DrawnTile {
					sv.Hand = p.Hand[:last]
					sv.Drawn = snap.DrawnTile
					sv.DrawnIndex = last
				}
			}
		}
		vm.Slots[slot] = sv
	}

	if index, ok := s.selection.Index(); ok {
		vm.SelectedIndex = index
	}
	vm.Actions = Resolve(s.caps, s.selection, s.localSeat)

	return vm
}
