package view

import (
	"github.com/mjsandagi/riichi-mahjong/mahjong"
)

// Phase 服务器端的回合阶段
type Phase string

const (
	PhaseSetup        Phase = "SETUP"
	PhaseDraw         Phase = "DRAW"
	PhaseDiscard      Phase = "DISCARD"
	PhaseCallForWin   Phase = "CALL_FOR_WIN"
	PhaseCallForMeld  Phase = "CALL_FOR_MELD"
	PhaseGameOverWin  Phase = "GAME_OVER_WIN"
	PhaseGameOverDraw Phase = "GAME_OVER_DRAW"
)

// PlayerState 单个玩家的快照数据
// 其他玩家的 hand 为空、hand_size 给出张数；副露以文本格式下发，见 mahjong.DecodeMeld
type PlayerState struct {
	Index     int            `json:"index"`
	Name      string         `json:"name"`
	Score     int            `json:"score"`
	IsRiichi  bool           `json:"is_riichi"`
	IsMenzen  bool           `json:"is_menzen"`
	Hand      []mahjong.Tile `json:"hand"`
	HandSize  int            `json:"hand_size"`
	Discards  []mahjong.Tile `json:"discards"`
	OpenMelds []string       `json:"open_melds"`
	Shanten   int            `json:"shanten"`
	Waits     []mahjong.Tile `json:"waits"`
	IsFuriten bool           `json:"is_furiten"`
}

// Snapshot 一次完整的对局状态广播，整包替换上一份，不做增量合并
// drawn_tile 只对当前行动玩家下发；available_actions 只对可行动玩家有意义
type Snapshot struct {
	TurnCount         int            `json:"turn_count"`
	Phase             Phase          `json:"phase"`
	ActivePlayerIndex int            `json:"active_player_index"`
	Players           []PlayerState  `json:"players"`
	WallRemaining     int            `json:"wall_remaining"`
	DoraIndicators    []mahjong.Tile `json:"dora_indicators"`
	LastDiscard       *mahjong.Tile  `json:"last_discard"`
	LastDiscardPlayer *int           `json:"last_discard_player"`
	DrawnTile         *mahjong.Tile  `json:"drawn_tile"`
	AvailableActions  *Capabilities  `json:"available_actions"`
	WinnerIndex       *int           `json:"winner_index"`
	WinningYaku       []string       `json:"winning_yaku"`
}

// GameEvent 对局过程事件（摸牌、出牌、鸣牌等），用于界面日志展示
type GameEvent struct {
	EventType   string         `json:"event_type"`
	PlayerIndex *int           `json:"player_index"`
	Tile        *mahjong.Tile  `json:"tile"`
	Tiles       []mahjong.Tile `json:"tiles"`
	Message     string         `json:"message"`
	Yaku        []string       `json:"yaku"`
	Data        map[string]any `json:"data"`
}
