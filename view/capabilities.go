package view

import (
	"github.com/mjsandagi/riichi-mahjong/mahjong"
)

// ChiOption 一种吃牌选择：用手中哪两张牌与弃牌组成顺子
type ChiOption struct {
	OptionIndex    int            `json:"option_index"`
	TileIndices    []int          `json:"tile_indices"`
	ResultingTiles []mahjong.Tile `json:"resulting_tiles"`
}

// Capabilities 服务器断言的当前决策点可用操作集合
// 每次快照/事件都下发新的描述符，整体替换旧值，绝不跨快照合并
type Capabilities struct {
	PlayerIndex int   `json:"player_index"`
	Phase       Phase `json:"phase"`

	CanDiscard     bool  `json:"can_discard"`
	DiscardIndices []int `json:"discard_indices"`

	CanRiichi            bool  `json:"can_riichi"`
	RiichiDiscardIndices []int `json:"riichi_discard_indices"`

	CanTsumo  bool     `json:"can_tsumo"`
	TsumoYaku []string `json:"tsumo_yaku"`

	CanRon  bool     `json:"can_ron"`
	RonYaku []string `json:"ron_yaku"`

	CanPon bool `json:"can_pon"`
	CanKan bool `json:"can_kan"`

	CanChi     bool        `json:"can_chi"`
	ChiOptions []ChiOption `json:"chi_options"`

	CanPass bool `json:"can_pass"`
}
