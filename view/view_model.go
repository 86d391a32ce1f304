package view

import (
	"sort"

	"github.com/mjsandagi/riichi-mahjong/mahjong"
)

// SeatView 单个显示槽位的渲染数据
type SeatView struct {
	Seat    int // 绝对座位
	Slot    int // 显示槽位，0 = 本家
	Name    string
	Score   int
	Riichi  bool
	Menzen  bool
	Furiten bool
	Shanten int
	Active  bool

	// 仅本家：手牌与单独展示的摸牌
	// DrawnIndex 是摸牌在完整手牌序列中的序号，-1 表示没有
	Hand       []mahjong.Tile
	HandSize   int
	Drawn      *mahjong.Tile
	DrawnIndex int

	Waits    []mahjong.Tile
	Discards []mahjong.Tile
	Melds    []mahjong.Meld
}

// RankEntry 终局结算的一行
type RankEntry struct {
	Rank  int
	Seat  int
	Name  string
	Score int
}

// ViewModel 每次求解重建的渲染数据，从不持久化
// 槽位下标即显示槽位（0=本家，1..3 依次为下家、对家、上家）
type ViewModel struct {
	Slots          [4]SeatView
	Phase          Phase
	TurnCount      int
	WallRemaining  int
	DoraIndicators []mahjong.Tile
	LastDiscard    *mahjong.Tile
	ActiveSlot     int

	SelectedIndex int // 当前选中的手牌序号，-1 表示未选
	Actions       []ActionOffer

	Closed      bool // 终局后冻结，等待重置信号
	WinnerSeat  int  // -1 表示流局或未结束
	WinningYaku []string
	Ranking     []RankEntry
}

func emptyViewModel() *ViewModel {
	vm := &ViewModel{SelectedIndex: noSelection, ActiveSlot: -1, WinnerSeat: -1, Phase: PhaseSetup}
	for i := range vm.Slots {
		vm.Slots[i] = SeatView{Seat: i, Slot: i, Shanten: -1, DrawnIndex: -1}
	}
	return vm
}

// rankPlayers 按分数降序排名，同分按座位先后
func rankPlayers(snap *Snapshot) []RankEntry {
	if snap == nil {
		return nil
	}
	entries := make([]RankEntry, 0, len(snap.Players))
	for _, p := range snap.Players {
		entries = append(entries, RankEntry{Seat: p.Index, Name: p.Name, Score: p.Score})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
