package mahjong

import "fmt"

// Suit 花色，数值与服务器序列化保持一致
type Suit int

const (
	SuitMan    Suit = iota + 1 // 万子
	SuitPin                    // 筒子
	SuitSou                    // 索子
	SuitHonour                 // 字牌（风牌和箭牌）
)

// 字牌 rank 取值 (1-7)
const (
	HonourEast = iota + 1
	HonourSouth
	HonourWest
	HonourNorth
	HonourWhite
	HonourGreen
	HonourRed
)

// Tile 一张牌。值类型，结构相等即同一种牌
// Red 为赤宝牌标记，赤 5 与普通 5 不相等
type Tile struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"value"`
	Red  bool `json:"is_red"`
}

func (t Tile) IsHonour() bool {
	return t.Suit == SuitHonour
}

func (t Tile) IsTerminal() bool {
	return t.Suit != SuitHonour && (t.Rank == 1 || t.Rank == 9)
}

var honourNames = [...]string{"East", "South", "West", "North", "Haku", "Hatsu", "Chun"}

// String 输出短格式："5m"、"5p_r"、"East"、"Haku"
func (t Tile) String() string {
	if t.Suit == SuitHonour {
		if t.Rank >= 1 && t.Rank <= len(honourNames) {
			return honourNames[t.Rank-1]
		}
		return "?"
	}
	suffix := ""
	if t.Red {
		suffix = "_r"
	}
	switch t.Suit {
	case SuitMan:
		return fmt.Sprintf("%dm%s", t.Rank, suffix)
	case SuitPin:
		return fmt.Sprintf("%dp%s", t.Rank, suffix)
	case SuitSou:
		return fmt.Sprintf("%ds%s", t.Rank, suffix)
	}
	return "?"
}
