package mahjong

import (
	"regexp"
	"strings"
)

// MeldKind 副露类型
type MeldKind int

const (
	MeldUnknown MeldKind = iota
	MeldPon              // 碰（刻子）
	MeldChi              // 吃（顺子）
	MeldKan              // 杠
)

func (k MeldKind) String() string {
	switch k {
	case MeldPon:
		return "Pon"
	case MeldChi:
		return "Chi"
	case MeldKan:
		return "Kan"
	default:
		return "Unknown"
	}
}

// Meld 一组副露，由 DecodeMeld 从文本格式解析得到，之后不再修改
type Meld struct {
	Kind  MeldKind
	Tiles []Tile
}

var (
	meldKeywordRe = regexp.MustCompile(`(?i)\[\s*([a-z]+)\s*:`)
	tileTokenRe   = regexp.MustCompile(`[1-9][mps]|East|South|West|North|White|Green|Red|Haku|Hatsu|Chun`)
)

// 字牌全名与传统别名，rank 1-7
var honourRanks = map[string]int{
	"East":  HonourEast,
	"South": HonourSouth,
	"West":  HonourWest,
	"North": HonourNorth,
	"White": HonourWhite,
	"Green": HonourGreen,
	"Red":   HonourRed,
	"Haku":  HonourWhite,
	"Hatsu": HonourGreen,
	"Chun":  HonourRed,
}

// DecodeMeld 解析服务器下发的副露字符串，如 "[Pon: 5m 5m 5m]"
// 关键字不认识时类型为 Unknown，牌的提取照常进行；无法识别的 token 直接丢弃
// 注意：token 扫描覆盖整个字符串而不限于括号内部，这是沿用的宽松行为
// 文本格式不携带赤牌信息，解析结果的 Red 恒为 false，调用方按近似展示处理
func DecodeMeld(text string) Meld {
	kind := MeldUnknown
	if m := meldKeywordRe.FindStringSubmatch(text); m != nil {
		switch strings.ToLower(m[1]) {
		case "pon":
			kind = MeldPon
		case "chi":
			kind = MeldChi
		case "kan":
			kind = MeldKan
		}
	}

	tokens := tileTokenRe.FindAllString(text, -1)
	tiles := make([]Tile, 0, len(tokens))
	for _, tok := range tokens {
		if rank, ok := honourRanks[tok]; ok {
			tiles = append(tiles, Tile{Suit: SuitHonour, Rank: rank})
			continue
		}
		rank := int(tok[0] - '0')
		var suit Suit
		switch tok[1] {
		case 'm':
			suit = SuitMan
		case 'p':
			suit = SuitPin
		case 's':
			suit = SuitSou
		default:
			continue
		}
		tiles = append(tiles, Tile{Suit: suit, Rank: rank})
	}

	return Meld{Kind: kind, Tiles: tiles}
}
