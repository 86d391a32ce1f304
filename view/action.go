package view

// ActionKind 本层可以发往服务器的操作类型
type ActionKind int

const (
	ActionDiscard ActionKind = iota // 打牌
	ActionRiichi                    // 立直（宣言后打牌）
	ActionTsumo                     // 自摸和
	ActionRon                       // 荣和
	ActionPon                       // 碰
	ActionKan                       // 明杠
	ActionChi                       // 吃
	ActionPass                      // 过
)

// Wire 序列化到 player_action 消息的 action_type 字段
func (k ActionKind) Wire() string {
	switch k {
	case ActionDiscard:
		return "DISCARD"
	case ActionRiichi:
		return "DECLARE_RIICHI"
	case ActionTsumo:
		return "TSUMO"
	case ActionRon:
		return "RON"
	case ActionPon:
		return "PON"
	case ActionKan:
		return "KAN"
	case ActionChi:
		return "CHI"
	case ActionPass:
		return "PASS"
	default:
		return "UNKNOWN"
	}
}

// Label 按钮文案
func (k ActionKind) Label() string {
	switch k {
	case ActionDiscard:
		return "Discard"
	case ActionRiichi:
		return "Riichi"
	case ActionTsumo:
		return "Tsumo"
	case ActionRon:
		return "Ron"
	case ActionPon:
		return "Pon"
	case ActionKan:
		return "Kan"
	case ActionChi:
		return "Chi"
	case ActionPass:
		return "Pass"
	default:
		return "?"
	}
}

// ActionMessage 出站操作消息，发送即忘，不等待服务器确认
type ActionMessage struct {
	SessionID  string `json:"session_id,omitempty"`
	ActionType string `json:"action_type"`
	TileIndex  *int   `json:"tile_index,omitempty"`
	ChiOption  *int   `json:"chi_option,omitempty"`
}

// ActionOffer 提供给渲染层的一个可选操作按钮
// ChiOption 仅对吃有效，其余为 -1
type ActionOffer struct {
	Kind      ActionKind
	Label     string
	ChiOption int
}

func offer(k ActionKind) ActionOffer {
	return ActionOffer{Kind: k, Label: k.Label(), ChiOption: -1}
}

// Resolve 从能力描述符推导有序的操作列表
// 非本家的描述符一律得到空列表，这是所有旁观座位的常态而不是错误
// 优先级固定：自摸 > 荣和 > 立直 > 杠 > 碰 > 吃 > 过；
// 打牌只在已选中手牌时出现，并且固定插到最前（仅影响展示顺序）
// 相同输入重复求解结果一致
func Resolve(caps *Capabilities, sel *Selection, localSeat int) []ActionOffer {
	if caps == nil || caps.PlayerIndex != localSeat {
		return nil
	}

	offers := make([]ActionOffer, 0, 8)
	if caps.CanTsumo {
		offers = append(offers, offer(ActionTsumo))
	}
	if caps.CanRon {
		offers = append(offers, offer(ActionRon))
	}
	if caps.CanRiichi {
		// 立直不要求当下已选牌，选牌在提交时校验
		offers = append(offers, offer(ActionRiichi))
	}
	if caps.CanKan {
		offers = append(offers, offer(ActionKan))
	}
	if caps.CanPon {
		offers = append(offers, offer(ActionPon))
	}
	if caps.CanChi && len(caps.ChiOptions) > 0 {
		// 多个吃法时固定取第一个，选项序号透传到出站消息
		offers = append(offers, ActionOffer{
			Kind:      ActionChi,
			Label:     ActionChi.Label(),
			ChiOption: caps.ChiOptions[0].OptionIndex,
		})
	}
	if caps.CanPass {
		offers = append(offers, offer(ActionPass))
	}

	if caps.CanDiscard && sel != nil {
		if _, ok := sel.Index(); ok {
			offers = append([]ActionOffer{offer(ActionDiscard)}, offers...)
		}
	}

	return offers
}
