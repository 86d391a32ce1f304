package mahjong

// DisplaySlot 把服务器的绝对座位换算为以本家为基准的显示槽位
// 槽位 0 固定是本家，1/2/3 依出牌顺序为下家、对家、上家
// viewerSeat < 0 表示尚未分到座位，此时保持恒等映射，保证入座前的画面稳定
func DisplaySlot(absoluteSeat, viewerSeat int) int {
	if viewerSeat < 0 {
		return absoluteSeat
	}
	return (absoluteSeat - viewerSeat + 4) % 4
}
