package gui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/mjsandagi/riichi-mahjong/mahjong"
	"github.com/mjsandagi/riichi-mahjong/view"
)

// PlayerWindow 牌桌窗口，实现 view.Renderer
// 只负责把 ViewModel 画出来、把点击转回 Synchronizer，不做任何对局决策
type PlayerWindow struct {
	window fyne.Window
	sync   *view.Synchronizer

	statusLabel *widget.Label
	tableLabel  *widget.Label
	seatLabels  [4]*widget.Label
	handBox     *fyne.Container
	actionBox   *fyne.Container

	logLabel *widget.Label
	logMutex sync.Mutex
	logLines []string
}

// NewPlayerWindow 创建牌桌窗口
func NewPlayerWindow(fyneApp fyne.App, title string) *PlayerWindow {
	pw := &PlayerWindow{
		logLines: make([]string, 0),
	}
	pw.window = fyneApp.NewWindow(fmt.Sprintf("Riichi Mahjong - %s", title))
	pw.createUI()
	return pw
}

// Bind 绑定同步器，必须在 Show 之前调用
func (pw *PlayerWindow) Bind(s *view.Synchronizer) {
	pw.sync = s
}

func (pw *PlayerWindow) createUI() {
	pw.statusLabel = widget.NewLabel("Status: Disconnected")
	pw.statusLabel.Alignment = fyne.TextAlignCenter

	pw.tableLabel = widget.NewLabel("")
	pw.tableLabel.Alignment = fyne.TextAlignCenter

	for i := range pw.seatLabels {
		pw.seatLabels[i] = widget.NewLabel("")
		pw.seatLabels[i].Wrapping = fyne.TextWrapWord
	}

	pw.handBox = container.NewHBox()
	pw.actionBox = container.NewHBox()

	pw.logLabel = widget.NewLabel("")
	pw.logLabel.Wrapping = fyne.TextWrapWord
	logScroll := container.NewScroll(pw.logLabel)
	logScroll.SetMinSize(fyne.NewSize(580, 80))

	startBtn := widget.NewButton("Start", func() {
		if pw.sync != nil {
			pw.sync.RequestStart()
		}
	})
	restartBtn := widget.NewButton("Restart", func() {
		if pw.sync != nil {
			pw.sync.RequestRestart()
		}
	})
	clearBtn := widget.NewButton("Clear Log", func() {
		pw.clearLogs()
	})

	mainContainer := container.NewVBox(
		pw.statusLabel,
		pw.tableLabel,
		&widget.Card{Title: "Across", Content: pw.seatLabels[2]},
		container.NewGridWithColumns(2,
			&widget.Card{Title: "Left", Content: pw.seatLabels[3]},
			&widget.Card{Title: "Right", Content: pw.seatLabels[1]},
		),
		&widget.Card{Title: "Self", Content: pw.seatLabels[0]},
		&widget.Card{Title: "Hand", Content: container.NewScroll(pw.handBox)},
		&widget.Card{Title: "Actions", Content: pw.actionBox},
		&widget.Card{Title: "Log", Content: logScroll},
		container.NewHBox(startBtn, restartBtn, clearBtn),
	)
	pw.window.SetContent(mainContainer)
}

// Render 用一份完整的 ViewModel 重画整个牌桌
func (pw *PlayerWindow) Render(vm *view.ViewModel) {
	pw.tableLabel.SetText(fmt.Sprintf("Phase: %s | Turn: %d | Wall: %d | Dora: %s",
		vm.Phase, vm.TurnCount, vm.WallRemaining, tilesText(vm.DoraIndicators)))

	for slot, sv := range vm.Slots {
		pw.seatLabels[slot].SetText(seatText(sv))
	}

	pw.rebuildHand(vm)
	pw.rebuildActions(vm)

	if vm.Closed {
		pw.addLog("INFO", rankingText(vm))
	}
}

// ShowWarning 展示一条临时提示（未选牌提交、服务器拒绝等）
func (pw *PlayerWindow) ShowWarning(msg string) {
	pw.addLog("WARN", msg)
}

// ShowEvent 展示一条对局过程事件
func (pw *PlayerWindow) ShowEvent(ev *view.GameEvent) {
	line := ev.EventType
	if ev.Message != "" {
		line += ": " + ev.Message
	}
	if ev.Tile != nil {
		line += fmt.Sprintf(" [%s]", ev.Tile)
	}
	if len(ev.Yaku) > 0 {
		line += " (" + strings.Join(ev.Yaku, ", ") + ")"
	}
	pw.addLog("EVENT", line)
}

// SetStatus 连通性变更
func (pw *PlayerWindow) SetStatus(connected bool) {
	if connected {
		pw.statusLabel.SetText("Status: Connected")
	} else {
		pw.statusLabel.SetText("Status: Disconnected")
	}
}

func (pw *PlayerWindow) rebuildHand(vm *view.ViewModel) {
	pw.handBox.RemoveAll()
	self := vm.Slots[0]
	for i, tile := range self.Hand {
		index := i
		label := tile.String()
		if index == vm.SelectedIndex {
			label = "[" + label + "]"
		}
		pw.handBox.Add(widget.NewButton(label, func() {
			if pw.sync != nil {
				pw.sync.OnTileActivated(index)
			}
		}))
	}
	// 摸到的牌与手牌隔开展示
	if self.Drawn != nil {
		index := self.DrawnIndex
		label := "| " + self.Drawn.String()
		if index == vm.SelectedIndex {
			label = "| [" + self.Drawn.String() + "]"
		}
		pw.handBox.Add(widget.NewButton(label, func() {
			if pw.sync != nil {
				pw.sync.OnTileActivated(index)
			}
		}))
	}
	pw.handBox.Refresh()
}

func (pw *PlayerWindow) rebuildActions(vm *view.ViewModel) {
	pw.actionBox.RemoveAll()
	for _, o := range vm.Actions {
		offer := o
		pw.actionBox.Add(widget.NewButton(offer.Label, func() {
			if pw.sync != nil {
				pw.sync.Invoke(offer)
			}
		}))
	}
	pw.actionBox.Refresh()
}

func seatText(sv view.SeatView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (seat %d)  %d pts", sv.Name, sv.Seat, sv.Score)
	if sv.Active {
		b.WriteString("  *active*")
	}
	if sv.Riichi {
		b.WriteString("  RIICHI")
	}
	if sv.Furiten {
		b.WriteString("  furiten")
	}
	if len(sv.Melds) > 0 {
		b.WriteString("\nMelds:")
		for _, m := range sv.Melds {
			fmt.Fprintf(&b, " [%s: %s]", m.Kind, tilesText(m.Tiles))
		}
	}
	if len(sv.Discards) > 0 {
		fmt.Fprintf(&b, "\nDiscards: %s", tilesText(sv.Discards))
	}
	return b.String()
}

func rankingText(vm *view.ViewModel) string {
	var b strings.Builder
	b.WriteString("=== Game Over ===")
	if vm.WinnerSeat >= 0 {
		fmt.Fprintf(&b, " winner: seat %d (%s)", vm.WinnerSeat, strings.Join(vm.WinningYaku, ", "))
	} else {
		b.WriteString(" drawn game")
	}
	for _, e := range vm.Ranking {
		fmt.Fprintf(&b, "\n  %d. %s  %d pts", e.Rank, e.Name, e.Score)
	}
	return b.String()
}

func tilesText(tiles []mahjong.Tile) string {
	parts := make([]string, 0, len(tiles))
	for _, t := range tiles {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " ")
}

func (pw *PlayerWindow) addLog(level, message string) {
	pw.logMutex.Lock()
	defer pw.logMutex.Unlock()

	timestamp := time.Now().Format("15:04:05")
	pw.logLines = append(pw.logLines, fmt.Sprintf("[%s] %s %s", timestamp, level, message))
	if len(pw.logLines) > 200 {
		pw.logLines = pw.logLines[len(pw.logLines)-200:]
	}
	pw.logLabel.SetText(strings.Join(pw.logLines, "\n"))
}

func (pw *PlayerWindow) clearLogs() {
	pw.logMutex.Lock()
	defer pw.logMutex.Unlock()
	pw.logLines = pw.logLines[:0]
	pw.logLabel.SetText("")
}

// Show 显示窗口
func (pw *PlayerWindow) Show() {
	pw.window.Resize(fyne.NewSize(640, 720))
	pw.window.Show()
}

// Close 关闭窗口
func (pw *PlayerWindow) Close() {
	pw.window.Close()
}
