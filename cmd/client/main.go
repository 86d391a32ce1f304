package main

import (
	"context"
	"encoding/json"
	"flag"
	"time"

	"fyne.io/fyne/v2/app"

	"github.com/mjsandagi/riichi-mahjong/common/config"
	"github.com/mjsandagi/riichi-mahjong/common/log"
	"github.com/mjsandagi/riichi-mahjong/conn"
	"github.com/mjsandagi/riichi-mahjong/gui"
	"github.com/mjsandagi/riichi-mahjong/view"
)

var configFile = flag.String("config", "etc/client.yaml", "配置文件路径")

func main() {
	flag.Parse()

	if err := config.Load(*configFile); err != nil {
		panic(err)
	}
	log.InitLog("mahjong-client", config.Client.LogConf.Level)

	fyneApp := app.New()
	window := gui.NewPlayerWindow(fyneApp, config.Client.PlayerConf.Name)

	client := conn.NewClient(
		config.Client.ServerConf.URL,
		config.Client.ServerConf.SessionID,
		time.Duration(config.Client.ServerConf.HeartbeatSec)*time.Second,
	)
	client.SetOnStatus(window.SetStatus)

	synchronizer := view.NewSynchronizer(window, client, client.SessionID())
	window.Bind(synchronizer)

	registerRoutes(client, synchronizer, window)

	if err := client.Connect(); err != nil {
		log.Fatal("连接服务器失败: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Run(ctx)

	// 入座请求，seat 由服务器在 joined_game 中确认
	err := client.Send(view.RouteJoinGame, view.JoinGameMessage{
		SessionID: client.SessionID(),
		Name:      config.Client.PlayerConf.Name,
	})
	if err != nil {
		log.Warn("发送入座请求失败: %v", err)
	}

	window.Show()
	fyneApp.Run()
}

// registerRoutes 把入站路由接到同步器上
// 反序列化失败只记日志并丢弃该条消息，画面等下一份快照覆盖
func registerRoutes(client *conn.Client, s *view.Synchronizer, window *gui.PlayerWindow) {
	handlers := map[string]conn.Handler{
		view.RouteConnected: func(data json.RawMessage) {
			log.Info("服务器握手完成")
		},
		view.RouteJoinedGame: func(data json.RawMessage) {
			var msg view.JoinedGame
			if err := json.Unmarshal(data, &msg); err != nil {
				log.Warn("joined_game 解析失败: %v", err)
				return
			}
			log.Info("已入座: seat=%d", msg.Seat)
			s.SetLocalSeat(msg.Seat)
		},
		view.RouteGameState: func(data json.RawMessage) {
			var snap view.Snapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				log.Warn("game_state 解析失败: %v", err)
				return
			}
			s.OnSnapshot(&snap)
		},
		view.RouteGameEvent: func(data json.RawMessage) {
			var ev view.GameEvent
			if err := json.Unmarshal(data, &ev); err != nil {
				log.Warn("game_event 解析失败: %v", err)
				return
			}
			s.OnGameEvent(&ev)
		},
		view.RouteGameOver: func(data json.RawMessage) {
			var snap view.Snapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				log.Warn("game_over 解析失败: %v", err)
				return
			}
			s.OnGameOver(&snap)
		},
		view.RouteGameReset: func(data json.RawMessage) {
			log.Info("收到重置信号")
			s.OnReset()
		},
		view.RoutePlayerJoined: func(data json.RawMessage) {
			log.Info("有玩家入座: %s", string(data))
		},
		view.RoutePlayerLeft: func(data json.RawMessage) {
			log.Info("有玩家离座: %s", string(data))
		},
		view.RouteError: func(data json.RawMessage) {
			var msg view.ErrorMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				log.Warn("error 消息解析失败: %v", err)
				return
			}
			window.ShowWarning(msg.Message)
		},
	}
	client.RegisterHandlers(handlers)
}
