package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/mjsandagi/riichi-mahjong/common/log"
)

// Client 全局客户端配置，Load 成功后可用
var Client ClientConfiguration

type ClientConfiguration struct {
	ServerConf `mapstructure:"server"`
	LogConf    `mapstructure:"log"`
	PlayerConf `mapstructure:"player"`
}

type ServerConf struct {
	URL          string `mapstructure:"url"`
	SessionID    string `mapstructure:"sessionId"`
	HeartbeatSec int    `mapstructure:"heartbeatSec"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

type PlayerConf struct {
	Name string `mapstructure:"name"`
}

// Load 读取配置文件并监听变更
// 环境变量可覆盖同名配置项（SERVER_URL 等）
func Load(configFile string) error {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// AutomaticEnv 不会把配置文件里没有的键喂给 Unmarshal，逐个显式绑定
	for _, key := range []string{"server.url", "server.sessionId", "server.heartbeatSec", "log.level", "player.name"} {
		if err := v.BindEnv(key); err != nil {
			return err
		}
	}
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	var cfg ClientConfiguration
	if err := v.Unmarshal(&cfg); err != nil {
		return err
	}
	applyDefaults(&cfg)
	Client = cfg

	// 热更新只重新应用日志级别，连接参数改动需要重启客户端
	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		var next ClientConfiguration
		if err := v.Unmarshal(&next); err != nil {
			log.Warn("配置热更新解析失败: %v", err)
			return
		}
		applyDefaults(&next)
		Client = next
		log.SetLevel(next.LogConf.Level)
		log.Info("配置已重新加载: %s", in.Name)
	})

	return nil
}

func applyDefaults(cfg *ClientConfiguration) {
	if cfg.ServerConf.URL == "" {
		cfg.ServerConf.URL = "ws://127.0.0.1:5000/ws"
	}
	if cfg.ServerConf.HeartbeatSec <= 0 {
		cfg.ServerConf.HeartbeatSec = 3
	}
	if cfg.PlayerConf.Name == "" {
		cfg.PlayerConf.Name = "Player"
	}
}
