package view

// 入站路由
const (
	RouteConnected    = "connected"
	RouteJoinedGame   = "joined_game"
	RoutePlayerJoined = "player_joined"
	RoutePlayerLeft   = "player_left"
	RouteGameState    = "game_state"
	RouteGameEvent    = "game_event"
	RouteGameOver     = "game_over"
	RouteGameReset    = "game_reset"
	RouteError        = "error"
)

// 出站路由
const (
	RouteJoinGame     = "join_game"
	RouteStartGame    = "start_game"
	RoutePlayerAction = "player_action"
	RouteRestartGame  = "restart_game"
)

// JoinedGame 入座确认，seat 是本家的绝对座位
type JoinedGame struct {
	Seat       int    `json:"seat"`
	SessionID  string `json:"session_id"`
	PlayerName string `json:"player_name"`
}

// JoinGameMessage 请求入座
type JoinGameMessage struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
}

// SessionMessage 只携带会话号的请求（开局、重开）
type SessionMessage struct {
	SessionID string `json:"session_id"`
}

// ErrorMessage 服务器侧的拒绝原因
type ErrorMessage struct {
	Message string `json:"message"`
}
