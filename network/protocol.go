package network

// 客户端 -> 服务端
const (
	MsgTypeHeartbeat    = 1
	MsgTypeJoinGame     = 101
	MsgTypeWordSelected = 201
	MsgTypeDrawStroke   = 202
	MsgTypeClearCanvas  = 203
	MsgTypeSendMessage  = 204
)

// 服务端 -> 客户端
const (
	MsgTypePlayerListUpdate = 301
	MsgTypeGameStateUpdate  = 302
	MsgTypeTimerUpdate      = 303
	MsgTypeRemoteDraw       = 304
	MsgTypeRemoteClear      = 305
	MsgTypeCorrectGuess     = 306
	MsgTypeNewMessage       = 307
	MsgTypeGameWin          = 308
	MsgTypeJoinAck          = 309
)
