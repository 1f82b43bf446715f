package connection

// Connection is the transport the client facade talks through.
type Connection interface {
	// 写入完整的请求
	Send(b []byte) error

	// 读取直到 frame 认为拿到了一个完整的 RESP 单元
	ReceiveUntil(frame func(buf []byte) (int, error)) ([]byte, error)

	// 关闭连接，可重复调用
	Close() error

	State() State

	// 获取服务端地址（用于日志）
	RemoteAddr() string
}

var _ Connection = (*Conn)(nil)
