// internal/websocket/errors.go
package websocket

import "errors"

var (
	ErrSendBufferFull   = errors.New("client send buffer is full")
	ErrConnectionClosed = errors.New("connection is closed")
	ErrInvalidToken     = errors.New("invalid token")
)
