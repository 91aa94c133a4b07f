package natives

import (
	"github.com/gorilla/websocket"

	"minilang/internal/langerr"
	"minilang/internal/value"
)

// wsHandles tracks open websocket connections behind small integer
// handles, the same pattern as dbHandles, trimmed to the three
// operations this interpreter's blocking, value-in/value-out native
// calls can express (dial, send, receive).
type wsHandles struct {
	conns map[int64]*websocket.Conn
	next  int64
}

func newWSHandles() *wsHandles {
	return &wsHandles{conns: map[int64]*websocket.Conn{}}
}

// registerWS wires the "ws" module: ws_dial/ws_send/ws_recv, backed by
// github.com/gorilla/websocket.
func registerWS(r *Registry, h *wsHandles) {
	r.register("ws", "ws_dial", func(args []value.Object) (value.Object, error) {
		url, err := argStr(args, 0)
		releaseArgs(args)
		if err != nil {
			return nil, err
		}
		conn, _, derr := websocket.DefaultDialer.Dial(url, nil)
		if derr != nil {
			return nil, langerr.Fatal(langerr.SystemError, "ws_dial: %v", derr)
		}
		h.next++
		id := h.next
		h.conns[id] = conn
		return value.NewInt(id), nil
	})

	r.register("ws", "ws_send", func(args []value.Object) (value.Object, error) {
		handle, herr := argInt(args, 0)
		msg, merr := argStr(args, 1)
		releaseArgs(args)
		if herr != nil {
			return nil, herr
		}
		if merr != nil {
			return nil, merr
		}
		conn, ok := h.conns[handle]
		if !ok {
			return nil, langerr.NewNoPos(langerr.ValueError, "ws_send: no open connection %d", handle)
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			return nil, langerr.Fatal(langerr.SystemError, "ws_send: %v", err)
		}
		return value.NewInt(int64(len(msg))), nil
	})

	r.register("ws", "ws_recv", func(args []value.Object) (value.Object, error) {
		handle, herr := argInt(args, 0)
		releaseArgs(args)
		if herr != nil {
			return nil, herr
		}
		conn, ok := h.conns[handle]
		if !ok {
			return nil, langerr.NewNoPos(langerr.ValueError, "ws_recv: no open connection %d", handle)
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			return nil, langerr.Fatal(langerr.SystemError, "ws_recv: %v", err)
		}
		return value.NewStr(string(data)), nil
	})
}
