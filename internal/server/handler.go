package server

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"net"
	"strconv"

	"github.com/ripper-grove/mmkv/internal/engine"
	"github.com/ripper-grove/mmkv/internal/protocol"
)

// Handler dispatches parsed protocol commands against an Engine and
// writes wire replies. It is the connection-level loop run by Start's
// per-connection goroutine.
type Handler struct {
	Engine *engine.Engine
	Logger *slog.Logger
}

// Handle services one connection until it is closed or a read/write
// error occurs. Protocol-level parse errors and engine errors never
// close the connection; only I/O failure on the socket itself does.
func (h *Handler) Handle(conn net.Conn) {
	defer conn.Close()

	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)

	for {
		cmd, err := protocol.ReadCommand(r)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				h.Logger.Debug("connection read error", "err", err, "remote", conn.RemoteAddr())
			}
			return
		}

		if err := h.dispatch(w, cmd); err != nil {
			h.Logger.Debug("connection write error", "err", err, "remote", conn.RemoteAddr())
			return
		}
	}
}

func (h *Handler) dispatch(w *bufio.Writer, cmd protocol.Command) error {
	switch cmd.Name {
	case "get":
		return h.handleGet(w, cmd.Args)
	case "set":
		return h.handleSet(w, cmd.Args)
	case "del":
		return h.handleDel(w, cmd.Args)
	default:
		return protocol.WriteErr(w, "unknown command")
	}
}

func (h *Handler) handleGet(w *bufio.Writer, args []string) error {
	if len(args) != 1 {
		return protocol.WriteErr(w, "wrong number of arguments for GET")
	}

	value, ok, err := h.Engine.Get(args[0])
	if err != nil {
		return protocol.WriteErr(w, engineErrText(err))
	}
	if !ok {
		return protocol.WriteLine(w, protocol.Nil)
	}
	return protocol.WriteLine(w, value)
}

func (h *Handler) handleSet(w *bufio.Writer, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return protocol.WriteErr(w, "wrong number of arguments for SET")
	}

	key, value := args[0], args[1]

	var ttlMillis int64
	if len(args) == 3 {
		parsed, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return protocol.WriteErr(w, "invalid TTL value")
		}
		ttlMillis = parsed
	}

	if err := h.Engine.Set(key, value, ttlMillis); err != nil {
		return protocol.WriteErr(w, engineErrText(err))
	}
	return protocol.WriteLine(w, protocol.OK)
}

func (h *Handler) handleDel(w *bufio.Writer, args []string) error {
	if len(args) != 1 {
		return protocol.WriteErr(w, "wrong number of arguments for DEL")
	}

	removed, err := h.Engine.Del(args[0])
	if err != nil {
		return protocol.WriteErr(w, engineErrText(err))
	}
	if !removed {
		return protocol.WriteLine(w, protocol.Nil)
	}
	return protocol.WriteLine(w, protocol.OK)
}

func engineErrText(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidArgument):
		return "invalid argument"
	case errors.Is(err, engine.ErrCapacityExhausted):
		return "capacity exhausted"
	default:
		return err.Error()
	}
}
