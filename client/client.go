package client

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/ripper-grove/mmkv/internal/protocol"
)

// Client is a connection to an mmkv server speaking the line-oriented
// TCP protocol.
type Client struct {
	conn net.Conn
	r    *bufio.Reader
	w    *bufio.Writer
}

// Connect dials an mmkv server, defaulting to 127.0.0.1:6379.
func Connect(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	addr := net.JoinHostPort(cfg.host, strconv.Itoa(cfg.port))

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{
		conn: conn,
		r:    bufio.NewReader(conn),
		w:    bufio.NewWriter(conn),
	}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Get issues a GET command. ok reports whether the server returned a
// value rather than "nil".
func (c *Client) Get(key string) (value string, ok bool, err error) {
	reply, err := c.send("GET " + key)
	if err != nil {
		return "", false, err
	}
	if reply == protocol.Nil {
		return "", false, nil
	}
	if err := asError(reply); err != nil {
		return "", false, err
	}
	return reply, true, nil
}

// Set issues a SET command. ttlMillis <= 0 means no expiry.
func (c *Client) Set(key, value string, ttlMillis int64) error {
	line := fmt.Sprintf("SET %s %s", key, value)
	if ttlMillis != 0 {
		line += " " + strconv.FormatInt(ttlMillis, 10)
	}

	reply, err := c.send(line)
	if err != nil {
		return err
	}
	return asError(reply)
}

// Del issues a DEL command. removed reports whether a key was actually
// present and deleted.
func (c *Client) Del(key string) (removed bool, err error) {
	reply, err := c.send("DEL " + key)
	if err != nil {
		return false, err
	}
	if reply == protocol.Nil {
		return false, nil
	}
	if err := asError(reply); err != nil {
		return false, err
	}
	return true, nil
}

// Execute sends a raw line to the server and returns its reply verbatim,
// for callers (like the interactive CLI) that want to pass arbitrary
// commands through without a typed wrapper.
func (c *Client) Execute(line string) (string, error) {
	return c.send(line)
}

func (c *Client) send(line string) (string, error) {
	if _, err := c.w.WriteString(line); err != nil {
		return "", err
	}
	if err := c.w.WriteByte('\n'); err != nil {
		return "", err
	}
	if err := c.w.Flush(); err != nil {
		return "", err
	}

	reply, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimRight(reply, "\r\n"), nil
}

func asError(reply string) error {
	if strings.HasPrefix(reply, "ERR ") {
		return fmt.Errorf("mmkv: %s", strings.TrimPrefix(reply, "ERR "))
	}
	return nil
}
