package protocol_test

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/ripper-grove/mmkv/internal/protocol"
)

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	if err := protocol.WriteLine(w, "bar"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	if buf.String() != "bar\n" {
		t.Fatalf("got %q, want %q", buf.String(), "bar\n")
	}
}

func TestWriteErr(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	if err := protocol.WriteErr(w, "unknown command"); err != nil {
		t.Fatalf("WriteErr: %v", err)
	}
	if buf.String() != "ERR unknown command\n" {
		t.Fatalf("got %q", buf.String())
	}
}
