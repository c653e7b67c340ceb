package protocol_test

import (
	"bufio"
	"strings"
	"testing"

	"github.com/ripper-grove/mmkv/internal/protocol"
)

func TestParseCommandLowercasesName(t *testing.T) {
	cmd := protocol.ParseCommand("SeT foo bar")
	if cmd.Name != "set" {
		t.Fatalf("Name = %q, want \"set\"", cmd.Name)
	}
	if len(cmd.Args) != 2 || cmd.Args[0] != "foo" || cmd.Args[1] != "bar" {
		t.Fatalf("Args = %v, want [foo bar]", cmd.Args)
	}
}

func TestParseCommandCollapsesWhitespaceRuns(t *testing.T) {
	cmd := protocol.ParseCommand("get    key  ")
	if cmd.Name != "get" || len(cmd.Args) != 1 || cmd.Args[0] != "key" {
		t.Fatalf("got %+v", cmd)
	}
}

func TestParseCommandEmptyLine(t *testing.T) {
	cmd := protocol.ParseCommand("   ")
	if cmd.Name != "" || cmd.Args != nil {
		t.Fatalf("got %+v, want zero value", cmd)
	}
}

func TestParseCommandCapsAtMaxFields(t *testing.T) {
	cmd := protocol.ParseCommand("set a b c d e f")
	if len(cmd.Args) != protocol.MaxFields-1 {
		t.Fatalf("Args = %v, want %d fields", cmd.Args, protocol.MaxFields-1)
	}
}

func TestReadCommandReadsOneLine(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("SET foo bar\nGET foo\n"))

	cmd, err := protocol.ReadCommand(r)
	if err != nil {
		t.Fatalf("ReadCommand: %v", err)
	}
	if cmd.Name != "set" || len(cmd.Args) != 2 {
		t.Fatalf("got %+v", cmd)
	}

	cmd, err = protocol.ReadCommand(r)
	if err != nil {
		t.Fatalf("ReadCommand: %v", err)
	}
	if cmd.Name != "get" || len(cmd.Args) != 1 {
		t.Fatalf("got %+v", cmd)
	}
}

func TestReadCommandErrorsOnClosedConnection(t *testing.T) {
	r := bufio.NewReader(strings.NewReader(""))
	if _, err := protocol.ReadCommand(r); err == nil {
		t.Fatal("expected an error reading from an empty, closed source")
	}
}
