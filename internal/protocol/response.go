package protocol

import (
	"bufio"
	"fmt"
)

// Nil is the reply for a GET that found no value, or a DEL that removed
// nothing.
const Nil = "nil"

// OK is the reply for a successful SET, or a DEL that removed a key.
const OK = "OK"

// WriteLine writes line followed by a single newline to w and flushes.
func WriteLine(w *bufio.Writer, line string) error {
	if _, err := w.WriteString(line); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}

// WriteErr writes a wire error reply in the "ERR <message>" form.
func WriteErr(w *bufio.Writer, format string, args ...any) error {
	return WriteLine(w, "ERR "+fmt.Sprintf(format, args...))
}
