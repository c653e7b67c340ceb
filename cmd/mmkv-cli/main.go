// Command mmkv-cli is an interactive stdin REPL over mmkv's TCP
// protocol, for ad-hoc use against a running mmkv-server.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/ripper-grove/mmkv/client"
)

func main() {
	host := flag.String("host", client.DefaultHost, "mmkv server host")
	port := flag.Int("port", client.DefaultPort, "mmkv server port")
	flag.Parse()

	c, err := client.Connect(client.WithHost(*host), client.WithPort(*port))
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	fmt.Printf("Connected to %s:%d\n", *host, *port)
	fmt.Println("Type commands (GET/SET/DEL). 'help' for information, 'exit' to quit.")

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("input error:", err)
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "exit":
			return
		case "help":
			printHelp()
			continue
		}

		fields, err := shellquote.Split(line)
		if err != nil {
			fmt.Println("parse error:", err)
			continue
		}
		if len(fields) == 0 {
			continue
		}

		resp, err := c.Execute(strings.Join(fields, " "))
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(resp)
	}
}

func printHelp() {
	fmt.Println(strings.TrimSpace(`
Available commands:

GET <key>
  Retrieve the value for key.
  Response: value | nil

SET <key> <value> [<ttlMillis>]
  Store value under key, optionally expiring after ttlMillis.
  Response: OK

DEL <key>
  Remove key.
  Response: OK | nil

help
  Show this help message (client-local, not sent to the server).

exit
  Close the connection and quit (client-local, not sent to the server).
`))
}
