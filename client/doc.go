// Package client provides a Go client for mmkv's line-oriented TCP
// protocol.
//
// Example:
//
//	c, err := client.Connect()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	if err := c.Set("foo", "bar", 0); err != nil {
//	    log.Fatal(err)
//	}
//	val, ok, err := c.Get("foo")
package client
