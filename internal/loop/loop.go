// Package loop wires a single local terminal session: a private session
// hub with one client reading from r and drawing to w.
package loop

import (
	"bufio"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/lanedodger/internal/loop/client"
	"github.com/tomz197/lanedodger/internal/loop/server"
)

// Run plays one game in the local terminal until the player quits.
// The caller is responsible for putting the terminal into raw mode.
func Run(r *bufio.Reader, w io.Writer, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	hub := server.NewServer(logger)

	c, err := client.NewClient(hub, r, w, client.ClientOptions{Username: "local"})
	if err != nil {
		return err
	}
	return c.Run()
}
