package main

import (
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/lanedodger/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"

	defaultSSHPort = "2222"
)

//go:embed index.html
var htmlPage string

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger("web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_DISPLAY_PORT", config.GetEnv("SSH_PORT", defaultSSHPort))
	wasmPath := config.GetEnv("WEB_WASM_PATH", "")

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr, "wasm", wasmPath != "")
	if err := http.ListenAndServe(addr, newMux(sshHost, sshPort, wasmPath, logger)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newMux serves the landing page and, when wasmPath is set, the browser
// build of the game at /game.wasm with the wasm_exec.js found beside it.
func newMux(sshHost, sshPort, wasmPath string, logger *log.Logger) *http.ServeMux {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	page = strings.ReplaceAll(page, "{{.SSHPort}}", sshPort)
	page = strings.ReplaceAll(page, "{{.WASMEnabled}}", fmt.Sprint(wasmPath != ""))

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	if wasmPath == "" {
		return mux
	}
	mux.HandleFunc("/game.wasm", serveFile(wasmPath, "application/wasm", logger))
	mux.HandleFunc("/wasm_exec.js", serveFile(
		filepath.Join(filepath.Dir(wasmPath), "wasm_exec.js"), "text/javascript; charset=utf-8", logger))
	return mux
}

func serveFile(path, contentType string, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				logger.Error("stat file", "path", path, "err", err)
			}
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		http.ServeFile(w, r, path)
	}
}
