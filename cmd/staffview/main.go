// Command staffview runs a headless staff board against a tableside server.
// It keeps a reconciled local copy of the order board: pushed events arrive
// over the websocket, and a periodic snapshot pull repairs whatever the push
// channel missed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"tableside/cmd"
	"tableside/internal/core/domain/events"
	"tableside/internal/reconcile"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	defaultServerURL        = "http://localhost:8080"
	defaultSnapshotInterval = 30 * time.Second
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	serverURL := configs.ServerURL
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	view := reconcile.NewView()
	source := &httpSnapshotSource{
		baseURL: strings.TrimSuffix(serverURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}

	ctx := context.Background()
	lines, err := source.Snapshot(ctx)
	if err != nil {
		logger.Error("Failed to load the initial board", "error", err)
		os.Exit(1)
	}
	view.ApplySnapshot(lines)
	logger.Info("Board loaded", "lines", len(lines))

	refresher := reconcile.NewSnapshotRefresher(source, view, snapshotInterval(configs), logger)
	if err = refresher.Start(); err != nil {
		logger.Error("Failed to start the snapshot refresher", "error", err)
		os.Exit(1)
	}
	defer refresher.Stop()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(serverURL), nil)
	if err != nil {
		logger.Error("Failed to connect to the push channel", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	go listenEvents(conn, view, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down", "lines", len(view.Lines()))
}

func getConfigs() cmd.Config {
	return cmd.Config{
		ServerURL:               goDotEnvVariable("SERVER_URL"),
		SnapshotIntervalSeconds: goDotEnvVariable("SNAPSHOT_INTERVAL_SECONDS"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func snapshotInterval(configs cmd.Config) time.Duration {
	seconds, err := strconv.Atoi(configs.SnapshotIntervalSeconds)
	if err != nil || seconds < 1 {
		return defaultSnapshotInterval
	}
	return time.Duration(seconds) * time.Second
}

func wsURL(serverURL string) string {
	return "ws" + strings.TrimPrefix(strings.TrimSuffix(serverURL, "/"), "http") + "/ws"
}

// httpSnapshotSource pulls the authoritative board from GET /orders.
type httpSnapshotSource struct {
	baseURL string
	client  *http.Client
}

func (s *httpSnapshotSource) Snapshot(ctx context.Context) ([]events.LineSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/orders", nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot request failed with status %d", resp.StatusCode)
	}

	var lines []events.LineSnapshot
	if err = json.NewDecoder(resp.Body).Decode(&lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// wireEnvelope mirrors the push channel's {type, payload} frame.
type wireEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// listenEvents folds pushed events into the view until the connection
// closes. A malformed frame is logged and skipped; the next snapshot repairs
// whatever it would have carried.
func listenEvents(conn *websocket.Conn, view *reconcile.View, logger *slog.Logger) {
	for {
		var envelope wireEnvelope
		if err := conn.ReadJSON(&envelope); err != nil {
			logger.Error("Push channel closed", "error", err)
			return
		}

		switch envelope.Type {
		case events.KindOrderCreated:
			var event events.OrderCreated
			if err := json.Unmarshal(envelope.Payload, &event); err != nil {
				logger.Warn("Dropping malformed event", "type", envelope.Type, "error", err)
				continue
			}
			view.ApplyEvent(event)
			logger.Info("Order placed", "table_id", event.TableID, "lines", len(event.Lines))
		case events.KindLineStatusChanged:
			var event events.LineStatusChanged
			if err := json.Unmarshal(envelope.Payload, &event); err != nil {
				logger.Warn("Dropping malformed event", "type", envelope.Type, "error", err)
				continue
			}
			view.ApplyEvent(event)
			logger.Info("Line advanced", "line_id", event.LineID, "status", event.Status)
		case events.KindWaiterCalled:
			var event events.WaiterCalled
			if err := json.Unmarshal(envelope.Payload, &event); err != nil {
				logger.Warn("Dropping malformed event", "type", envelope.Type, "error", err)
				continue
			}
			logger.Info("Waiter called", "table_number", event.TableNumber)
		}
	}
}
