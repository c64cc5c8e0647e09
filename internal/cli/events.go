package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var matchFlag string
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream match state changes",
		Long: `Connect to the match's event stream and print every state change.

The server sends the current state on connect, then a new "state" event
after each join, start, guess and round change. Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			matchID, err := cfg.ResolveMatch(matchFlag)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, cmd.OutOrStdout(), matchID, limit)
		},
	}

	cmd.Flags().StringVar(&matchFlag, "match", "", "Match ID (default: saved seat)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Exit after this many events (0 = until interrupted)")

	return cmd
}

func streamEvents(ctx context.Context, w io.Writer, matchID string, limit int) error {
	url := strings.TrimSuffix(cfg.ServerURL, "/") + "/api/v1/matches/" + matchID + "/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	// No timeout: the stream stays open
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errResp) == nil && errResp.Error.Code != "" {
			errResp.Error.Status = resp.StatusCode
			return &errResp.Error
		}
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	out := NewOutput(cfg.Output, w)
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var event string
	var dataLines []string
	seen := 0
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case line == "":
			if event != "" {
				printEvent(out, w, event, strings.Join(dataLines, "\n"))
				seen++
				if limit > 0 && seen >= limit {
					return nil
				}
			}
			event = ""
			dataLines = nil
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}

func printEvent(out *Output, w io.Writer, event, data string) {
	if event != "state" {
		fmt.Fprintf(w, "%s: %s\n", event, data)
		return
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		fmt.Fprintf(w, "state: %s\n", data)
		return
	}
	out.Print(snap)
	if out.format != "json" {
		fmt.Fprintln(w)
	}
}
