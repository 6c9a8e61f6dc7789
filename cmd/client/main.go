package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"arguehub-client/internal/auth"
	"arguehub-client/internal/config"
	"arguehub-client/internal/protocol"
	"arguehub-client/internal/room"
	"arguehub-client/internal/session"
	"arguehub-client/internal/state"
	"arguehub-client/pkg/logger"
)

func main() {
	roomID := flag.String("room", "", "room id to join")
	name := flag.String("name", "", "display name")
	flag.Parse()

	if *roomID == "" || *name == "" {
		fmt.Fprintln(os.Stderr, "usage: client -room <id> -name <display name>")
		os.Exit(2)
	}

	cfg := config.Load()

	ctrl := room.New(
		session.Identity{
			Room:     *roomID,
			Username: *name,
			Tokens:   auth.FromEnv(auth.DefaultTokenEnvKey),
		},
		room.Options{
			Session: session.Options{
				URL:            cfg.API.WebSocketURL,
				ConnectTimeout: cfg.Session.ConnectTimeout,
				DialMaxRetries: cfg.Session.DialMaxRetries,
				DialBackoff:    cfg.Session.DialBackoff,
			},
			ChatLogCap:       cfg.Session.ChatLogCap,
			ReactionLifetime: cfg.Session.ReactionLifetime,
		},
	)

	ctx := context.Background()
	if err := ctrl.Join(ctx); err != nil {
		logger.Fatal("Failed to join room %s: %v", *roomID, err)
	}
	defer ctrl.Close()

	fmt.Printf("joined room %s as %s\n", *roomID, *name)
	fmt.Println("commands: /vote FOR|AGAINST, /react <emoji>, /who, /quit")

	go renderLoop(ctrl)
	go inputLoop(ctrl)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		fmt.Println("\nleaving room...")
	case <-ctrl.Done():
		snap := ctrl.Snapshot()
		fmt.Printf("\ndisconnected (%s); run again to re-join\n", snap.CloseReason)
	}
}

// renderLoop prints log entries as they arrive and live reactions as a
// side strip. Polling a snapshot keeps the view a pure consumer of the store.
func renderLoop(ctrl *room.Controller) {
	printed := 0
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		snap := ctrl.Snapshot()
		for _, entry := range snap.Log[printed:] {
			fmt.Println(formatEntry(entry))
		}
		printed = len(snap.Log)
		if len(snap.Reactions) > 0 {
			symbols := make([]string, len(snap.Reactions))
			for i, token := range snap.Reactions {
				symbols[i] = token.Symbol
			}
			fmt.Printf("  %s\n", strings.Join(symbols, " "))
		}
	}
}

func inputLoop(ctrl *room.Controller) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case line == "/quit":
			ctrl.Close()
			return
		case line == "/who":
			snap := ctrl.Snapshot()
			fmt.Printf("%d users watching | FOR %d / AGAINST %d\n",
				snap.Presence, snap.Tally[protocol.VoteFor], snap.Tally[protocol.VoteAgainst])
		case strings.HasPrefix(line, "/vote "):
			option := protocol.VoteOption(strings.TrimSpace(strings.TrimPrefix(line, "/vote ")))
			if !option.Valid() {
				fmt.Println("vote options: FOR, AGAINST")
				continue
			}
			ctrl.CastVote(option)
		case strings.HasPrefix(line, "/react "):
			ctrl.SendReaction(strings.TrimSpace(strings.TrimPrefix(line, "/react ")))
		default:
			ctrl.SendMessage(line)
		}
	}
}

func formatEntry(entry state.ChatEntry) string {
	when := "N/A"
	if entry.Timestamp != nil {
		when = time.Unix(*entry.Timestamp, 0).Format("15:04:05")
	}
	return fmt.Sprintf("[%s] %s: %s", when, entry.Username, entry.Content)
}
