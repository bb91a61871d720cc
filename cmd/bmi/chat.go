package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Akachukwu893331/BMI-Calculator/internal/gateway"
	"github.com/Akachukwu893331/BMI-Calculator/internal/health"
)

var chatServer string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the health assistant",
	Long: `Start an interactive chat with the health assistant. The result saved by
'bmi calc --save' is sent along as context.

Commands:
  /reset   start a new conversation
  /exit    quit (Ctrl-D also works)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := statePath()
		if err != nil {
			return err
		}
		snap, err := loadSnapshot(path)
		if err != nil {
			return err
		}

		s := newChatSession(gateway.NewClient(chatServer), snap, os.Stdout)
		return s.run(cmd.Context())
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatServer, "server", getenvDefault("BMI_SERVER", "http://localhost:8080"), "API server URL")
	rootCmd.AddCommand(chatCmd)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// sender is the part of gateway.Client the session needs.
type sender interface {
	Send(ctx context.Context, turns []gateway.Turn, snap *health.Snapshot) string
}

// chatSession owns one conversation. The welcome turn is part of the history
// sent to the server.
type chatSession struct {
	client sender
	snap   *health.Snapshot
	conv   *gateway.Conversation
	out    io.Writer
}

func newChatSession(client sender, snap *health.Snapshot, out io.Writer) *chatSession {
	s := &chatSession{client: client, snap: snap, conv: gateway.NewConversation(), out: out}
	s.welcome()
	return s
}

func (s *chatSession) welcome() {
	green := color.New(color.FgGreen).SprintFunc()
	text := gateway.Welcome(s.snap)
	s.conv.Append(gateway.RoleAssistant, text)
	fmt.Fprintf(s.out, "%s %s\n", green("assistant>"), text)
}

// handle processes one input line and reports whether the session should end.
func (s *chatSession) handle(ctx context.Context, line string) (exit bool) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return false
	case "/exit", "/quit":
		return true
	case "/reset":
		s.conv.Reset()
		s.welcome()
		return false
	}

	s.conv.Append(gateway.RoleUser, line)
	reply := s.client.Send(ctx, s.conv.Turns(), s.snap)
	s.conv.Append(gateway.RoleAssistant, reply)

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(s.out, "%s %s\n", green("assistant>"), reply)
	return false
}

// run reads lines until /exit or Ctrl-D.
func (s *chatSession) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("you> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			} else if err == io.EOF {
				fmt.Fprintln(s.out, "\nGoodbye!")
				return nil
			}
			return err
		}
		if s.handle(ctx, line) {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
	}
}
