package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/glow-labs/glowbot/internal/advisor"
	"github.com/glow-labs/glowbot/internal/config"
	"github.com/glow-labs/glowbot/internal/conversation"
	"github.com/glow-labs/glowbot/internal/linkify"
	"github.com/glow-labs/glowbot/internal/logging"
	"github.com/glow-labs/glowbot/internal/resolver"
	"github.com/glow-labs/glowbot/internal/ui"
	"github.com/glow-labs/glowbot/internal/upstream"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive product-advice chat",
	Run: func(cmd *cobra.Command, args []string) {
		startChat()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func startChat() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	renderer := ui.NewRenderer()

	if cfg.APIKey == "" {
		fmt.Fprintln(os.Stderr, "Error: API key not found.")
		fmt.Fprintln(os.Stderr, "Set it via:")
		fmt.Fprintln(os.Stderr, "  - Environment variable: export GLOWBOT_API_KEY=sk-...")
		fmt.Fprintln(os.Stderr, "  - Config file: ~/.glowbot/config.yaml")
		fmt.Fprintln(os.Stderr, "  - Command flag: --key sk-...")
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, true)

	store := conversation.NewStore(cfg.StateDir, logger)
	llm := upstream.New(cfg.UpstreamURL, cfg.APIKey, cfg.Model)
	engine := advisor.New(store, llm, linkify.DefaultProducts(), logger)
	links := resolver.New(cfg.BrandDomains, logger)

	// Show the greeting (or note resumed history) before the first prompt.
	state := engine.State()
	if len(state.Turns) > 1 {
		fmt.Println(renderer.SessionResumeMessage(len(state.Turns) - 1))
	}
	last := state.Turns[len(state.Turns)-1]
	if last.Role == conversation.RoleAssistant {
		fmt.Println(renderer.AssistantReply(last.Content))
	}
	fmt.Println()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[33m❯\033[0m ",
		HistoryFile:     os.Getenv("HOME") + "/.glowbot/history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, renderer.ErrorMessage(fmt.Sprintf("could not set up input: %v", err)))
		os.Exit(1)
	}
	defer rl.Close()

	var lastReply string

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or Ctrl+C
			fmt.Println("\nGoodbye!")
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			lastReply = handleChatCommand(line, engine, links, renderer, lastReply)
			continue
		}

		if line == "exit" || line == "quit" {
			fmt.Println("Goodbye!")
			break
		}

		// Input stays blocked until this call returns: one in-flight
		// request per conversation, no abort.
		reply := engine.Send(context.Background(), line)
		lastReply = reply
		fmt.Println(renderer.AssistantReply(reply))
		fmt.Println()
	}
}

func handleChatCommand(cmd string, engine *advisor.Engine, links *resolver.Service, renderer *ui.Renderer, lastReply string) string {
	switch cmd {
	case "/reset":
		greeting := engine.Reset()
		fmt.Println(renderer.SuccessMessage("Conversation cleared."))
		fmt.Println(renderer.AssistantReply(greeting))
		fmt.Println()
		return ""

	case "/links":
		openLink(engine, links, renderer, lastReply)
		return lastReply

	case "/help":
		fmt.Println("Available commands:")
		fmt.Println("  /reset  - Clear the conversation and start over")
		fmt.Println("  /links  - Open a product link from the last reply")
		fmt.Println("  /help   - Show this help message")
		fmt.Println("  exit    - Quit")
		fmt.Println()
		return lastReply

	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		fmt.Println("Type '/help' for available commands.")
		fmt.Println()
		return lastReply
	}
}

// openLink lets the user pick a link from the last reply and resolves
// the product name to a destination URL. Resolution never dead-ends:
// when the search fetch fails the constructed search URL is used.
func openLink(engine *advisor.Engine, links *resolver.Service, renderer *ui.Renderer, lastReply string) {
	found := renderer.Links(lastReply)
	if len(found) == 0 {
		fmt.Println(renderer.WarningMessage("No links in the last reply."))
		fmt.Println()
		return
	}

	labels := make([]string, len(found))
	for i, l := range found {
		labels[i] = l.Label
	}

	prompt := promptui.Select{
		Label: "Open link",
		Items: labels,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return
	}

	product := labels[idx]
	target, err := links.Resolve(context.Background(), product)
	if err != nil {
		target = links.FallbackURL(product)
	}

	fmt.Println(renderer.SuccessMessage(target))
	fmt.Println()
}
