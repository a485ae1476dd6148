// Command fimcode is an interactive coding agent for the terminal.
//
// It reads prompts from stdin, runs the agent loop against the
// configured model provider, and prints tool activity and the final
// answer. Configuration comes from FIMCODE_* environment variables,
// overridable with flags.
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

	"github.com/Fim98/fimcode/agent"
	"github.com/Fim98/fimcode/llm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fimcode:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := agent.ConfigFromEnv()
	if err != nil {
		return err
	}

	provider := flag.String("provider", cfg.Provider, "model provider (anthropic, openai, ...)")
	model := flag.String("model", cfg.Model, "model identifier")
	workdir := flag.String("workdir", "", "working directory for tools (default: current directory)")
	flag.Parse()

	cfg.Provider = *provider
	cfg.Model = *model

	client, err := llm.NewClient(cfg.Provider, cfg.Model)
	if err != nil {
		return err
	}

	env := agent.NewLocalEnvironment(*workdir)
	session := agent.NewSession(client, env, &cfg)
	defer session.Close()

	go printEvents(session.Events())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("fimcode — %s/%s in %s (type 'exit' to quit)\n", cfg.Provider, cfg.Model, env.WorkingDirectory())

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		answer, err := session.Submit(ctx, input)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		fmt.Println(answer)
	}
	return scanner.Err()
}

// printEvents writes tool activity to stderr so it interleaves with,
// but does not pollute, the answers on stdout.
func printEvents(events <-chan agent.Event) {
	for ev := range events {
		switch ev.Kind {
		case agent.EventToolCallStart:
			fmt.Fprintf(os.Stderr, "  [tool] %v\n", ev.Data["tool_name"])
		case agent.EventToolCallEnd:
			if errMsg, ok := ev.Data["error"]; ok {
				fmt.Fprintf(os.Stderr, "  [tool error] %v\n", errMsg)
			}
		case agent.EventWarning:
			fmt.Fprintf(os.Stderr, "  [warn] %v\n", ev.Data["message"])
		}
	}
}
