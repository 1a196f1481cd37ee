// Copyright 2025 The SEC Bot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command secbot is the terminal frontend of the financial research agent.
//
// Without flags it runs an interactive session that keeps the conversation
// in memory for follow-up questions. With -q it answers a single question
// and exits. With -test-tool it bypasses the agent and runs one research
// tool directly, which is useful for debugging gateway access.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/plexfin/secbot/agents"
	"github.com/plexfin/secbot/config"
	"github.com/plexfin/secbot/octagon"
)

func main() {
	question := flag.String("q", "", "ask a single question and exit")
	testTool := flag.String("test-tool", "", "run a specific tool directly with the provided question (for debugging)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		agents.EnableVerboseLogging()
	}

	// Missing .env is fine; the variables may come from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gateway := octagon.NewClient(cfg.OctagonAPIKey, cfg.OctagonBaseURL)
	registry, err := agents.NewRegistry(octagon.DefaultTools(gateway))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building tool registry: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *testTool != "" {
		os.Exit(runToolTest(ctx, registry, *testTool, *question))
	}

	model := agents.NewOpenAIDecisionModel(cfg.Model, cfg.GoogleAPIKey, cfg.GeminiBaseURL)
	runner := agents.NewRunner(model, registry)

	if *question != "" {
		fmt.Printf("Processing question (non-interactive): '%s'...\n", *question)
		answer, err := runner.Run(ctx, *question, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nAgent Answer:\n%s\n", answer)
		return
	}

	runInteractive(ctx, runner)
}

// runToolTest executes one research tool directly, skipping the agent.
func runToolTest(ctx context.Context, registry *agents.Registry, name, question string) int {
	if question == "" {
		fmt.Fprintln(os.Stderr, "Error: Please provide a question using -q when using -test-tool.")
		return 1
	}
	tool, err := registry.Lookup(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("\n--- Testing Tool Directly: %s ---\n", name)
	fmt.Printf("Question: %s\n", question)
	result := tool.Invoke(ctx, question)
	fmt.Println("\n--- Tool Result ---")
	fmt.Println(result)
	fmt.Println("-------------------")
	return 0
}

// runInteractive is the stateful mode: a single loop exclusively owns the
// conversation buffer, processing one terminal input at a time.
func runInteractive(ctx context.Context, runner *agents.Runner) {
	fmt.Println("Welcome to SEC Bot! Ask me your financial research questions.")
	fmt.Println("Type 'exit' or 'quit' to end.")

	var memory []agents.Turn
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			// EOF (Ctrl+D) or read error.
			fmt.Println("\nExiting SEC Bot. Goodbye!")
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if lowered := strings.ToLower(input); lowered == "exit" || lowered == "quit" {
			fmt.Println("Exiting SEC Bot. Goodbye!")
			return
		}

		fmt.Printf("Processing question: '%s'...\n", input)
		answer, err := runner.Run(ctx, input, memory)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", describeError(err))
			continue
		}

		fmt.Printf("Bot: %s\n", answer)
		memory = append(memory,
			agents.Turn{Role: agents.RoleUser, Content: input},
			agents.Turn{Role: agents.RoleAssistant, Content: answer},
		)
	}
}

func describeError(err error) string {
	var (
		modelErr    *agents.ModelBehaviorError
		upstreamErr *agents.UpstreamAPIError
	)
	switch {
	case errors.As(err, &modelErr):
		return "Sorry, I encountered an error processing your request: Output Parsing Error - " + err.Error()
	case errors.As(err, &upstreamErr):
		return "Sorry, I encountered an error processing your request: API Error - " + err.Error()
	default:
		return "Sorry, I encountered an error processing your request: " + err.Error()
	}
}
