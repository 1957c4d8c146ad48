package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	flag.Parse()
	args := flag.Args()

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: mcp-client <server-command> [<args>]")
		fmt.Fprintln(os.Stderr, "Example: mcp-client ./sketchgen-mcp")
		os.Exit(2)
	}

	ctx := context.Background()

	// Start the server as a subprocess
	cmd := exec.Command(args[0], args[1:]...)
	transport := &mcp.CommandTransport{Command: cmd}

	// Create MCP client
	client := mcp.NewClient(&mcp.Implementation{
		Name:    "sketchgen-client",
		Version: "1.0.0",
	}, nil)

	// Connect to the server
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer session.Close()

	fmt.Println("Connected to sketchgen MCP server")
	fmt.Println("Available commands:")
	fmt.Println("  /tools        - List available tools")
	fmt.Println("  /generate     - Request one generated image")
	fmt.Println("  /history [limit] - List recent activations")
	fmt.Println("  /exit         - Exit the client")
	fmt.Println()

	// Interactive REPL
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch {
		case input == "/exit":
			fmt.Println("Goodbye!")
			return

		case input == "/tools":
			listTools(ctx, session)

		case input == "/generate":
			callTool(ctx, session, "generate_image", map[string]any{})

		case strings.HasPrefix(input, "/history"):
			parts := strings.Fields(input)
			args := map[string]any{}
			if len(parts) > 1 {
				limit, err := strconv.Atoi(parts[1])
				if err != nil {
					fmt.Printf("invalid limit %q\n", parts[1])
					continue
				}
				args["limit"] = limit
			}
			callTool(ctx, session, "recent_activations", args)

		default:
			fmt.Printf("unknown command %q, try /tools\n", input)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Scanner error: %v", err)
	}
}

func listTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("Available Tools:")
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			log.Printf("Error listing tools: %v", err)
			return
		}
		fmt.Printf("  - %s: %s\n", tool.Name, tool.Description)
	}
	fmt.Println()
}

func callTool(ctx context.Context, session *mcp.ClientSession, toolName string, args map[string]any) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		log.Printf("Error calling tool: %v", err)
		return
	}

	printResult(result)
}

func printResult(result *mcp.CallToolResult) {
	status := "ok"
	if result.IsError {
		status = "error"
	}
	fmt.Printf("[%s]\n", status)

	for _, content := range result.Content {
		text, ok := content.(*mcp.TextContent)
		if !ok {
			fmt.Printf("%+v\n", content)
			continue
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(text.Text), "", "  "); err != nil {
			fmt.Println(text.Text)
			continue
		}
		fmt.Println(buf.String())
	}
	fmt.Println()
}
