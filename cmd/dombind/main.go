package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/dombind/dombind"
	"github.com/dombind/dombind/dom"
)

// CLI defines the command-line interface.
var CLI struct {
	Input    string `help:"Path to the input document. Reads stdin when omitted." short:"i" type:"path"`
	Output   string `help:"Path to the output file. Writes stdout when omitted." short:"o" type:"path"`
	YAML     bool   `help:"Treat the input as YAML instead of JSON."`
	Pointer  string `help:"JSON Pointer selecting the subtree to emit." short:"p"`
	Rename   string `help:"Rewrite object keys: snake, camel or kebab." enum:"none,snake,camel,kebab" default:"none"`
	Capacity int    `help:"Output buffer capacity hint in bytes." default:"1024"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("dombind"),
		kong.Description("Normalize JSON or YAML documents through the dombind DOM."),
		kong.UsageOnError(),
	)
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dombind: %v\n", err)
		kctx.Exit(1)
	}
}

func run() error {
	data, err := readInput(CLI.Input)
	if err != nil {
		return err
	}
	var node *dom.Node
	if CLI.YAML {
		node, err = dom.ParseYAML(data)
	} else {
		node, err = dom.Parse(data)
	}
	if err != nil {
		return err
	}
	if CLI.Pointer != "" {
		node, err = node.At(CLI.Pointer)
		if err != nil {
			return err
		}
	}
	value, err := dombind.FromNode(node)
	if err != nil {
		return err
	}
	value, err = renameKeys(value, CLI.Rename)
	if err != nil {
		return err
	}
	out, err := dombind.EncodeWithCapacity(value, CLI.Capacity)
	if err != nil {
		return err
	}
	return writeOutput(CLI.Output, out+"\n")
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path, text string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
