// Command docmatch runs the bulletproof chunk re-anchoring engine over a
// JSON chunk sidecar and a cleaned target markdown file, writing a vault
// export archive and a console or JSON review summary.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "match":
		err = runMatch(args)
	case "discover":
		err = runDiscover(args)
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `docmatch — bulletproof chunk re-anchoring engine

Usage:
  docmatch match --chunks chunks.json --target target.md --out vault.zip [flags]
  docmatch discover --root ./docs --include "**/*.pdf" [flags]
  docmatch help

Run "docmatch <command> -h" for flag details.`)
}
