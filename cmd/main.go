package main

import (
	"fmt"
	"os"

	"github.com/ostafen/reext/cmd/cmd"
	"github.com/ostafen/reext/internal/env"
)

func main() {
	PrintLogo()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// PrintLogo prints to stderr, keeping stdout for command output.
func PrintLogo() {
	w := os.Stderr
	fmt.Fprintln(w, "                   _   ")
	fmt.Fprintln(w, " _ __ ___  _____  _| |_ ")
	fmt.Fprintln(w, "| '__/ _ \\/ _ \\ \\/ / __|")
	fmt.Fprintln(w, "| | |  __/  __/>  <| |_ ")
	fmt.Fprintln(w, "|_|  \\___|\\___/_/\\_\\\\__|")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "File extension recovery tool")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Version:   %s\n", env.Version)
	fmt.Fprintf(w, "Commit:    %s\n", env.CommitHash)
	fmt.Fprintf(w, "Build Time: %s\n", env.BuildTime)
	fmt.Fprintln(w)
}
