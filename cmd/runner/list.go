package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows every game mode registered with the runner.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	idW, titleW := len("ID"), len("Title")
	for _, m := range modes {
		idW = max(idW, len(m.ID))
		titleW = max(titleW, len(m.Title))
	}

	fmt.Println("Available modes:")
	fmt.Println()
	fmt.Printf("  %-*s  %-*s  %s\n", idW, "ID", titleW, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", idW, "--", titleW, "-----", "-----------")
	for _, m := range modes {
		fmt.Printf("  %-*s  %-*s  %s\n", idW, m.ID, titleW, m.Title, m.Description)
	}

	fmt.Println()
	fmt.Println("Run 'runner play <id>' to start a run.")
}
