package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polo-ai/polo/memory"
)

// newMemoryCmd groups conversation log management.
func newMemoryCmd(configPath *string, debug *bool) *cobra.Command {
	memCmd := &cobra.Command{
		Use:   "memory",
		Short: "Manage the conversation log",
	}

	var recent int
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show recent turns",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath, *debug)
			if err != nil {
				return err
			}
			turns := a.store.Recent(recent)
			if len(turns) == 0 {
				fmt.Println("no turns recorded yet")
				return nil
			}
			for _, t := range turns {
				fmt.Println(memory.Preview(t, 100))
			}
			return nil
		},
	}
	showCmd.Flags().IntVarP(&recent, "recent", "r", 10, "number of recent turns to show")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show conversation log statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath, *debug)
			if err != nil {
				return err
			}
			st := a.store.Stats()
			fmt.Printf("turns:      %d\n", st.TotalTurns)
			if st.TotalTurns > 0 {
				fmt.Printf("first:      %s\n", st.FirstTimestamp.Format("2006-01-02 15:04:05"))
				fmt.Printf("last:       %s\n", st.LastTimestamp.Format("2006-01-02 15:04:05"))
				fmt.Printf("avg user:   %.0f runes\n", st.AvgUserLen)
				fmt.Printf("avg reply:  %.0f runes\n", st.AvgAssistantLen)
			}
			fmt.Printf("file:       %s (%d bytes)\n", a.store.Path(), st.FileSize)
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export the log to a file (.json or .yaml)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath, *debug)
			if err != nil {
				return err
			}
			if err := a.store.Export(args[0]); err != nil {
				return err
			}
			fmt.Printf("exported %d turns to %s\n", a.store.Len(), args[0])
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Merge turns from an export file into the log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath, *debug)
			if err != nil {
				return err
			}
			before := a.store.Len()
			if err := a.store.Import(args[0]); err != nil {
				return err
			}
			fmt.Printf("imported %s: %d -> %d turns\n", args[0], before, a.store.Len())
			return nil
		},
	}

	var confirm bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Irreversibly empty the conversation log",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath, *debug)
			if err != nil {
				return err
			}
			if !confirm {
				fmt.Print("really clear all remembered turns? (y/N): ")
				line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				answer := strings.ToLower(strings.TrimSpace(line))
				if answer != "y" && answer != "yes" {
					fmt.Println("cancelled")
					return nil
				}
				confirm = true
			}
			if err := a.store.Clear(confirm); err != nil {
				return err
			}
			fmt.Println("conversation log cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&confirm, "confirm", false, "skip the interactive confirmation")

	memCmd.AddCommand(showCmd, statsCmd, exportCmd, importCmd, clearCmd)
	return memCmd
}
