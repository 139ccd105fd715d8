package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/canaworld/cana/internal/application/handlers"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the story bible to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				data, err := d.Bible.Export()
				if err != nil {
					return fmt.Errorf("encoding bible: %w", err)
				}

				path := output
				if path == "" {
					path = handlers.ExportFileName(time.Now())
				}
				if err := os.WriteFile(path, data, 0644); err != nil {
					return fmt.Errorf("writing export file: %w", err)
				}

				fmt.Printf("Exported to %s\n", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: dated file name)")

	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a story bible from a JSON file, replacing the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				if !confirm("Importing replaces the current story bible. Continue?") {
					fmt.Println("Aborted.")
					return nil
				}
				if err := d.Bible.Import(cmd.Context(), data); err != nil {
					return fmt.Errorf("importing bible: %w", err)
				}
				b := d.Bible.Current()
				fmt.Printf("Imported '%s' (%d characters, %d world items, %d events)\n",
					b.Title, len(b.Characters), len(b.WorldItems), len(b.Timeline))
				return nil
			})
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the story bible to its default state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if !confirm("Reset the story bible? All data will be lost.") {
					fmt.Println("Aborted.")
					return nil
				}
				if err := d.Bible.Reset(cmd.Context()); err != nil {
					return fmt.Errorf("resetting bible: %w", err)
				}
				fmt.Println("Story bible reset.")
				return nil
			})
		},
	}
}
