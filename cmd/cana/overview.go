package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canaworld/cana/internal/domain/entities"
	"github.com/canaworld/cana/internal/domain/services"
)

func newOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show the project metadata and collection counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				b := d.Bible.Current()
				fmt.Printf("Title: %s\n", b.Title)
				fmt.Printf("Genre: %s\n", b.Genre)
				fmt.Printf("Tone:  %s\n", b.Tone)
				fmt.Println()
				fmt.Printf("Characters:       %d (%d categories)\n", len(b.Characters), len(b.CharacterCategories))
				fmt.Printf("World items:      %d (%d classes)\n", len(b.WorldItems), len(b.WorldClasses))
				fmt.Printf("Timeline events:  %d\n", len(b.Timeline))
				fmt.Printf("Architect log:    %d messages\n", len(b.ArchitectHistory))
				fmt.Printf("Roleplay log:     %d messages\n", len(b.RoleplayHistory))
				return nil
			})
		},
	}
}

func newSetCmd() *cobra.Command {
	var title, genre, tone string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the project title, genre, or tone",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" && genre == "" && tone == "" {
				return fmt.Errorf("nothing to set (use --title, --genre, or --tone)")
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					nb, _ := services.UpdateMetadata(b, title, genre, tone)
					return nb
				})
				if err != nil {
					return err
				}
				b := d.Bible.Current()
				fmt.Printf("Updated. Title: %s, Genre: %s, Tone: %s\n", b.Title, b.Genre, b.Tone)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project title")
	cmd.Flags().StringVar(&genre, "genre", "", "Story genre")
	cmd.Flags().StringVar(&tone, "tone", "", "Narrative tone")

	return cmd
}
