package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canaworld/cana/internal/domain/entities"
	"github.com/canaworld/cana/internal/domain/services"
)

func newTimelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Manage the Saga > Arc > Episode timeline",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the timeline tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				b := d.Bible.Current()
				if len(b.Timeline) == 0 {
					fmt.Println("Timeline is empty.")
					return nil
				}
				printTimelineLevel(b, "", 0)
				return nil
			})
		},
	}

	var addType, addDesc, addParent string
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a timeline event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !entities.ValidLevel(addType) {
				return fmt.Errorf("invalid type %q (use Saga, Arc, or Episode)", addType)
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				var parentID string
				if addParent != "" {
					parent := findTimelineEvent(d.Bible.Current(), addParent)
					if parent == nil {
						return fmt.Errorf("parent event %q not found", addParent)
					}
					parentID = parent.ID
				}
				err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					nb, _ := services.AddTimelineEvent(b, entities.TimelineLevel(addType), args[0], addDesc, parentID)
					return nb
				})
				if err != nil {
					return err
				}
				fmt.Printf("Created %s '%s'\n", addType, args[0])
				return nil
			})
		},
	}
	addCmd.Flags().StringVarP(&addType, "type", "t", "Episode", "Event level: Saga, Arc, or Episode")
	addCmd.Flags().StringVar(&addDesc, "desc", "", "Event description")
	addCmd.Flags().StringVarP(&addParent, "parent", "p", "", "Parent event title or ID")

	var setTitle, setDesc string
	setCmd := &cobra.Command{
		Use:   "set <event>",
		Short: "Update a timeline event's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if setTitle == "" && setDesc == "" {
				return fmt.Errorf("nothing to set (use --title or --desc)")
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				evt := findTimelineEvent(d.Bible.Current(), args[0])
				if evt == nil {
					return fmt.Errorf("timeline event %q not found", args[0])
				}
				err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					return services.PatchTimelineEvent(b, evt.ID, setTitle, setDesc)
				})
				if err != nil {
					return err
				}
				fmt.Println("Updated.")
				return nil
			})
		},
	}
	setCmd.Flags().StringVar(&setTitle, "title", "", "New title")
	setCmd.Flags().StringVar(&setDesc, "desc", "", "New description")

	moveCmd := &cobra.Command{
		Use:   "move <event> <up|down>",
		Short: "Move an event among its siblings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := parseDirection(args[1])
			if err != nil {
				return err
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				evt := findTimelineEvent(d.Bible.Current(), args[0])
				if evt == nil {
					return fmt.Errorf("timeline event %q not found", args[0])
				}
				return d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					return services.MoveTimelineEvent(b, evt.ID, evt.ParentID, dir)
				})
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <event>",
		Short: "Delete an event and all of its descendants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				b := d.Bible.Current()
				evt := findTimelineEvent(b, args[0])
				if evt == nil {
					return fmt.Errorf("timeline event %q not found", args[0])
				}
				subtree := services.SubtreeIDs(b, evt.ID)
				if !confirm(fmt.Sprintf("Delete '%s' and %d descendant(s)?", evt.Title, len(subtree)-1)) {
					fmt.Println("Aborted.")
					return nil
				}
				err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					return services.DeleteTimelineSubtree(b, evt.ID)
				})
				if err != nil {
					return err
				}
				fmt.Printf("Deleted '%s'\n", evt.Title)
				return nil
			})
		},
	}

	cmd.AddCommand(listCmd, addCmd, setCmd, moveCmd, deleteCmd)
	return cmd
}

// printTimelineLevel renders one sibling group in sort order, recursing into
// children.
func printTimelineLevel(b *entities.StoryBible, parentID string, depth int) {
	for _, evt := range services.Siblings(b, parentID) {
		indent := strings.Repeat("  ", depth)
		fmt.Printf("%s%s [%s] %s", indent, evt.ID, evt.Type, evt.Title)
		if evt.Description != "" {
			fmt.Printf(" - %s", truncate(evt.Description, 50))
		}
		fmt.Println()
		printTimelineLevel(b, evt.ID, depth+1)
	}
}
