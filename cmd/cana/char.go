package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canaworld/cana/internal/domain/entities"
	"github.com/canaworld/cana/internal/domain/services"
)

func newCharCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "char",
		Short: "Manage characters and their categories",
	}

	var addCategory, addRole, addDesc string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				ch := entities.Character{
					Name:        args[0],
					Role:        addRole,
					Description: addDesc,
				}
				if addCategory != "" {
					cat := findClass(d.Bible.Current().CharacterCategories, addCategory)
					if cat == nil {
						return fmt.Errorf("character category %q not found", addCategory)
					}
					ch.CategoryID = cat.ID
					ch.Attributes = services.InstantiateAttributes(cat.Template)
				}
				err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					return services.AppendCharacter(b, ch)
				})
				if err != nil {
					return err
				}
				fmt.Printf("Created character '%s'\n", args[0])
				return nil
			})
		},
	}
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Character category")
	addCmd.Flags().StringVar(&addRole, "role", "", "Narrative role")
	addCmd.Flags().StringVar(&addDesc, "desc", "", "Character description")

	var listCategory string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List characters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				b := d.Bible.Current()
				var catID string
				if listCategory != "" {
					cat := findClass(b.CharacterCategories, listCategory)
					if cat == nil {
						return fmt.Errorf("character category %q not found", listCategory)
					}
					catID = cat.ID
				}
				shown := 0
				for _, ch := range b.Characters {
					if catID != "" && ch.CategoryID != catID {
						continue
					}
					catName := "(none)"
					if cat := b.CharacterCategory(ch.CategoryID); cat != nil {
						catName = cat.Name
					}
					fmt.Printf("%s  %-24s [%s] %s\n", ch.ID, ch.Name, catName, ch.Role)
					shown++
				}
				if shown == 0 {
					fmt.Println("No characters.")
				}
				return nil
			})
		},
	}
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category")

	showCmd := &cobra.Command{
		Use:   "show <character>",
		Short: "Show a character profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				b := d.Bible.Current()
				ch := findCharacter(b, args[0])
				if ch == nil {
					return fmt.Errorf("character %q not found", args[0])
				}
				fmt.Printf("Name: %s\n", ch.Name)
				fmt.Printf("Role: %s\n", ch.Role)
				if cat := b.CharacterCategory(ch.CategoryID); cat != nil {
					fmt.Printf("Category: %s\n", cat.Name)
				}
				printSection("Description", ch.Description)
				printSection("Personality", ch.Personality)
				printSection("Appearance", ch.Appearance)
				printSection("Dialogue examples", ch.DialogueExamples)
				if len(ch.Attributes) > 0 {
					fmt.Println("Attributes:")
					for _, a := range ch.Attributes {
						fmt.Printf("  %s: %s\n", a.Key, a.Value)
					}
				}
				return nil
			})
		},
	}

	var patch services.CharacterPatch
	setCmd := &cobra.Command{
		Use:   "set <character>",
		Short: "Update a character's profile fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if patch == (services.CharacterPatch{}) {
				return fmt.Errorf("nothing to set")
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				ch := findCharacter(d.Bible.Current(), args[0])
				if ch == nil {
					return fmt.Errorf("character %q not found", args[0])
				}
				err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					return services.PatchCharacter(b, ch.ID, patch)
				})
				if err != nil {
					return err
				}
				fmt.Println("Updated.")
				return nil
			})
		},
	}
	setCmd.Flags().StringVar(&patch.Name, "name", "", "New name")
	setCmd.Flags().StringVar(&patch.Role, "role", "", "New role")
	setCmd.Flags().StringVar(&patch.Description, "desc", "", "New description")
	setCmd.Flags().StringVar(&patch.Personality, "personality", "", "New personality")
	setCmd.Flags().StringVar(&patch.Appearance, "appearance", "", "New appearance")
	setCmd.Flags().StringVar(&patch.DialogueExamples, "dialogue", "", "New dialogue examples")

	attrCmd := &cobra.Command{
		Use:   "attr <character> <key> <value>",
		Short: "Set a character attribute value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				ch := findCharacter(d.Bible.Current(), args[0])
				if ch == nil {
					return fmt.Errorf("character %q not found", args[0])
				}
				attr := findAttribute(ch.Attributes, args[1])
				if attr == nil {
					return fmt.Errorf("attribute %q not found on %q", args[1], ch.Name)
				}
				err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					return services.SetCharacterAttribute(b, ch.ID, attr.ID, args[2])
				})
				if err != nil {
					return err
				}
				fmt.Printf("Set %s = %s\n", attr.Key, args[2])
				return nil
			})
		},
	}

	switchCmd := &cobra.Command{
		Use:   "switch <character> <category>",
		Short: "Move a character to another category, merging template attributes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				b := d.Bible.Current()
				ch := findCharacter(b, args[0])
				if ch == nil {
					return fmt.Errorf("character %q not found", args[0])
				}
				cat := findClass(b.CharacterCategories, args[1])
				if cat == nil {
					return fmt.Errorf("character category %q not found", args[1])
				}
				err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					return services.SwitchCharacterCategory(b, ch.ID, cat.ID)
				})
				if err != nil {
					return err
				}
				fmt.Printf("Moved '%s' to category '%s'\n", ch.Name, cat.Name)
				return nil
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <character>",
		Short: "Delete a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				ch := findCharacter(d.Bible.Current(), args[0])
				if ch == nil {
					return fmt.Errorf("character %q not found", args[0])
				}
				if !confirm(fmt.Sprintf("Delete character '%s'?", ch.Name)) {
					fmt.Println("Aborted.")
					return nil
				}
				err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					return services.DeleteCharacter(b, ch.ID)
				})
				if err != nil {
					return err
				}
				fmt.Printf("Deleted character '%s'\n", ch.Name)
				return nil
			})
		},
	}

	moveCmd := &cobra.Command{
		Use:   "move <character> <up|down>",
		Short: "Move a character in the roster order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := parseDirection(args[1])
			if err != nil {
				return err
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				ch := findCharacter(d.Bible.Current(), args[0])
				if ch == nil {
					return fmt.Errorf("character %q not found", args[0])
				}
				return d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					return services.MoveCharacter(b, ch.ID, dir)
				})
			})
		},
	}

	cmd.AddCommand(
		listCmd, addCmd, showCmd, setCmd, attrCmd, switchCmd, deleteCmd, moveCmd,
		newCharCategoryCmd(),
	)
	return cmd
}

func newCharCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage character categories",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List character categories",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					b := d.Bible.Current()
					if len(b.CharacterCategories) == 0 {
						fmt.Println("No character categories.")
						return nil
					}
					for _, cat := range b.CharacterCategories {
						fmt.Printf("%s  %s (%d fields, %d characters)\n",
							cat.ID, cat.Name, len(cat.Template), services.CharactersInCategory(b, cat.ID))
						warnDuplicateKeys(&cat)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a character category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					var id string
					err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
						nb, newID := services.AddCharacterCategory(b, args[0])
						id = newID
						return nb
					})
					if err != nil {
						return err
					}
					fmt.Printf("Created category '%s' (%s)\n", args[0], id)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "rename <category> <new-name>",
			Short: "Rename a character category",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					cat := findClass(d.Bible.Current().CharacterCategories, args[0])
					if cat == nil {
						return fmt.Errorf("character category %q not found", args[0])
					}
					err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
						return services.RenameCharacterCategory(b, cat.ID, args[1])
					})
					if err != nil {
						return err
					}
					fmt.Printf("Renamed category to '%s'\n", args[1])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete <category>",
			Short: "Delete a character category and all of its characters",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					b := d.Bible.Current()
					cat := findClass(b.CharacterCategories, args[0])
					if cat == nil {
						return fmt.Errorf("character category %q not found", args[0])
					}
					count := services.CharactersInCategory(b, cat.ID)
					if !confirm(fmt.Sprintf("Delete category '%s' and its %d character(s)?", cat.Name, count)) {
						fmt.Println("Aborted.")
						return nil
					}
					err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
						return services.DeleteCharacterCategory(b, cat.ID)
					})
					if err != nil {
						return err
					}
					fmt.Printf("Deleted category '%s'\n", cat.Name)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "move <category> <up|down>",
			Short: "Move a character category in the display order",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := parseDirection(args[1])
				if err != nil {
					return err
				}
				return withDeps(cmd.Context(), func(d *Deps) error {
					cat := findClass(d.Bible.Current().CharacterCategories, args[0])
					if cat == nil {
						return fmt.Errorf("character category %q not found", args[0])
					}
					return d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
						return services.MoveCharacterCategory(b, cat.ID, dir)
					})
				})
			},
		},
		newCharFieldCmd(),
	)

	return cmd
}

func newCharFieldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Manage character category template fields",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <category> <key>",
			Short: "Add a template field to a category (applies to new characters)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					cat := findClass(d.Bible.Current().CharacterCategories, args[0])
					if cat == nil {
						return fmt.Errorf("character category %q not found", args[0])
					}
					err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
						return services.AddCategoryTemplateField(b, cat.ID, args[1])
					})
					if err != nil {
						return err
					}
					fmt.Printf("Added field '%s' to category '%s'\n", args[1], cat.Name)
					warnDuplicateKeys(d.Bible.Current().CharacterCategory(cat.ID))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "rename <category> <field> <new-key>",
			Short: "Rename a template field, propagating to every character in the category",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					cat := findClass(d.Bible.Current().CharacterCategories, args[0])
					if cat == nil {
						return fmt.Errorf("character category %q not found", args[0])
					}
					field := findTemplateField(cat, args[1])
					if field == nil {
						return fmt.Errorf("field %q not found in category %q", args[1], cat.Name)
					}
					err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
						return services.RenameCategoryTemplateField(b, cat.ID, field.ID, args[2])
					})
					if err != nil {
						return err
					}
					fmt.Printf("Renamed field to '%s'\n", args[2])
					warnDuplicateKeys(d.Bible.Current().CharacterCategory(cat.ID))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete <category> <field>",
			Short: "Delete a template field from a category and all of its characters",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					cat := findClass(d.Bible.Current().CharacterCategories, args[0])
					if cat == nil {
						return fmt.Errorf("character category %q not found", args[0])
					}
					field := findTemplateField(cat, args[1])
					if field == nil {
						return fmt.Errorf("field %q not found in category %q", args[1], cat.Name)
					}
					if !confirm(fmt.Sprintf("Delete field '%s' from category '%s' and every character in it?", field.Key, cat.Name)) {
						fmt.Println("Aborted.")
						return nil
					}
					err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
						return services.DeleteCategoryTemplateField(b, cat.ID, field.ID)
					})
					if err != nil {
						return err
					}
					fmt.Printf("Deleted field '%s'\n", field.Key)
					return nil
				})
			},
		},
	)

	return cmd
}

func printSection(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("%s: %s\n", label, value)
}
