package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canaworld/cana/internal/domain/entities"
	"github.com/canaworld/cana/internal/domain/services"
)

func newWorldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "world",
		Short: "Manage world classes, templates, and items",
	}

	cmd.AddCommand(
		newWorldClassCmd(),
		newWorldFieldCmd(),
		newWorldItemCmd(),
	)

	return cmd
}

func newWorldClassCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "class",
		Short: "Manage world classes",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List world classes",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					b := d.Bible.Current()
					if len(b.WorldClasses) == 0 {
						fmt.Println("No world classes.")
						return nil
					}
					for _, cls := range b.WorldClasses {
						fmt.Printf("%s  %s (%d fields, %d items)\n",
							cls.ID, cls.Name, len(cls.Template), services.WorldItemsInClass(b, cls.ID))
						warnDuplicateKeys(&cls)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a world class",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					var id string
					err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
						nb, newID := services.AddWorldClass(b, args[0])
						id = newID
						return nb
					})
					if err != nil {
						return err
					}
					fmt.Printf("Created class '%s' (%s)\n", args[0], id)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "rename <class> <new-name>",
			Short: "Rename a world class",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					cls := findClass(d.Bible.Current().WorldClasses, args[0])
					if cls == nil {
						return fmt.Errorf("world class %q not found", args[0])
					}
					err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
						return services.RenameWorldClass(b, cls.ID, args[1])
					})
					if err != nil {
						return err
					}
					fmt.Printf("Renamed class to '%s'\n", args[1])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete <class>",
			Short: "Delete a world class and all of its items",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					b := d.Bible.Current()
					cls := findClass(b.WorldClasses, args[0])
					if cls == nil {
						return fmt.Errorf("world class %q not found", args[0])
					}
					count := services.WorldItemsInClass(b, cls.ID)
					if !confirm(fmt.Sprintf("Delete class '%s' and its %d item(s)?", cls.Name, count)) {
						fmt.Println("Aborted.")
						return nil
					}
					err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
						return services.DeleteWorldClass(b, cls.ID)
					})
					if err != nil {
						return err
					}
					fmt.Printf("Deleted class '%s'\n", cls.Name)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "move <class> <up|down>",
			Short: "Move a world class in the display order",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := parseDirection(args[1])
				if err != nil {
					return err
				}
				return withDeps(cmd.Context(), func(d *Deps) error {
					cls := findClass(d.Bible.Current().WorldClasses, args[0])
					if cls == nil {
						return fmt.Errorf("world class %q not found", args[0])
					}
					return d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
						return services.MoveWorldClass(b, cls.ID, dir)
					})
				})
			},
		},
	)

	return cmd
}

func newWorldFieldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Manage world class template fields",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <class> <key>",
			Short: "Add a template field to a class (applies to new items)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					cls := findClass(d.Bible.Current().WorldClasses, args[0])
					if cls == nil {
						return fmt.Errorf("world class %q not found", args[0])
					}
					err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
						return services.AddWorldTemplateField(b, cls.ID, args[1])
					})
					if err != nil {
						return err
					}
					fmt.Printf("Added field '%s' to class '%s'\n", args[1], cls.Name)
					warnDuplicateKeys(d.Bible.Current().WorldClass(cls.ID))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "rename <class> <field> <new-key>",
			Short: "Rename a template field, propagating to every item in the class",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					cls := findClass(d.Bible.Current().WorldClasses, args[0])
					if cls == nil {
						return fmt.Errorf("world class %q not found", args[0])
					}
					field := findTemplateField(cls, args[1])
					if field == nil {
						return fmt.Errorf("field %q not found in class %q", args[1], cls.Name)
					}
					err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
						return services.RenameWorldTemplateField(b, cls.ID, field.ID, args[2])
					})
					if err != nil {
						return err
					}
					fmt.Printf("Renamed field to '%s'\n", args[2])
					warnDuplicateKeys(d.Bible.Current().WorldClass(cls.ID))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete <class> <field>",
			Short: "Delete a template field from a class and all of its items",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd.Context(), func(d *Deps) error {
					cls := findClass(d.Bible.Current().WorldClasses, args[0])
					if cls == nil {
						return fmt.Errorf("world class %q not found", args[0])
					}
					field := findTemplateField(cls, args[1])
					if field == nil {
						return fmt.Errorf("field %q not found in class %q", args[1], cls.Name)
					}
					if !confirm(fmt.Sprintf("Delete field '%s' from class '%s' and every item in it?", field.Key, cls.Name)) {
						fmt.Println("Aborted.")
						return nil
					}
					err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
						return services.DeleteWorldTemplateField(b, cls.ID, field.ID)
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

func newWorldItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage world items",
	}

	var listClass string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List world items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				b := d.Bible.Current()
				var clsID string
				if listClass != "" {
					cls := findClass(b.WorldClasses, listClass)
					if cls == nil {
						return fmt.Errorf("world class %q not found", listClass)
					}
					clsID = cls.ID
				}
				shown := 0
				for _, it := range b.WorldItems {
					if clsID != "" && it.ClassID != clsID {
						continue
					}
					clsName := "(none)"
					if cls := b.WorldClass(it.ClassID); cls != nil {
						clsName = cls.Name
					}
					fmt.Printf("%s  %-24s [%s] %s\n", it.ID, it.Name, clsName, truncate(it.Description, 60))
					shown++
				}
				if shown == 0 {
					fmt.Println("No world items.")
				}
				return nil
			})
		},
	}
	listCmd.Flags().StringVarP(&listClass, "class", "c", "", "Filter by class")

	var addClass, addDesc string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a world item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addClass == "" {
				return fmt.Errorf("class is required (use --class)")
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				cls := findClass(d.Bible.Current().WorldClasses, addClass)
				if cls == nil {
					return fmt.Errorf("world class %q not found", addClass)
				}
				it := entities.WorldItem{
					Name:        args[0],
					ClassID:     cls.ID,
					Description: addDesc,
					Attributes:  services.InstantiateAttributes(cls.Template),
				}
				err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					return services.PrependWorldItem(b, it)
				})
				if err != nil {
					return err
				}
				fmt.Printf("Created item '%s' in class '%s'\n", args[0], cls.Name)
				return nil
			})
		},
	}
	addCmd.Flags().StringVarP(&addClass, "class", "c", "", "Class for the new item (required)")
	addCmd.Flags().StringVar(&addDesc, "desc", "", "Item description")

	showCmd := &cobra.Command{
		Use:   "show <item>",
		Short: "Show a world item with its attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				b := d.Bible.Current()
				it := findWorldItem(b, args[0])
				if it == nil {
					return fmt.Errorf("world item %q not found", args[0])
				}
				fmt.Printf("Name:  %s\n", it.Name)
				if cls := b.WorldClass(it.ClassID); cls != nil {
					fmt.Printf("Class: %s\n", cls.Name)
				}
				if it.Description != "" {
					fmt.Printf("Description: %s\n", it.Description)
				}
				if len(it.Attributes) > 0 {
					fmt.Println("Attributes:")
					for _, a := range it.Attributes {
						fmt.Printf("  %s: %s\n", a.Key, a.Value)
					}
				}
				return nil
			})
		},
	}

	var setName, setDesc string
	setCmd := &cobra.Command{
		Use:   "set <item>",
		Short: "Update a world item's name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if setName == "" && setDesc == "" {
				return fmt.Errorf("nothing to set (use --name or --desc)")
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				it := findWorldItem(d.Bible.Current(), args[0])
				if it == nil {
					return fmt.Errorf("world item %q not found", args[0])
				}
				err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					return services.PatchWorldItem(b, it.ID, setName, setDesc)
				})
				if err != nil {
					return err
				}
				fmt.Println("Updated.")
				return nil
			})
		},
	}
	setCmd.Flags().StringVar(&setName, "name", "", "New name")
	setCmd.Flags().StringVar(&setDesc, "desc", "", "New description")

	attrCmd := &cobra.Command{
		Use:   "attr <item> <key> <value>",
		Short: "Set a world item attribute value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				it := findWorldItem(d.Bible.Current(), args[0])
				if it == nil {
					return fmt.Errorf("world item %q not found", args[0])
				}
				attr := findAttribute(it.Attributes, args[1])
				if attr == nil {
					return fmt.Errorf("attribute %q not found on %q", args[1], it.Name)
				}
				err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					return services.SetWorldItemAttribute(b, it.ID, attr.ID, args[2])
				})
				if err != nil {
					return err
				}
				fmt.Printf("Set %s = %s\n", attr.Key, args[2])
				return nil
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <item>",
		Short: "Delete a world item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				it := findWorldItem(d.Bible.Current(), args[0])
				if it == nil {
					return fmt.Errorf("world item %q not found", args[0])
				}
				if !confirm(fmt.Sprintf("Delete item '%s'?", it.Name)) {
					fmt.Println("Aborted.")
					return nil
				}
				err := d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					return services.DeleteWorldItem(b, it.ID)
				})
				if err != nil {
					return err
				}
				fmt.Printf("Deleted item '%s'\n", it.Name)
				return nil
			})
		},
	}

	moveCmd := &cobra.Command{
		Use:   "move <item> <up|down>",
		Short: "Move a world item within its class view",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := parseDirection(args[1])
			if err != nil {
				return err
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				it := findWorldItem(d.Bible.Current(), args[0])
				if it == nil {
					return fmt.Errorf("world item %q not found", args[0])
				}
				return d.Bible.Mutate(cmd.Context(), func(b *entities.StoryBible) *entities.StoryBible {
					return services.MoveWorldItem(b, it.ID, it.ClassID, dir)
				})
			})
		},
	}

	cmd.AddCommand(listCmd, addCmd, showCmd, setCmd, attrCmd, deleteCmd, moveCmd)
	return cmd
}

// findTemplateField matches a template field by ID or key.
func findTemplateField(cls *entities.Class, ref string) *entities.TemplateField {
	for i := range cls.Template {
		if cls.Template[i].ID == ref {
			return &cls.Template[i]
		}
	}
	norm := entities.NormalizeName(ref)
	for i := range cls.Template {
		if entities.NormalizeName(cls.Template[i].Key) == norm {
			return &cls.Template[i]
		}
	}
	return nil
}

// warnDuplicateKeys prints a notice when a class template carries the same
// key twice. Duplicates are legal but propagation touches every holder.
func warnDuplicateKeys(cls *entities.Class) {
	if cls == nil {
		return
	}
	if dupes := cls.DuplicateKeys(); len(dupes) > 0 {
		fmt.Printf("Warning: class '%s' has duplicate field keys: %s\n",
			cls.Name, strings.Join(dupes, ", "))
	}
}
