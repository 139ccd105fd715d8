package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canaworld/cana/internal/application/handlers"
	"github.com/canaworld/cana/internal/domain/entities"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the Narrative Architect (can edit the bible via tools)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withChat(cmd.Context(), func(d *Deps, chat *handlers.ChatHandler) error {
				printHistoryTail(d.Bible.Current().ArchitectHistory)
				fmt.Println("Narrative Architect ready. Type 'quit' to exit.")
				return chatLoop(cmd.Context(), func(ctx context.Context, line string) error {
					reply, action, err := chat.SendArchitect(ctx, line)
					if err != nil {
						return err
					}
					if action != "" {
						fmt.Printf("[%s]\n", action)
					}
					fmt.Println(reply)
					return nil
				})
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the architect conversation log",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if err := newChatOnlyHandler(d).ClearArchitect(cmd.Context()); err != nil {
					return err
				}
				fmt.Println("Architect history cleared.")
				return nil
			})
		},
	})

	return cmd
}

func newRoleplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roleplay",
		Short: "Start a roleplay session with the Game Master (read-only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withChat(cmd.Context(), func(d *Deps, chat *handlers.ChatHandler) error {
				printHistoryTail(d.Bible.Current().RoleplayHistory)
				fmt.Println("Game Master ready. Type 'quit' to exit.")
				return chatLoop(cmd.Context(), func(ctx context.Context, line string) error {
					reply, err := chat.SendRoleplay(ctx, line)
					if err != nil {
						return err
					}
					fmt.Println(reply)
					return nil
				})
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the roleplay conversation log",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if err := newChatOnlyHandler(d).ClearRoleplay(cmd.Context()); err != nil {
					return err
				}
				fmt.Println("Roleplay history cleared.")
				return nil
			})
		},
	})

	return cmd
}

// chatLoop reads lines from stdin and feeds each to send until EOF, 'quit',
// or context cancellation.
func chatLoop(ctx context.Context, send func(context.Context, string) error) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		if err := send(ctx, line); err != nil {
			return err
		}
	}
}

// printHistoryTail replays the last few stored messages so a resumed session
// has context on screen.
func printHistoryTail(history []entities.ChatMessage) {
	const tail = 6
	if len(history) > tail {
		history = history[len(history)-tail:]
	}
	for _, msg := range history {
		speaker := "You"
		if msg.Role == entities.RoleModel {
			speaker = "CANA"
		}
		fmt.Printf("%s: %s\n", speaker, msg.Content)
	}
}

// newChatOnlyHandler builds a chat handler without an LLM transport, for
// operations that never call the model.
func newChatOnlyHandler(d *Deps) *handlers.ChatHandler {
	return handlers.NewChatHandler(d.Bible, nil, d.Log)
}
