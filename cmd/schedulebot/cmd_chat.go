package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"poppi/config"
	"poppi/services/chat"
	"poppi/utils"
)

func runChat(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	verbose, _ := cmd.Flags().GetBool("verbose")

	level := "error"
	if verbose {
		level = "debug"
	}
	logger, err := utils.NewLogger(false, level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	out := cmd.OutOrStdout()
	client := newCollaborator(cmd)
	profile := chat.ProfileFromConfig(config.AppConfig)

	ctrl := chat.NewController(profile, client, client,
		chat.WithKnownUser(name, email),
		chat.WithLogger(logger),
		chat.WithRedirector(chat.RedirectFunc(func(url string) {
			fmt.Fprintf(out, "\nOpen this link to complete payment:\n  %s\n\n", url)
		})),
	)

	greeting := ctrl.Messages()
	printMessages(out, profile.Name, greeting)
	options := lastOptions(greeting)

	in := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprint(out, "> ")
	for in.Scan() {
		text := resolveInput(in.Text(), options)
		switch strings.ToLower(text) {
		case "quit", "exit":
			return nil
		}

		reply, err := ctrl.Handle(cmd.Context(), text)
		if err != nil {
			return err
		}
		printMessages(out, profile.Name, reply.Messages)
		if len(reply.Messages) > 0 {
			options = lastOptions(reply.Messages)
		}
		fmt.Fprint(out, "> ")
	}
	return in.Err()
}
