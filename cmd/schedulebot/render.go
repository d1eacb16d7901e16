package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"poppi/models"
)

// printMessages writes bot messages with their options numbered from 1.
func printMessages(w io.Writer, botName string, msgs []models.ChatMessage) {
	for _, m := range msgs {
		if m.Sender != models.SenderBot {
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", botName, m.Text)
		for i, opt := range m.Options {
			fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
		}
	}
}

func lastOptions(msgs []models.ChatMessage) []string {
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1].Options
}

// resolveInput maps an option number to its text.
func resolveInput(raw string, options []string) string {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return s
}
