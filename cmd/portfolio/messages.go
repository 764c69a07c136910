package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio/internal/db"
	"github.com/jonathan/portfolio/internal/types"
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "List stored contact messages and résumé renders",
	RunE:  runMessages,
}

var (
	messagesLimit       int
	messagesRenders     bool
	messagesOutput      string
	messagesDatabaseURL string
)

// Output formats for the messages command
const (
	outputMarkdown = "markdown"
	outputJSON     = "json"
)

func init() {
	messagesCmd.Flags().IntVarP(&messagesLimit, "limit", "n", db.DefaultListLimit, "Maximum rows to list")
	messagesCmd.Flags().BoolVar(&messagesRenders, "renders", false, "Also list recorded résumé renders")
	messagesCmd.Flags().StringVarP(&messagesOutput, "output", "o", outputMarkdown, "Output format: markdown or json")
	messagesCmd.Flags().StringVar(&messagesDatabaseURL, "db-url", "", "Database URL (sqlite://path or postgres://...)")

	rootCmd.AddCommand(messagesCmd)
}

func runMessages(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(os.Getenv)
	if err != nil {
		return err
	}
	flagString(cmd, "db-url", messagesDatabaseURL, &cfg.DatabaseURL)

	switch messagesOutput {
	case outputMarkdown, outputJSON:
	default:
		return fmt.Errorf("unknown output format %q (want markdown or json)", messagesOutput)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = store.Close() }()

	msgs, err := store.ListContactMessages(ctx, messagesLimit)
	if err != nil {
		return err
	}
	var renders []types.RenderRecord
	if messagesRenders {
		if renders, err = store.ListRenders(ctx, messagesLimit); err != nil {
			return err
		}
	}

	if messagesOutput == outputJSON {
		return writeMessagesJSON(cmd.OutOrStdout(), msgs, renders, messagesRenders)
	}
	return writeMessages(cmd.OutOrStdout(), msgs, renders, messagesRenders)
}

// writeMessages prints messages (and optionally renders) as Markdown tables
func writeMessages(w io.Writer, msgs []types.ContactMessage, renders []types.RenderRecord, withRenders bool) error {
	md := markdown.NewMarkdown(w)

	md.H2("Contact Messages")
	md.PlainText("")
	if len(msgs) == 0 {
		md.PlainText("No messages stored.")
		md.PlainText("")
	} else {
		rows := make([][]string, 0, len(msgs))
		for _, m := range msgs {
			rows = append(rows, []string{
				m.CreatedAt.UTC().Format(time.RFC3339),
				m.Name,
				m.Email,
				cell(m.Subject, 40),
				m.Status,
				cell(m.Error, 40),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Received", "Name", "Email", "Subject", "Status", "Error"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if withRenders {
		md.H2("Résumé Renders")
		md.PlainText("")
		if len(renders) == 0 {
			md.PlainText("No renders recorded.")
			md.PlainText("")
		} else {
			rows := make([][]string, 0, len(renders))
			for _, r := range renders {
				rows = append(rows, []string{
					r.CreatedAt.UTC().Format(time.RFC3339),
					r.Format,
					r.FileName,
					strconv.Itoa(r.Pages),
					strconv.Itoa(r.SizeBytes),
					r.Source,
				})
			}
			md.Table(markdown.TableSet{
				Header: []string{"Rendered", "Format", "File", "Pages", "Bytes", "Source"},
				Rows:   rows,
			})
			md.PlainText("")
		}
	}

	return md.Build()
}

func writeMessagesJSON(w io.Writer, msgs []types.ContactMessage, renders []types.RenderRecord, withRenders bool) error {
	if msgs == nil {
		msgs = []types.ContactMessage{}
	}
	out := struct {
		Messages []types.ContactMessage `json:"messages"`
		Renders  []types.RenderRecord   `json:"renders,omitempty"`
	}{Messages: msgs}
	if withRenders {
		out.Renders = renders
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// cell flattens newlines and pipes and truncates to n runes for table output
func cell(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "|", "/")
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
