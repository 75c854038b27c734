package main

import (
	"github.com/deppfellow/lightbnb/internal/lib/email"
	"github.com/spf13/cobra"
)

func newEmailPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "email-preview [template]",
		Short:     "Render an email template with sample data to stdout",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(email.TemplateWelcome)},
		RunE: func(cmd *cobra.Command, args []string) error {
			html, err := email.RenderPreview(email.Template(args[0]))
			if err != nil {
				return err
			}
			cmd.Print(html)
			return nil
		},
	}
}
