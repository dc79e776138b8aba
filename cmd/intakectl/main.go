package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"docintake/internal/app"
	"docintake/internal/config"
	"docintake/internal/domain"
	"docintake/internal/service"
)

func main() {
	if err := newRootCmd(os.Stdout, loadApp).Execute(); err != nil {
		os.Exit(1)
	}
}

func loadApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return app.New(cfg)
}

func newRootCmd(out io.Writer, load func() (*app.App, error)) *cobra.Command {
	root := &cobra.Command{
		Use:          "intakectl",
		Short:        "Submit supplier documents to SmartSuite from the command line",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(out)

	root.AddCommand(newCheckConfigCmd(load), newOptionsCmd(), newSubmitCmd(load))
	return root
}

func newCheckConfigCmd(load func() (*app.App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Report missing SmartSuite settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			missing := a.Intake.MissingConfig()
			if len(missing) == 0 {
				cmd.Println("SmartSuite configuration complete.")
				return nil
			}
			for _, name := range missing {
				cmd.Printf("missing: %s\n", name)
			}
			return &domain.ConfigError{Missing: missing}
		},
	}
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the accepted products, document types and suppliers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			opts := domain.FormOptions()
			cmd.Printf("Products:\n  %s\n", strings.Join(opts.Products, "\n  "))
			cmd.Printf("Document Types:\n  %s\n", strings.Join(opts.DocTypes, "\n  "))
			cmd.Printf("Suppliers:\n  %s\n", strings.Join(opts.Suppliers, "\n  "))
		},
	}
}

func newSubmitCmd(load func() (*app.App, error)) *cobra.Command {
	var product, docType, supplier, filename string

	cmd := &cobra.Command{
		Use:   "submit <file.pdf>",
		Short: "Create a SmartSuite record and attach the PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("stat %s: %w", args[0], err)
			}

			base := filepath.Base(args[0])
			if filename == "" {
				filename = strings.TrimSuffix(base, filepath.Ext(base))
			}

			result, err := a.Intake.Submit(context.Background(), domain.SubmissionForm{
				Product:  product,
				DocType:  docType,
				Supplier: supplier,
				Filename: filename,
				File:     f,
				Header:   &multipart.FileHeader{Filename: base, Size: info.Size()},
			})
			for _, n := range service.Notifications(result, err) {
				cmd.Printf("[%s] %s\n", n.Severity, n.Message)
			}
			if err != nil {
				return errors.New("submission failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&product, "product", "", "product the document belongs to")
	cmd.Flags().StringVar(&docType, "doc-type", "", "document type")
	cmd.Flags().StringVar(&supplier, "supplier", "", "supplier the document came from")
	cmd.Flags().StringVar(&filename, "filename", "", "filename stored on the record (defaults to the file's base name)")
	return cmd
}
