package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"hrdocs/internal/domain/auth"
	"hrdocs/internal/domain/company"
	"hrdocs/internal/domain/documents"
	"hrdocs/internal/domain/payroll"
	"hrdocs/internal/platform/logging"
	"hrdocs/internal/platform/render"
	"hrdocs/internal/platform/storage"
	"hrdocs/internal/platform/templates"
)

type pipeline struct {
	service *documents.Service
	files   *storage.LocalStorage
}

func newPipeline(cmd *cobra.Command, outDir string) (*pipeline, error) {
	companiesPath, _ := cmd.Flags().GetString("companies")
	templatesDir, _ := cmd.Flags().GetString("templates")
	assetDir, _ := cmd.Flags().GetString("assets")

	registry, err := company.LoadRegistry(companiesPath)
	if err != nil {
		return nil, err
	}
	tmpl, err := templates.New(templatesDir)
	if err != nil {
		return nil, err
	}
	files, err := storage.NewLocalStorage(outDir)
	if err != nil {
		return nil, err
	}
	absAssets, err := filepath.Abs(assetDir)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cmd.ErrOrStderr(), "cli", "warn")
	composer := documents.NewComposer(registry, documents.WithAssetBaseURL(absAssets))
	svc := documents.NewService(composer, tmpl, render.NewPDFRenderer(assetDir), files, nil, logger)
	return &pipeline{service: svc, files: files}, nil
}

func renderCmd() *cobra.Command {
	var requestPath, outDir string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a request file into a PDF, or a ZIP for multi-month salary slips",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequest(requestPath)
			if err != nil {
				return err
			}
			p, err := newPipeline(cmd, outDir)
			if err != nil {
				return err
			}
			artifact, err := p.service.Generate(context.Background(), req)
			if err != nil {
				return err
			}
			target := filepath.Join(outDir, storage.SecureName(artifact.Name))
			if err := os.WriteFile(target, artifact.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&requestPath, "file", "f", "", "request YAML file")
	cmd.Flags().StringVarP(&outDir, "out", "o", "generated", "output directory")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func previewCmd() *cobra.Command {
	var requestPath, docType string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the populated HTML for a request file",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequest(requestPath)
			if err != nil {
				return err
			}
			p, err := newPipeline(cmd, os.TempDir())
			if err != nil {
				return err
			}
			var html string
			if strings.TrimSpace(docType) == "" {
				html, err = p.service.Preview(req)
			} else {
				var t documents.DocumentType
				if t, err = documents.ParseDocumentType(docType); err != nil {
					return fmt.Errorf("%w: %q", err, docType)
				}
				html, err = p.service.PreviewDocument(req, t)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), html)
			return err
		},
	}
	cmd.Flags().StringVarP(&requestPath, "file", "f", "", "request YAML file")
	cmd.Flags().StringVarP(&docType, "doc", "d", "", "preview one document type out of the request")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func breakdownCmd() *cobra.Command {
	var ctc, increment string
	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Print the monthly salary breakdown for an annual CTC",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := payroll.Compute(ctc, increment)
			rows := [][2]string{
				{"monthly_ctc", b.MonthlyCTC.String()},
				{"increment_per_month", b.IncrementPerMonth.String()},
				{"monthly_ctc_after_increment", b.MonthlyCTCAfterIncrement.String()},
				{"basic", b.Basic.String()},
				{"hra", b.HRA.String()},
				{"conveyance", b.Conveyance.String()},
				{"medical", b.Medical.String()},
				{"telephone", b.Telephone.String()},
				{"special_allowance", b.SpecialAllowance.String()},
				{"gross_salary", b.GrossSalary.String()},
				{"professional_tax", b.ProfessionalTax.String()},
				{"net_salary", b.NetSalary.String()},
			}
			out := bufio.NewWriter(cmd.OutOrStdout())
			for _, row := range rows {
				fmt.Fprintf(out, "%-28s %12s\n", row[0], row[1])
			}
			return out.Flush()
		},
	}
	cmd.Flags().StringVar(&ctc, "ctc", "0", "annual cost to company")
	cmd.Flags().StringVar(&increment, "increment", "0", "monthly increment")
	return cmd
}

func companiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "companies",
		Short: "List configured companies as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("companies")
			registry, err := company.LoadRegistry(path)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(map[string]any{"companies": registry.List()})
		},
	}
}

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the document templates that can be rendered",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("templates")
			store, err := templates.New(dir)
			if err != nil {
				return err
			}
			for _, name := range store.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
