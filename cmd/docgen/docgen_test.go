package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdocs/internal/domain/documents"
)

const sampleRequest = `
company: company1
document_type: Salary_Slip
full_name: Asha Verma
national_id: "1234"
ctc: "600000"
joining_date: "2024-03-01"
months: [january, february]
year: "2024"
bank_details:
  bank_name: SBI
  ifsc_code: SBIN0000001
`

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "docgen", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("companies", "", "")
	root.PersistentFlags().String("templates", "", "")
	root.PersistentFlags().String("assets", "", "")
	root.AddCommand(renderCmd(), previewCmd(), breakdownCmd(), companiesCmd(), templatesCmd(), hashPasswordCmd())
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseRequest(t *testing.T) {
	req, err := parseRequest([]byte(sampleRequest))
	require.NoError(t, err)
	assert.Equal(t, documents.SalarySlip, req.DocumentType)
	assert.Equal(t, defaultEmployeeID, req.EmployeeID)
	assert.Equal(t, "2024-03-01", req.JoiningDate)
	assert.Equal(t, []string{"january", "february"}, req.Months)
	assert.Equal(t, "SBIN0000001", req.Bank.IFSCCode)
	assert.True(t, req.IsBatch())

	_, err = parseRequest([]byte("document_type: memo\n"))
	assert.ErrorIs(t, err, documents.ErrUnknownDocumentType)
}

func TestBreakdownCommand(t *testing.T) {
	out, err := run(t, "breakdown", "--ctc", "600000")
	require.NoError(t, err)
	assert.Contains(t, out, "net_salary")
	assert.Contains(t, out, "49800")
}

func TestCompaniesCommand(t *testing.T) {
	out, err := run(t, "companies")
	require.NoError(t, err)
	assert.Contains(t, out, "id: company1")
	assert.Contains(t, out, "id: company2")
}

func TestRenderCommandWritesArchive(t *testing.T) {
	dir := t.TempDir()
	reqPath := filepath.Join(dir, "request.yaml")
	require.NoError(t, os.WriteFile(reqPath, []byte(sampleRequest), 0o644))
	outDir := filepath.Join(dir, "out")

	out, err := run(t, "render", "-f", reqPath, "-o", outDir)
	require.NoError(t, err)
	target := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(outDir, "EMP0000_Salary_Slips.zip"), target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))

	_, err = os.Stat(filepath.Join(outDir, "employee_documents", "EMP0000", "Salary_Slip_january.pdf"))
	assert.NoError(t, err)
}

func TestPreviewCommandSingleDocument(t *testing.T) {
	dir := t.TempDir()
	reqPath := filepath.Join(dir, "request.yaml")
	require.NoError(t, os.WriteFile(reqPath, []byte(sampleRequest), 0o644))

	out, err := run(t, "preview", "-f", reqPath, "-d", "offer_letter")
	require.NoError(t, err)
	assert.Contains(t, out, "Asha Verma")

	_, err = run(t, "preview", "-f", reqPath, "-d", "memo")
	assert.Error(t, err)
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := run(t, "hash-password", "letmein")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "$2a$"))
}

func TestTemplatesCommandListsEmbeddedTemplates(t *testing.T) {
	out, err := run(t, "templates")
	require.NoError(t, err)
	assert.Equal(t, "offer_letter\nrelieving_letter\nsalary_slip\n", out)
}
