package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"hrdocs/internal/domain/documents"
)

// requestFile is the YAML form of a document request.
type requestFile struct {
	Company           string   `yaml:"company"`
	DocumentType      string   `yaml:"document_type"`
	EmployeeID        string   `yaml:"employee_id"`
	FullName          string   `yaml:"full_name"`
	Address           string   `yaml:"address"`
	NationalID        string   `yaml:"national_id"`
	PAN               string   `yaml:"pan_no"`
	Designation       string   `yaml:"designation"`
	CTC               string   `yaml:"ctc"`
	IncrementPerMonth string   `yaml:"increment_per_month"`
	JoiningDate       string   `yaml:"joining_date"`
	ResignationDate   string   `yaml:"resignation_date"`
	Months            []string `yaml:"months"`
	Year              string   `yaml:"year"`
	Bank              struct {
		AccountHolder string `yaml:"account_holder"`
		AccountNumber string `yaml:"account_number"`
		BankName      string `yaml:"bank_name"`
		Branch        string `yaml:"branch"`
		IFSCCode      string `yaml:"ifsc_code"`
	} `yaml:"bank_details"`
}

const defaultEmployeeID = "EMP0000"

func parseRequest(data []byte) (documents.Request, error) {
	var rf requestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return documents.Request{}, fmt.Errorf("parse request file: %w", err)
	}
	docType, err := documents.ParseDocumentType(rf.DocumentType)
	if err != nil {
		return documents.Request{}, fmt.Errorf("%w: %q", err, rf.DocumentType)
	}
	employeeID := strings.TrimSpace(rf.EmployeeID)
	if employeeID == "" {
		employeeID = defaultEmployeeID
	}
	return documents.Request{
		CompanyID:         strings.TrimSpace(rf.Company),
		DocumentType:      docType,
		EmployeeID:        employeeID,
		FullName:          rf.FullName,
		Address:           rf.Address,
		NationalID:        rf.NationalID,
		PAN:               rf.PAN,
		Designation:       rf.Designation,
		AnnualCTC:         rf.CTC,
		IncrementPerMonth: rf.IncrementPerMonth,
		JoiningDate:       rf.JoiningDate,
		ResignationDate:   rf.ResignationDate,
		Months:            rf.Months,
		Year:              rf.Year,
		Bank: documents.BankDetails{
			AccountHolder: rf.Bank.AccountHolder,
			AccountNumber: rf.Bank.AccountNumber,
			BankName:      rf.Bank.BankName,
			Branch:        rf.Bank.Branch,
			IFSCCode:      rf.Bank.IFSCCode,
		},
	}, nil
}

func loadRequest(path string) (documents.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return documents.Request{}, err
	}
	return parseRequest(data)
}
