package roster

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	"github.com/openfest/gatekeeper/internal/dependencies/mocks"
	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/services/identifier"
	"github.com/openfest/gatekeeper/internal/storage/memory"
	"github.com/openfest/gatekeeper/internal/testutil"
)

type ImporterSuite struct {
	suite.Suite
	storage  *memory.Storage
	random   *mocks.MockRandom
	importer *Importer
	ctx      context.Context
}

func TestImporterSuite(t *testing.T) {
	suite.Run(t, new(ImporterSuite))
}

func (s *ImporterSuite) SetupTest() {
	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	clk := mocks.NewMockClock(time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))
	s.importer = New(s.storage, identifier.New(s.storage, s.random), clk, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ImporterSuite) TestImportCSV() {
	csvData := strings.Join([]string{
		"id,name,email,phone,college,payment,category,events",
		"AB23CD,Asha Rao,asha@example.com,9876543210,NIT Surathkal,paid,pre-registered,\"robotics, quiz\"",
		"EF45GH,Ben Thomas,ben@example.com,,,,attendee,",
	}, "\n")

	report, err := s.importer.ImportCSV(s.ctx, strings.NewReader(csvData))
	s.Require().NoError(err)
	s.Equal(2, report.Imported)
	s.Equal(0, report.Skipped)

	p, err := s.storage.GetParticipant(s.ctx, "AB23CD")
	s.Require().NoError(err)
	s.Equal("Asha Rao", p.Name)
	s.Equal(model.PaymentPaid, p.PaymentStatus)
	s.Equal(model.CategoryPreRegistered, p.Category)
	s.Equal([]string{"robotics", "quiz"}, p.Events)
	s.Equal(model.StatusRegistered, p.Status)
}

func (s *ImporterSuite) TestImportCSVHeaderDrift() {
	// Older roster exports use different column names
	csvData := strings.Join([]string{
		"Reg ID,Full Name,Email ID,Mobile No,Institution,Fee Paid",
		"AB23CD,Asha Rao,asha@example.com,9876543210,NIT Surathkal,Yes",
	}, "\n")

	report, err := s.importer.ImportCSV(s.ctx, strings.NewReader(csvData))
	s.Require().NoError(err)
	s.Equal(1, report.Imported)

	p, err := s.storage.GetParticipant(s.ctx, "AB23CD")
	s.Require().NoError(err)
	s.Equal("Asha Rao", p.Name)
	s.Equal("9876543210", p.Phone)
	s.Equal("NIT Surathkal", p.College)
	s.Equal(model.PaymentPaid, p.PaymentStatus)
}

func (s *ImporterSuite) TestImportAllocatesMissingIdentifiers() {
	s.random.QueueString("XY78ZW")

	csvData := strings.Join([]string{
		"name,email",
		"Asha Rao,asha@example.com",
	}, "\n")

	report, err := s.importer.ImportCSV(s.ctx, strings.NewReader(csvData))
	s.Require().NoError(err)
	s.Equal(1, report.Imported)

	p, err := s.storage.GetParticipant(s.ctx, "XY78ZW")
	s.Require().NoError(err)
	s.Equal("Asha Rao", p.Name)
}

func (s *ImporterSuite) TestImportSkipsBadRows() {
	csvData := strings.Join([]string{
		"id,name,email",
		"AB23CD,Asha Rao,asha@example.com",
		"EF45GH,,missing-name@example.com",
		"JK67MN,No Email,",
		"AB23CD,Duplicate Identifier,dup@example.com",
		",,",
		"QR89ST,Ben Thomas,ben@example.com",
	}, "\n")

	report, err := s.importer.ImportCSV(s.ctx, strings.NewReader(csvData))
	s.Require().NoError(err)
	s.Equal(2, report.Imported)
	s.Equal(3, report.Skipped)
	s.Require().Len(report.Errors, 3)

	// Row numbers are 1-based over data rows
	s.Equal(2, report.Errors[0].Row)
	s.Contains(report.Errors[0].Reason, "name")
	s.Equal(4, report.Errors[2].Row)
	s.Contains(report.Errors[2].Reason, "already")
}

func (s *ImporterSuite) TestImportShortRows() {
	csvData := strings.Join([]string{
		"id,name,email,phone,college",
		"AB23CD,Asha Rao,asha@example.com",
	}, "\n")

	report, err := s.importer.ImportCSV(s.ctx, strings.NewReader(csvData))
	s.Require().NoError(err)
	s.Equal(1, report.Imported)

	p, err := s.storage.GetParticipant(s.ctx, "AB23CD")
	s.Require().NoError(err)
	s.Empty(p.Phone)
	s.Empty(p.College)
}

func (s *ImporterSuite) TestImportNoUsableHeader() {
	csvData := "foo,bar\n1,2"
	_, err := s.importer.ImportCSV(s.ctx, strings.NewReader(csvData))
	s.ErrorIs(err, ErrNoHeader)
}

func (s *ImporterSuite) TestImportEmptyFile() {
	_, err := s.importer.ImportCSV(s.ctx, strings.NewReader(""))
	s.ErrorIs(err, ErrNoHeader)
}

func (s *ImporterSuite) TestImportXLSX() {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"id", "name", "email", "payment"},
		{"AB23CD", "Asha Rao", "asha@example.com", "paid"},
		{"EF45GH", "Ben Thomas", "ben@example.com", "pending"},
	}
	for n, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, n+1)
		s.Require().NoError(err)
		s.Require().NoError(f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	s.Require().NoError(f.Write(&buf))

	report, err := s.importer.ImportXLSX(s.ctx, &buf)
	s.Require().NoError(err)
	s.Equal(2, report.Imported)

	p, err := s.storage.GetParticipant(s.ctx, "AB23CD")
	s.Require().NoError(err)
	s.Equal(model.PaymentPaid, p.PaymentStatus)
}

func (s *ImporterSuite) TestImportDispatchesOnExtension() {
	csvData := "name,email\nAsha Rao,asha@example.com"
	s.random.QueueString("XY78ZW")

	report, err := s.importer.Import(s.ctx, "roster.CSV", strings.NewReader(csvData))
	s.Require().NoError(err)
	s.Equal(1, report.Imported)

	_, err = s.importer.Import(s.ctx, "roster.pdf", strings.NewReader(""))
	s.ErrorIs(err, ErrUnsupportedFormat)
}

func (s *ImporterSuite) TestImportUppercasesIdentifiers() {
	csvData := "id,name,email\nab23cd,Asha Rao,asha@example.com"

	report, err := s.importer.ImportCSV(s.ctx, strings.NewReader(csvData))
	s.Require().NoError(err)
	s.Equal(1, report.Imported)

	// Identifier is stored uppercase
	_, err = s.storage.GetParticipant(s.ctx, "AB23CD")
	s.NoError(err)
}
