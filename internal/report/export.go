package report

import (
	"bytes"
	"fmt"
	"time"

	"portal-backend/internal/database"
	"portal-backend/internal/inquiry"
	"portal-backend/internal/models"
	"portal-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Portal_Data"

// GET /api/reports/inquiries
// Streams all inquiries, unfiltered by role or search, as a single-sheet
// workbook. Read-only; stored state is untouched.
func ExportInquiriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		inqs, err := store.NewInquiryStore(database.DB).List(store.InquiryFilter{})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load inquiries")
		}

		buf, err := BuildWorkbook(inqs)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate report")
		}

		filename := fmt.Sprintf("MEMF_Report_%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))

		return c.Send(buf.Bytes())
	}
}

// BuildWorkbook flattens inquiries into the Portal_Data sheet: a header row
// followed by one row per inquiry.
func BuildWorkbook(inqs []models.Inquiry) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headers := []string{"Reference", "Client", "Status", "Engineer", "Value"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for row, inq := range inqs {
		values := []interface{}{
			inq.Reference,
			inq.CustName,
			string(inq.Status),
			inq.AssignedEng,
			inquiry.Value(inq.Items),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f.WriteToBuffer()
}
