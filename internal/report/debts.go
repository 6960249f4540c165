package report

import (
	"fmt"

	"ledger-backend/internal/ledger"
	"ledger-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

var debtHeaders = []string{"Party", "Phone", "Currency", "Total", "Paid", "Remaining"}

// BuildDebtWorkbook writes one row per party and currency. Parties without any
// order get a single row with empty amounts so the sheet lists everyone.
func BuildDebtWorkbook(kind models.PartyKind, debts []ledger.PartyDebt) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Debts"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for i, h := range debtHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return nil, err
	}

	row := 2
	for _, pd := range debts {
		if len(pd.Debt) == 0 {
			if err := setRow(f, sheet, row, pd.Party.Name, pd.Party.Phone); err != nil {
				return nil, err
			}
			row++
			continue
		}
		for _, b := range pd.Debt {
			if err := setRow(f, sheet, row,
				pd.Party.Name,
				pd.Party.Phone,
				b.Currency,
				b.Total.InexactFloat64(),
				b.Paid.InexactFloat64(),
				b.Remaining.InexactFloat64(),
			); err != nil {
				return nil, err
			}
			row++
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return nil, err
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: fmt.Sprintf("%s debts", kind)}); err != nil {
		return nil, err
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// GET /api/reports/debts.xlsx?kind=supplier|customer
func DebtsHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := models.PartyKind(c.Query("kind", string(models.PartyCustomer)))
		if kind != models.PartySupplier && kind != models.PartyCustomer {
			return fiber.NewError(fiber.StatusBadRequest, "kind must be supplier or customer")
		}

		debts, err := svc.PartyDebts(c.UserContext(), kind)
		if err != nil {
			return err
		}

		f, err := BuildDebtWorkbook(kind, debts)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build workbook")
		}
		defer f.Close()

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not write workbook")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s-debts.xlsx", kind))
		return c.Send(buf.Bytes())
	}
}
