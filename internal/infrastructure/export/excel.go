// Package export renders analytics reports as XLSX workbooks.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/daftar-app/daftar-api/internal/domain/analytics"
	"github.com/xuri/excelize/v2"
)

const (
	sheetOverview  = "Financial Overview"
	sheetProducts  = "Top Products"
	sheetCustomers = "Top Customers"
	sheetMonthly   = "Monthly Breakdown"
)

// ExcelExporter builds XLSX workbooks from analytics reports.
type ExcelExporter struct{}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export renders the report into a workbook and returns the file bytes,
// ready to be served as an attachment.
func (e *ExcelExporter) Export(report *analytics.Report, exportedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}

	if err := e.writeOverview(f, report, exportedAt, headerStyle, moneyStyle); err != nil {
		return nil, err
	}
	if err := e.writeProducts(f, report, headerStyle, moneyStyle); err != nil {
		return nil, err
	}
	if err := e.writeCustomers(f, report, headerStyle, moneyStyle); err != nil {
		return nil, err
	}
	if err := e.writeMonthly(f, report, headerStyle, moneyStyle); err != nil {
		return nil, err
	}

	// Drop the default sheet created by NewFile
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex(sheetOverview)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *ExcelExporter) writeOverview(f *excelize.File, report *analytics.Report, exportedAt time.Time, headerStyle, moneyStyle int) error {
	if _, err := f.NewSheet(sheetOverview); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Range", string(report.Range)},
		{"Total Earned", report.TotalEarned},
		{"Total Spent", report.TotalSpent},
		{"Net Profit", report.NetProfit},
		{"Exported At", exportedAt.Format("2006-01-02 15:04")},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetOverview, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(sheetOverview, "A1", "B1", headerStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetOverview, "B3", "B5", moneyStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheetOverview, "A", "B", 20)
}

func (e *ExcelExporter) writeProducts(f *excelize.File, report *analytics.Report, headerStyle, moneyStyle int) error {
	if _, err := f.NewSheet(sheetProducts); err != nil {
		return err
	}

	header := []interface{}{"Product", "Quantity Sold", "Revenue"}
	if err := f.SetSheetRow(sheetProducts, "A1", &header); err != nil {
		return err
	}
	for i, p := range report.TopSellingProducts {
		row := []interface{}{p.Product.Name, p.TotalQuantity, p.TotalRevenue}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetProducts, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(sheetProducts, "A1", "C1", headerStyle); err != nil {
		return err
	}
	if n := len(report.TopSellingProducts); n > 0 {
		if err := f.SetCellStyle(sheetProducts, "C2", fmt.Sprintf("C%d", n+1), moneyStyle); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetProducts, "A", "C", 20)
}

func (e *ExcelExporter) writeCustomers(f *excelize.File, report *analytics.Report, headerStyle, moneyStyle int) error {
	if _, err := f.NewSheet(sheetCustomers); err != nil {
		return err
	}

	header := []interface{}{"Customer", "Total Spent", "Bills"}
	if err := f.SetSheetRow(sheetCustomers, "A1", &header); err != nil {
		return err
	}
	for i, c := range report.TopBuyingCustomers {
		row := []interface{}{c.Customer.Name, c.TotalSpent, c.TotalTransactions}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetCustomers, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(sheetCustomers, "A1", "C1", headerStyle); err != nil {
		return err
	}
	if n := len(report.TopBuyingCustomers); n > 0 {
		if err := f.SetCellStyle(sheetCustomers, "B2", fmt.Sprintf("B%d", n+1), moneyStyle); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetCustomers, "A", "C", 20)
}

func (e *ExcelExporter) writeMonthly(f *excelize.File, report *analytics.Report, headerStyle, moneyStyle int) error {
	if _, err := f.NewSheet(sheetMonthly); err != nil {
		return err
	}

	header := []interface{}{"Month", "Earned", "Spent", "Profit"}
	if err := f.SetSheetRow(sheetMonthly, "A1", &header); err != nil {
		return err
	}
	for i, m := range report.MonthlyBreakdown {
		row := []interface{}{m.Month, m.Earned, m.Spent, m.Profit}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetMonthly, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(sheetMonthly, "A1", "D1", headerStyle); err != nil {
		return err
	}
	if n := len(report.MonthlyBreakdown); n > 0 {
		if err := f.SetCellStyle(sheetMonthly, "B2", fmt.Sprintf("D%d", n+1), moneyStyle); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetMonthly, "A", "D", 15)
}
