package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/quanlykho/kho_backend/models"
)

// sheetWriter fills one sheet of the workbook from already-loaded ledger data.
type sheetWriter struct {
	name     string
	headings []string
	rows     func() [][]interface{}
}

func writeSheet(f *excelize.File, s sheetWriter) error {
	if _, err := f.NewSheet(s.name); err != nil {
		return err
	}

	// Add headers
	col := 'A'
	for _, h := range s.headings {
		f.SetCellValue(s.name, string(col)+"1", h)
		col++
	}

	// Add data
	rowNo := 2
	for _, row := range s.rows() {
		col := 'A'
		for _, value := range row {
			f.SetCellValue(s.name, string(col)+fmt.Sprint(rowNo), value)
			col++
		}
		rowNo++
	}
	return nil
}

func formatDay(t time.Time) string {
	return t.Format("2006-01-02")
}

func derefCost(v *int64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

// BuildWorkbook renders the full ledger into an xlsx workbook, one sheet per
// collection. The caller decides whether to stream it or save it to disk.
func BuildWorkbook(ctx context.Context, ledger *models.Ledger) (*excelize.File, error) {
	products, err := ledger.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := ledger.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := ledger.GetCustomers(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := ledger.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	imports, err := ledger.GetImports(ctx)
	if err != nil {
		return nil, err
	}
	exports, err := ledger.GetExports(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := ledger.GetPayments(ctx)
	if err != nil {
		return nil, err
	}

	sheets := []sheetWriter{
		{
			name:     "Products",
			headings: []string{"Name", "Sku", "Category", "Price", "Stock", "ImportDate"},
			rows: func() [][]interface{} {
				rows := make([][]interface{}, 0, len(products))
				for _, p := range products {
					rows = append(rows, []interface{}{p.Name, p.Sku, p.Category, p.Price, p.Stock, formatDay(p.ImportDate)})
				}
				return rows
			},
		},
		{
			name:     "Categories",
			headings: []string{"Name"},
			rows: func() [][]interface{} {
				rows := make([][]interface{}, 0, len(categories))
				for _, c := range categories {
					rows = append(rows, []interface{}{c.Name})
				}
				return rows
			},
		},
		{
			name:     "Customers",
			headings: []string{"Name", "Phone", "Address", "Note", "CreatedAt"},
			rows: func() [][]interface{} {
				rows := make([][]interface{}, 0, len(customers))
				for _, c := range customers {
					rows = append(rows, []interface{}{c.Name, c.Phone, c.Address, c.Note, formatDay(c.CreatedAt)})
				}
				return rows
			},
		},
		{
			name:     "Orders",
			headings: []string{"OrderId", "CustomerName", "Phone", "Status", "TotalAmount", "PaidAmount", "CreatedAt"},
			rows: func() [][]interface{} {
				rows := make([][]interface{}, 0, len(orders))
				for _, o := range orders {
					rows = append(rows, []interface{}{o.ID, o.CustomerName, o.CustomerPhone, string(o.Status), o.TotalAmount, o.PaidAmount, formatDay(o.CreatedAt)})
				}
				return rows
			},
		},
		{
			name:     "Imports",
			headings: []string{"Product", "Sku", "Quantity", "UnitCost", "TotalCost", "Supplier", "Date"},
			rows: func() [][]interface{} {
				rows := make([][]interface{}, 0, len(imports))
				for _, r := range imports {
					rows = append(rows, []interface{}{r.Name, r.Sku, r.Quantity, derefCost(r.UnitCost), derefCost(r.TotalCost), r.SupplierName, formatDay(r.CreatedAt)})
				}
				return rows
			},
		},
		{
			name:     "Exports",
			headings: []string{"Product", "Sku", "Quantity", "OrderId", "Customer", "Date"},
			rows: func() [][]interface{} {
				rows := make([][]interface{}, 0, len(exports))
				for _, r := range exports {
					rows = append(rows, []interface{}{r.Name, r.Sku, r.Quantity, r.OrderId, r.CustomerName, formatDay(r.CreatedAt)})
				}
				return rows
			},
		},
		{
			name:     "Payments",
			headings: []string{"Kind", "Amount", "Method", "Counterparty", "Reference", "Date"},
			rows: func() [][]interface{} {
				rows := make([][]interface{}, 0, len(payments))
				for _, p := range payments {
					counterparty := p.CustomerName
					reference := p.OrderId
					if p.Kind == models.PaymentKindPayable {
						counterparty = p.SupplierName
						reference = p.ImportId
					}
					rows = append(rows, []interface{}{string(p.Kind), p.Amount, string(p.Method), counterparty, reference, formatDay(p.CreatedAt)})
				}
				return rows
			},
		},
	}

	f := excelize.NewFile()
	for _, s := range sheets {
		if err := writeSheet(f, s); err != nil {
			return nil, err
		}
	}
	// Drop the default sheet so Products opens first.
	f.DeleteSheet("Sheet1")
	return f, nil
}
