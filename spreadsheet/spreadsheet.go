// Package spreadsheet reads catalog sheets and writes order history sheets.
package spreadsheet

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/junaidrashid-git/storefront/models"
	"github.com/tealeg/xlsx"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	timeLayout  = "2006-01-02 15:04:05"
)

var ErrEmptySheet = errors.New("excel file is empty or missing header row")

// ProductColumns is the header row of a catalog sheet.
var ProductColumns = []string{"ID", "Name", "Description", "Price", "ImageURL", "Category"}

var orderColumns = []string{
	"OrderID", "CreatedAt", "Status", "ProductID", "Product",
	"Quantity", "Price", "LineTotal", "OrderTotal",
}

// ReadProducts parses the first sheet of a catalog workbook. Rows without a
// name or with an unparseable price are skipped and counted.
func ReadProducts(r io.ReaderAt, size int64) (products []models.Product, skipped int, err error) {
	file, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return nil, 0, err
	}
	if len(file.Sheets) == 0 || file.Sheets[0].MaxRow < 2 {
		return nil, 0, ErrEmptySheet
	}

	sheet := file.Sheets[0]
	for i := 1; i < sheet.MaxRow; i++ {
		row := sheet.Rows[i]
		if row == nil || len(row.Cells) < 4 {
			skipped++
			continue
		}

		get := func(index int) string {
			if index < len(row.Cells) {
				return strings.TrimSpace(row.Cells[index].String())
			}
			return ""
		}

		name := get(1)
		price, perr := strconv.ParseFloat(get(3), 64)
		if name == "" || perr != nil || price < 0 {
			skipped++
			continue
		}

		products = append(products, models.Product{
			ID:          get(0),
			Name:        name,
			Description: get(2),
			Price:       price,
			ImageURL:    get(4),
			Category:    get(5),
		})
	}
	return products, skipped, nil
}

// WriteProducts writes a catalog sheet that ReadProducts accepts.
func WriteProducts(w io.Writer, products []models.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}

	addHeader(sheet, ProductColumns)
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(strconv.FormatFloat(p.Price, 'f', -1, 64))
		row.AddCell().SetString(p.ImageURL)
		row.AddCell().SetString(p.Category)
	}
	return file.Write(w)
}

// ExportOrders writes one row per order item, newest order first as given.
func ExportOrders(w io.Writer, orders []models.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return err
	}

	addHeader(sheet, orderColumns)
	for _, o := range orders {
		for _, item := range o.Items {
			name := ""
			if item.Product != nil {
				name = item.Product.Name
			}

			row := sheet.AddRow()
			row.AddCell().SetString(o.ID)
			row.AddCell().SetString(o.CreatedAt.Format(timeLayout))
			row.AddCell().SetString(string(o.Status))
			row.AddCell().SetString(item.ProductID)
			row.AddCell().SetString(name)
			row.AddCell().SetInt(item.Quantity)
			row.AddCell().SetFloat(item.Price)
			row.AddCell().SetFloat(item.Price * float64(item.Quantity))
			row.AddCell().SetFloat(o.TotalAmount)
		}
	}
	return file.Write(w)
}

func addHeader(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
}
