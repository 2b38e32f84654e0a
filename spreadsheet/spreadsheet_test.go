package spreadsheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/junaidrashid-git/storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestReadProductsRoundTripsWrittenCatalog(t *testing.T) {
	in := []models.Product{
		{ID: "p-1", Name: "Kurta", Description: "Cotton", Price: 1299.5, ImageURL: "https://img/1.jpg", Category: "apparel"},
		{Name: "Mug", Price: 250, Category: "home"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProducts(&buf, in))

	out, skipped, err := ReadProducts(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, out, 2)
	assert.Equal(t, "p-1", out[0].ID)
	assert.Equal(t, "Kurta", out[0].Name)
	assert.Equal(t, 1299.5, out[0].Price)
	assert.Equal(t, "apparel", out[0].Category)
	assert.Empty(t, out[1].ID)
	assert.Equal(t, 250.0, out[1].Price)
}

func TestReadProductsSkipsInvalidRows(t *testing.T) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	require.NoError(t, err)
	for _, cells := range [][]string{
		ProductColumns,
		{"", "", "no name", "10", "", ""},
		{"", "Lamp", "bad price", "ten", "", ""},
		{"", "Short"},
		{"", "Chair", "", "4500", "", "home"},
	} {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	out, skipped, err := ReadProducts(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, out, 1)
	assert.Equal(t, "Chair", out[0].Name)
}

func TestReadProductsRejectsHeaderOnlySheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProducts(&buf, nil))

	_, _, err := ReadProducts(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestExportOrdersWritesOneRowPerItem(t *testing.T) {
	placed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	orders := []models.Order{{
		ID:          "o-1",
		TotalAmount: 250,
		Status:      models.OrderStatusPending,
		CreatedAt:   placed,
		Items: []models.OrderItem{
			{ProductID: "a", Quantity: 2, Price: 100, Product: &models.Product{Name: "Shirt"}},
			{ProductID: "b", Quantity: 1, Price: 50},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, ExportOrders(&buf, orders))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet := file.Sheets[0]
	assert.Equal(t, "Orders", sheet.Name)
	require.Equal(t, 3, sheet.MaxRow)

	first := sheet.Rows[1].Cells
	assert.Equal(t, "o-1", first[0].String())
	assert.Equal(t, "2026-03-14 09:30:00", first[1].String())
	assert.Equal(t, "pending", first[2].String())
	assert.Equal(t, "Shirt", first[4].String())
	assert.Equal(t, "", sheet.Rows[2].Cells[4].String())
}
