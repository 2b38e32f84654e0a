package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/junaidrashid-git/storefront/models"
	"github.com/junaidrashid-git/storefront/pricing"
	"github.com/junaidrashid-git/storefront/stores"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, headingStyle.Render(title))
	fmt.Fprintln(w, strings.Repeat("─", 50))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printProducts(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}
	heading(w, "Products")
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, pricing.Format(p.Price))
	}
	tw.Flush()
}

func printProduct(w io.Writer, p *models.Product) {
	heading(w, p.Name)
	fmt.Fprintf(w, "Price:    %s\n", pricing.Format(p.Price))
	if p.Category != "" {
		fmt.Fprintf(w, "Category: %s\n", p.Category)
	}
	if p.ImageURL != "" {
		fmt.Fprintf(w, "Image:    %s\n", p.ImageURL)
	}
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
	fmt.Fprintln(w, mutedStyle.Render("id "+p.ID))
}

func printCart(w io.Writer, cart *stores.CartStore) {
	items := cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}
	heading(w, "Cart")
	tw := newTable(w)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tQTY\tPRICE\tLINE")
	for _, item := range items {
		name := "(unavailable)"
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", item.ProductID, name, item.Quantity,
			pricing.Format(item.UnitPrice()), pricing.Format(item.UnitPrice()*float64(item.Quantity)))
	}
	tw.Flush()
	fmt.Fprintf(w, "Subtotal (%d items): %s\n", cart.Count(), pricing.Format(cart.Total()))
	fmt.Fprintln(w, "Shipping: Free")
	fmt.Fprintf(w, "Total: %s\n", pricing.Format(cart.Total()))
}

func printOrders(w io.Writer, orders []models.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders yet.")
		return
	}
	heading(w, "Orders")
	for _, o := range orders {
		fmt.Fprintf(w, "Order %s  %s  %s  %s\n", o.ID, o.CreatedAt.Format("2006-01-02 15:04"),
			o.Status, pricing.Format(o.TotalAmount))
		for _, item := range o.Items {
			name := item.ProductID
			if item.Product != nil {
				name = item.Product.Name
			}
			fmt.Fprintf(w, "  %d × %s @ %s\n", item.Quantity, name, pricing.Format(item.Price))
		}
	}
}
