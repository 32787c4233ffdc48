package export

import (
	"fmt"
	"io"
	"strings"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"

	"github.com/go-pdf/fpdf"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Pedido", 40},
	{"Celda", 30},
	{"Fecha", 45},
	{"Estado", 25},
	{"Accesorios", 130},
}

// WritePDF renders the listing as an order-level summary table in
// landscape A4, with each order's accessories folded into one cell.
func WritePDF(w io.Writer, views []queries.OrderView) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Listado de pedidos", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, view := range views {
		status := "abierto"
		if view.IsClosed {
			status = "cerrado"
		}

		cells := []string{
			view.OrderNumber,
			view.Cell,
			view.OrderDate.Format(order.DateLayout),
			status,
			summarizeAccessories(view.Accessories),
		}
		for i, value := range cells {
			pdf.CellFormat(pdfColumns[i].width, 7, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

func summarizeAccessories(accessories []queries.AccessoryView) string {
	parts := make([]string, 0, len(accessories))
	for _, accessory := range accessories {
		parts = append(parts, fmt.Sprintf("%s x%d", accessory.AccessoryType, accessory.Quantity))
	}
	return strings.Join(parts, ", ")
}
