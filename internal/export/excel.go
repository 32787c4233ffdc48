// Package export renders order listings into downloadable report
// files. The Excel report works accessory by accessory, one row per
// line with the owning order's fields repeated; the PDF report is an
// order-level summary table.
package export

import (
	"fmt"
	"io"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const excelSheet = "Pedidos"

var excelHeader = []string{
	"Pedido",
	"Celda",
	"Fecha",
	"Accesorio",
	"Cantidad",
	"Accesorio extra",
	"Cerrado",
	"Accesorios agregados",
}

// FileName builds a unique download name for a report file.
// The extension includes the dot, e.g. ".xlsx".
func FileName(prefix string, extension string) string {
	return fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), extension)
}

// WriteExcel renders the listing as an xlsx workbook, one row per
// accessory line.
func WriteExcel(w io.Writer, views []queries.OrderView) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(excelSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for col, title := range excelHeader {
		cell, cellErr := excelize.CoordinatesToCellName(col+1, 1)
		if cellErr != nil {
			return cellErr
		}
		if err = f.SetCellValue(excelSheet, cell, title); err != nil {
			return err
		}
	}

	row := 2
	for _, view := range views {
		for _, accessory := range view.Accessories {
			values := []any{
				view.OrderNumber,
				view.Cell,
				view.OrderDate.Format(order.DateLayout),
				accessory.AccessoryType,
				accessory.Quantity,
				yesNo(view.ExtraAccessory),
				yesNo(view.IsClosed),
				yesNo(view.AccessoriesAdded),
			}
			for col, value := range values {
				cell, cellErr := excelize.CoordinatesToCellName(col+1, row)
				if cellErr != nil {
					return cellErr
				}
				if err = f.SetCellValue(excelSheet, cell, value); err != nil {
					return err
				}
			}
			row++
		}
	}

	return f.Write(w)
}

func yesNo(value bool) string {
	if value {
		return "si"
	}
	return "no"
}
