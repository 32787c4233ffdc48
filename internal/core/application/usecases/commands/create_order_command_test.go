package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCell(t *testing.T) kernel.Cell {
	t.Helper()
	cell, err := kernel.DefaultCellSet().Cell("celda 10")
	require.NoError(t, err)
	return cell
}

func TestNewCreateOrderCommand(t *testing.T) {
	lines := []commands.LineItem{{AccessoryType: "bolt", Quantity: 2}}

	t.Run("valid_command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand("X1", true, testCell(t), lines)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "X1", cmd.OrderNumber())
		assert.True(t, cmd.ExtraAccessory())
		assert.Equal(t, "celda 10", cmd.Cell().Label())
		assert.Equal(t, lines, cmd.Lines())
	})

	t.Run("empty_order_number", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand("", false, testCell(t), lines)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unconstructed_cell", func(t *testing.T) {
		var cell kernel.Cell
		_, err := commands.NewCreateOrderCommand("X1", false, cell, lines)
		require.Error(t, err)
	})

	t.Run("no_lines", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand("X1", false, testCell(t), nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("line_with_empty_type", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand("X1", false, testCell(t),
			[]commands.LineItem{{AccessoryType: "", Quantity: 1}})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("line_with_zero_quantity", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand("X1", false, testCell(t),
			[]commands.LineItem{{AccessoryType: "bolt", Quantity: 0}})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("lines_are_copied", func(t *testing.T) {
		input := []commands.LineItem{{AccessoryType: "bolt", Quantity: 2}}
		cmd, err := commands.NewCreateOrderCommand("X1", false, testCell(t), input)
		require.NoError(t, err)

		input[0].Quantity = 99

		assert.Equal(t, 2, cmd.Lines()[0].Quantity)
	})

	t.Run("zero_value_command_fails_validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
