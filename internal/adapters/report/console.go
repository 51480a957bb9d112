package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/structscan/internal/domain"
)

// Console implementa ports.Reporter imprimiendo los eventos de la pasada.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un reporter que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un reporter para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Report imprime el resumen de la pasada y, en modo tabla, el detalle de cada
// evento.
func (c *Console) Report(_ context.Context, pass domain.Pass) error {
	if len(pass.Breaks) == 0 && len(pass.Blocks) == 0 {
		fmt.Fprintf(c.out, "[%s] %s: no structure events detected\n",
			pass.DetectedAt.Format("15:04:05"), pass.Symbol)
		return nil
	}

	c.printSummary(pass)
	if c.table {
		c.printBreaks(pass.Breaks)
		c.printBlocks(pass.Blocks)
	}
	return nil
}

// printSummary imprime lo esencial en una línea.
func (c *Console) printSummary(pass domain.Pass) {
	bos, choch, confirmed := countBreaks(pass.Breaks)
	fmt.Fprintf(c.out, "[%s] %s: %d breaks — BOS:%d CHOCH:%d confirmed:%d | blocks:%d\n",
		pass.DetectedAt.Format("15:04:05"), pass.Symbol,
		len(pass.Breaks), bos, choch, confirmed, len(pass.Blocks))
}

func (c *Console) printBreaks(breaks []domain.StructureBreak) {
	if len(breaks) == 0 {
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Time", "Kind", "Dir", "Level", "Price", "Dist", "ATRx", "Conv", "FalseBk", "OK")

	for i, sb := range breaks {
		conf := sb.Confirmation
		ok := ""
		if conf.IsConfirmed {
			ok = "yes"
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			sb.Timestamp.UTC().Format(time.DateTime),
			string(sb.Kind),
			string(sb.Direction),
			fmt.Sprintf("%.4f", sb.BrokenLevel),
			fmt.Sprintf("%.4f", sb.BreakPrice),
			fmt.Sprintf("%.4f", sb.BreakDistance),
			fmt.Sprintf("%.2f", sb.ATRMultiple),
			fmt.Sprintf("%.2f", conf.ConvictionScore),
			fmt.Sprintf("%.2f", conf.FalseBreakProbability),
			ok,
		)
	}
	table.Render()
}

func (c *Console) printBlocks(blocks []domain.OrderBlock) {
	if len(blocks) == 0 {
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Formed", "Bias", "Lower", "Upper", "Center", "Size", "Vol")

	for i, ob := range blocks {
		table.Append(
			fmt.Sprintf("%d", i+1),
			ob.FormedAt.UTC().Format(time.DateTime),
			string(ob.Bias),
			fmt.Sprintf("%.4f", ob.Lower),
			fmt.Sprintf("%.4f", ob.Upper),
			fmt.Sprintf("%.4f", ob.Center()),
			fmt.Sprintf("%.4f", ob.Size()),
			fmt.Sprintf("%.2f", ob.Volume()),
		)
	}
	table.Render()
}

func countBreaks(breaks []domain.StructureBreak) (bos, choch, confirmed int) {
	for _, sb := range breaks {
		switch sb.Kind {
		case domain.KindFractalBOS, domain.KindStrokeBOS:
			bos++
		case domain.KindFractalCHOCH, domain.KindStrokeCHOCH:
			choch++
		}
		if sb.Confirmation.IsConfirmed {
			confirmed++
		}
	}
	return bos, choch, confirmed
}
