// README: CSV export of orders and statistics for after-event accounting.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"bestellapp/internal/modules/order"
	"bestellapp/internal/modules/stats"
)

func WriteOrdersCSV(w io.Writer, orders []order.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "table", "kind", "created_at", "total", "claimed_by", "hidden_from_bar", "lines"}); err != nil {
		return err
	}
	for _, o := range orders {
		claimed := ""
		if o.ClaimedBy != nil {
			claimed = *o.ClaimedBy
		}
		row := []string{
			string(o.ID),
			strconv.Itoa(o.TableNumber),
			string(o.Kind),
			o.CreatedAt.Format(time.RFC3339),
			cents(o.Total.Amount),
			claimed,
			strconv.FormatBool(o.HiddenFromBar),
			joinLines(o.Lines),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteStatisticsCSV(w io.Writer, snap stats.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"scope", "item", "quantity", "amount"}); err != nil {
		return err
	}
	if err := writeAggregate(cw, "global", snap.Global); err != nil {
		return err
	}
	tables := make([]string, 0, len(snap.Tables))
	for t := range snap.Tables {
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool {
		a, _ := strconv.Atoi(tables[i])
		b, _ := strconv.Atoi(tables[j])
		return a < b
	})
	for _, t := range tables {
		if err := writeAggregate(cw, "table "+t, snap.Tables[t]); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeAggregate(cw *csv.Writer, scope string, a stats.Aggregate) error {
	if err := cw.Write([]string{scope, "(orders)", strconv.Itoa(a.TotalOrders), cents(a.TotalAmount)}); err != nil {
		return err
	}
	items := make([]string, 0, len(a.ItemTotals))
	for name := range a.ItemTotals {
		items = append(items, name)
	}
	sort.Strings(items)
	for _, name := range items {
		t := a.ItemTotals[name]
		if err := cw.Write([]string{scope, name, strconv.Itoa(t.Quantity), cents(t.Amount)}); err != nil {
			return err
		}
	}
	return nil
}

func joinLines(lines []order.Line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%dx %s @%s", l.Quantity, l.Name, cents(l.UnitPrice.Amount)))
	}
	return strings.Join(parts, "; ")
}

func cents(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
