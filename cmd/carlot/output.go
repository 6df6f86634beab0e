package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/rajivgeraev/dealer-api/internal/filterstate"
)

// printSnapshot печатает страницу результатов и ссылку на поиск
func printSnapshot(out io.Writer, snap filterstate.Snapshot, link string) error {
	if snap.SearchErr != "" {
		return errors.New(snap.SearchErr)
	}

	res := snap.Result
	if len(res.Data) == 0 {
		color.New(color.FgYellow).Fprintln(out, "No vehicles match these filters.")
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MAKE\tMODEL\tYEAR\tPRICE\tMILEAGE\tCONDITION\tCITY")
		for _, l := range res.Data {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				l.Make, l.Model, intOrDash(l.Year), formatPrice(l.Price),
				intOrDash(l.Mileage), l.Condition, stringOrDash(l.LocationCity))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	pages := 1
	if res.Limit > 0 {
		pages = max(1, (res.Count+res.Limit-1)/res.Limit)
	}
	fmt.Fprintf(out, "\n%d vehicles, page %d of %d, sorted by %s\n", res.Count, snap.Page, pages, snap.Sort)
	fmt.Fprintln(out, color.CyanString(link))
	return nil
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func stringOrDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

// formatPrice печатает цену в долларах с разделителями разрядов
func formatPrice(v *float64) string {
	if v == nil {
		return "-"
	}
	digits := strconv.FormatInt(int64(*v+0.5), 10)
	var b []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b = append(b, ',')
		}
		b = append(b, d)
	}
	return "$" + string(b)
}

