// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"bprna-core/structure"
	"bprna/pkg/api"
)

func spansCSV(spans []api.SpanV1) string {
	ss := make([]string, len(spans))
	for i, sp := range spans {
		ss[i] = strconv.Itoa(sp.Start) + ".." + strconv.Itoa(sp.Stop)
	}
	return strings.Join(ss, ";")
}

func neighborsCSV(nb []api.NeighborsV1) string {
	ss := make([]string, len(nb))
	for i, n := range nb {
		ss[i] = n.FivePrime + "," + n.ThreePrime
	}
	return strings.Join(ss, ";")
}

func extraField(v api.ComponentV1) string {
	var parts []string
	if v.Pair != "" {
		parts = append(parts, "pair="+v.Pair)
	}
	if v.Parent != "" {
		parts = append(parts, "parent="+v.Parent)
	}
	if v.PK != "" {
		parts = append(parts, "pk="+v.PK)
	}
	if len(v.Subunits) > 0 {
		parts = append(parts, "subunits="+strings.Join(v.Subunits, ","))
	}
	return strings.Join(parts, " ")
}

// FormatComponentRowTSV returns one component row (no trailing newline).
// Multi-valued columns are ';'-separated.
func FormatComponentRowTSV(v api.ComponentV1) string {
	return strings.Join([]string{
		v.Label,
		v.Kind,
		spansCSV(v.Spans),
		strings.Join(v.Sequences, ";"),
		neighborsCSV(v.Neighbors),
		extraField(v),
	}, "\t")
}

// FormatEnergy renders kcal/mol with two decimals.
func FormatEnergy(e float64) string { return strconv.FormatFloat(e, 'f', 2, 64) }

// FormatEnergyRowTSV returns one energy row (no trailing newline).
func FormatEnergyRowTSV(v api.EnergyV1) string {
	e := ""
	if v.Energy != nil {
		e = FormatEnergy(*v.Energy)
	}
	return fmt.Sprintf("%s\t%s\t%s\t%t\t%s", v.Label, v.Kind, e, v.Canonical, v.Error)
}

func writeHeader(w io.Writer, header bool, h string) error {
	if !header {
		return nil
	}
	_, err := fmt.Fprintln(w, h)
	return err
}

func WriteComponentsText(w io.Writer, list []api.ComponentV1, header bool) error {
	if err := writeHeader(w, header, ComponentTSVHeader); err != nil {
		return err
	}
	for _, v := range list {
		if _, err := fmt.Fprintln(w, FormatComponentRowTSV(v)); err != nil {
			return err
		}
	}
	return nil
}

func WriteEnergyText(w io.Writer, list []api.EnergyV1, header bool) error {
	if err := writeHeader(w, header, EnergyTSVHeader); err != nil {
		return err
	}
	for _, v := range list {
		if _, err := fmt.Fprintln(w, FormatEnergyRowTSV(v)); err != nil {
			return err
		}
	}
	return nil
}

// StreamEnergyText writes rows as they arrive on in.
func StreamEnergyText(w io.Writer, in <-chan api.EnergyV1, header bool) error {
	if err := writeHeader(w, header, EnergyTSVHeader); err != nil {
		return err
	}
	for v := range in {
		if _, err := fmt.Fprintln(w, FormatEnergyRowTSV(v)); err != nil {
			return err
		}
	}
	return nil
}

// WriteNeighborsText writes one row per neighbor pair. Two-span components
// label their rows outer and inner.
func WriteNeighborsText(w io.Writer, label string, nb []api.NeighborsV1, header bool) error {
	if err := writeHeader(w, header, NeighborTSVHeader); err != nil {
		return err
	}
	for i, n := range nb {
		side := "-"
		if len(nb) == 2 {
			side = [2]string{"outer", "inner"}[i]
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", label, side, n.FivePrime, n.ThreePrime); err != nil {
			return err
		}
	}
	return nil
}

var summaryKinds = []structure.Kind{
	structure.KindStem, structure.KindHairpin, structure.KindBulge, structure.KindInternalLoop,
	structure.KindMultiLoop, structure.KindExternalLoop, structure.KindEnd, structure.KindNCBP,
}

// WriteSummaryText prints "key: value" lines.
func WriteSummaryText(w io.Writer, v api.SummaryV1) error {
	var b strings.Builder
	if v.Source != "" {
		fmt.Fprintf(&b, "source: %s\n", v.Source)
	}
	fmt.Fprintf(&b, "name: %s\nlength: %d\npage: %d\n", v.Name, v.Length, v.PageNumber)
	for _, k := range summaryKinds {
		fmt.Fprintf(&b, "%s: %d\n", k, v.Counts[k.String()])
	}
	fmt.Fprintf(&b, "params: %s\nevaluated: %d\nfailed: %d\ntotal_energy: %s\n",
		v.Params, v.Evaluated, v.Failed, FormatEnergy(v.TotalEnergy))
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteStructureText prints the descriptors as '#' lines followed by the
// component table.
func WriteStructureText(w io.Writer, v api.StructureV1, header bool) error {
	var b strings.Builder
	fmt.Fprintf(&b, "#Name: %s\n#Length: %d\n#PageNumber: %d\n", v.Name, v.Length, v.PageNumber)
	for _, line := range []string{v.Sequence, v.DotBracket, v.StructureArray, v.Varna} {
		b.WriteString("# ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	return WriteComponentsText(w, v.Components, header)
}
