package main

import (
	"fmt"
	"io"
	"strings"

	chem "github.com/JMiguelRamirez/Polarcontacts"
	"github.com/JMiguelRamirez/Polarcontacts/chemgraph"
	"github.com/JMiguelRamirez/Polarcontacts/contacts"
	"github.com/JMiguelRamirez/Polarcontacts/energy"
)

func printContacts(out io.Writer, hblist []*contacts.Contact) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Polar contacts")
	fmt.Fprintf(out, "%-13s %-13s %-6s\n", "Atom1", "Atom2", "Dist (A)")
	for _, c := range hblist {
		fmt.Fprintln(out, c)
	}
}

func printSummary(out io.Writer, s contacts.Summary) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Contact distances")
	fmt.Fprint(out, s)
}

func printInteractions(out io.Writer, title string, ints []*energy.Interaction) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, title)
	fmt.Fprintf(out, "%-10s %-10s %10s %10s %10s\n", "Res1", "Res2", "Elec", "VdW", "Total")
	for _, in := range ints {
		fmt.Fprintln(out, in)
	}
}

func printClasses(out io.Writer, classes map[contacts.Class][]*contacts.Contact) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Contacts by class")
	for _, cl := range contacts.Classes {
		for _, c := range classes[cl] {
			r1, r2 := c.At1.Residue(), c.At2.Residue()
			fmt.Fprintf(out, "%-4s %5d %-4s %5d %-9s %-4s %-4s %6.3f\n", r1.Name, r1.ID, r2.Name, r2.ID, cl, c.At1.Name, c.At2.Name, c.Dist)
		}
	}
}

func residueList(rs []*chem.Residue) string {
	s := make([]string, 0, len(rs))
	for _, r := range rs {
		s = append(s, r.String())
	}
	return strings.Join(s, ", ")
}

func printMembership(out io.Writer, mainres, sideres []*chem.Residue) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-8s: %s\n", "to_main", residueList(mainres))
	fmt.Fprintf(out, "%-8s: %s\n", "to_side", residueList(sideres))
}

func printClusters(out io.Writer, N *chemgraph.Network, clusters [][]*chem.Residue) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Contact clusters (residues, contacts)")
	for i, c := range clusters {
		fmt.Fprintf(out, "%3d %3d %3d: %s\n", i+1, len(c), N.ClusterContacts(c), residueList(c))
	}
}
