package chemjson

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/JMiguelRamirez/Polarcontacts"
	"github.com/JMiguelRamirez/Polarcontacts/chemgraph"
	"github.com/JMiguelRamirez/Polarcontacts/contacts"
)

func smallReport(Te *testing.T) (*Report, *chem.Molecule, []*contacts.Contact) {
	Te.Helper()
	mol, err := chem.PDBFileRead("../test/small.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	hblist, err := contacts.Find(mol, 0, contacts.DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	R := NewReport("small.pdb", hblist, mol.Coords[0])
	R.SetSummary(contacts.Summarize(hblist, contacts.COVLNK, contacts.HBLNK, 3))
	R.SetMembership(contacts.Membership(hblist))
	R.SetClusters(chemgraph.NewNetwork(contacts.ResiduePairs(hblist)).Clusters())
	return R, mol, hblist
}

func TestReport(Te *testing.T) {
	R, mol, hblist := smallReport(Te)
	var b bytes.Buffer
	if err := R.Send(&b); err != nil {
		Te.Fatal(err)
	}
	if strings.Contains(b.String(), "Interactions") || strings.Contains(b.String(), "Surface") {
		Te.Errorf("energies were not computed, they should not be in the report")
	}
	R2, err := ReadReport(&b)
	if err != nil {
		Te.Fatal(err)
	}
	if R2.Structure != "small.pdb" || len(R2.Contacts) != len(hblist) {
		Te.Fatalf("expected %d contacts for small.pdb, got %d for %s", len(hblist), len(R2.Contacts), R2.Structure)
	}
	for i, c := range R2.Contacts {
		h := hblist[i]
		if c.Atom1.A.ID != h.At1.ID || c.Atom2.A.ID != h.At2.ID || c.Class != h.Class().String() {
			Te.Errorf("contact %d: got %d-%d %s, expected %v", i, c.Atom1.A.ID, c.Atom2.A.ID, c.Class, h)
		}
		want := mol.Coords[0].Vec(h.I)
		if len(c.Atom1.Coords) != 3 || c.Atom1.Coords[0] != want[0] || c.Atom1.Coords[2] != want[2] {
			Te.Errorf("contact %d: wrong coordinates %v, expected %v", i, c.Atom1.Coords, want)
		}
	}
	if R2.Contacts[1].Class != "side-main" || R2.Contacts[1].Atom1.A.Name != "OG" {
		Te.Errorf("wrong second contact %+v", R2.Contacts[1])
	}
	if R2.N != 5 || R2.Mean == nil || R2.Std == nil || math.Abs(*R2.Mean-2.812) > 1e-3 {
		Te.Errorf("wrong distance statistics %d %v %v", R2.N, R2.Mean, R2.Std)
	}
	if len(R2.Histogram) != 3 || R2.Histogram[1] != 3 || R2.Histogram[2] != 2 {
		Te.Errorf("wrong histogram %v", R2.Histogram)
	}
	if len(R2.ToMain) != 3 || len(R2.ToSide) != 3 || R2.ToSide[0] != (Residue{"ASN", 5, "A"}) {
		Te.Errorf("wrong membership %v %v", R2.ToMain, R2.ToSide)
	}
	if len(R2.Clusters) != 1 || len(R2.Clusters[0]) != 3 {
		Te.Errorf("expected one cluster of 3 residues, got %v", R2.Clusters)
	}
}

func TestWriteFile(Te *testing.T) {
	R, _, _ := smallReport(Te)
	name := filepath.Join(Te.TempDir(), "report.json")
	if err := R.WriteFile(name); err != nil {
		Te.Fatal(err)
	}
	f, err := os.Open(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer f.Close()
	if _, err := ReadReport(f); err != nil {
		Te.Error(err)
	}
	err = R.WriteFile(filepath.Join(Te.TempDir(), "nothere", "report.json"))
	var jerr *Error
	if !errors.As(err, &jerr) || !jerr.InPostProcess {
		Te.Errorf("expected a postprocess error, got %v", err)
	}
	if _, err := ReadReport(strings.NewReader("{")); err == nil {
		Te.Errorf("expected an error for a truncated report")
	}
}

func TestError(Te *testing.T) {
	err := NewError("input", "ReadReport", errors.New("boom"))
	err.Decorate("main")
	if err.Error() != "main: ReadReport: boom" {
		Te.Errorf("wrong message %q", err.Error())
	}
	m := string(err.Marshal())
	if !strings.Contains(m, `"InInput":true`) || !strings.Contains(m, `"Message":"boom"`) {
		Te.Errorf("wrong serialized error %s", m)
	}
}

func TestReportFewContacts(Te *testing.T) {
	mol, err := chem.PDBFileRead("../test/small.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	all, err := contacts.Find(mol, 0, contacts.DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	for n := 0; n < 3; n++ {
		hblist := all[:n]
		R := NewReport("small.pdb", hblist, mol.Coords[0])
		R.SetSummary(contacts.Summarize(hblist, contacts.COVLNK, contacts.HBLNK, 3))
		R.SetMembership(contacts.Membership(hblist))
		R.SetClusters(chemgraph.NewNetwork(contacts.ResiduePairs(hblist)).Clusters())
		name := filepath.Join(Te.TempDir(), "report.json")
		if err := R.WriteFile(name); err != nil {
			Te.Fatalf("%d contacts: %v", n, err)
		}
		f, err := os.Open(name)
		if err != nil {
			Te.Fatal(err)
		}
		R2, err := ReadReport(f)
		f.Close()
		if err != nil {
			Te.Fatal(err)
		}
		if R2.N != n || len(R2.Contacts) != n {
			Te.Errorf("expected %d contacts, got %d", n, R2.N)
		}
		if (R2.Mean != nil) != (n > 0) || (R2.Std != nil) != (n > 1) {
			Te.Errorf("%d contacts: mean %v std %v", n, R2.Mean, R2.Std)
		}
	}
}
