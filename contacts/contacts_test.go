package contacts

import (
	"fmt"
	"math"
	"strings"
	"testing"

	chem "github.com/JMiguelRamirez/Polarcontacts"
)

func readSmall(Te *testing.T) *chem.Molecule {
	Te.Helper()
	mol, err := chem.PDBFileRead("../test/small.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	return mol
}

type pair struct {
	id1, id2 int
	dist     float64
	class    string
}

func checkContacts(Te *testing.T, got []*Contact, want []pair) {
	Te.Helper()
	if len(got) != len(want) {
		for _, c := range got {
			fmt.Println(c)
		}
		Te.Fatalf("expected %d contacts, got %d", len(want), len(got))
	}
	for i, w := range want {
		c := got[i]
		if c.At1.ID != w.id1 || c.At2.ID != w.id2 {
			Te.Errorf("contact %d: expected atoms %d-%d, got %d-%d", i, w.id1, w.id2, c.At1.ID, c.At2.ID)
		}
		if math.Abs(c.Dist-w.dist) > 1e-3 {
			Te.Errorf("contact %d: expected distance %.3f, got %.3f", i, w.dist, c.Dist)
		}
		if c.Class().String() != w.class {
			Te.Errorf("contact %d: expected class %s, got %s", i, w.class, c.Class())
		}
	}
}

func TestFind(Te *testing.T) {
	mol := readSmall(Te)
	c, err := Find(mol, 0, DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	checkContacts(Te, c, []pair{
		{1, 9, 3.176, "main-main"},
		{3, 6, 2.800, "side-main"},
		{3, 7, 3.000, "side-side"},
		{3, 9, 2.542, "side-main"},
		{6, 9, 2.542, "main-main"},
	})
	for _, v := range c {
		r1, r2 := v.At1.Residue(), v.At2.Residue()
		if r1 == r2 || r1.Adjacent(r2) || v.Dist < COVLNK || v.Dist > HBLNK {
			Te.Errorf("contact %v should have been filtered", v)
		}
		if v.At1.ID >= v.At2.ID {
			Te.Errorf("contact %v not ordered by serial number", v)
		}
		if mol.Atom(v.I) != v.At1 || mol.Atom(v.J) != v.At2 {
			Te.Errorf("contact %v has wrong indexes", v)
		}
	}
	if s := c[1].String(); !strings.HasPrefix(s, "SER 1OG") || !strings.HasSuffix(s, " 2.800") {
		Te.Errorf("wrong contact string %q", s)
	}
}

func TestFindNoWaters(Te *testing.T) {
	mol := readSmall(Te)
	o := DefaultOptions()
	o.NoWaters = true
	c, err := Find(mol, 0, o)
	if err != nil {
		Te.Fatal(err)
	}
	checkContacts(Te, c, []pair{
		{3, 6, 2.800, "side-main"},
		{3, 7, 3.000, "side-side"},
	})
}

func readString(Te *testing.T, pdb string) *chem.Molecule {
	Te.Helper()
	mol, err := chem.PDBRead(strings.NewReader(pdb))
	if err != nil {
		Te.Fatal(err)
	}
	return mol
}

func TestFindChains(Te *testing.T) {
	mol := readString(Te, `ATOM      1  OG  SER A   1       0.000   0.000   0.000  1.00 10.00           O
ATOM      2  OG  SER B   2       3.000   0.000   0.000  1.00 10.00           O
END
`)
	c, err := Find(mol, 0, DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	if len(c) != 0 {
		Te.Errorf("residues 1 and 2 are adjacent even in different chains, got %v", c)
	}
	o := DefaultOptions()
	o.ChainAdjacency = true
	c, err = Find(mol, 0, o)
	if err != nil {
		Te.Fatal(err)
	}
	checkContacts(Te, c, []pair{{1, 2, 3.000, "side-side"}})
}

func TestFindBackOnly(Te *testing.T) {
	mol := readSmall(Te)
	o := DefaultOptions()
	o.BackOnly = true
	back, err := Find(mol, 0, o)
	if err != nil {
		Te.Fatal(err)
	}
	checkContacts(Te, back, []pair{
		{1, 9, 3.176, "main-main"},
		{6, 9, 2.542, "main-main"},
	})
	all, _ := Find(mol, 0, DefaultOptions())
	//backonly can only remove contacts
	for _, b := range back {
		found := false
		for _, a := range all {
			if a.At1 == b.At1 && a.At2 == b.At2 {
				found = true
			}
		}
		if !found {
			Te.Errorf("backbone contact %v not in the full set", b)
		}
	}
	if len(SelectPolar(mol, true)) > len(SelectPolar(mol, false)) {
		Te.Errorf("backbone selection larger than the full one")
	}
}

func TestFindCutoffs(Te *testing.T) {
	mol := readSmall(Te)
	o := DefaultOptions()
	o.Cutoff = 3.6
	c, err := Find(mol, 0, o)
	if err != nil {
		Te.Fatal(err)
	}
	//OG SER 1 - SG CYS 9 at 3.551 comes in.
	if len(c) != 6 {
		Te.Errorf("expected 6 contacts with a 3.6 A cutoff, got %d", len(c))
	}
	o = DefaultOptions()
	o.Covalent = 1.8
	c, _ = Find(mol, 0, o)
	//OD1 ASN 5 - SG CYS 9 at 1.9 A is no longer taken as covalent.
	if len(c) != 6 || c[5].At1.ID != 7 || c[5].At2.ID != 8 {
		Te.Errorf("expected the OD1-SG contact with a 1.8 A covalent cutoff, got %v", c)
	}
	o.Covalent = 4
	if _, err := Find(mol, 0, o); err == nil {
		Te.Errorf("expected an error for a covalent cutoff above the contact cutoff")
	}
	if _, err := Find(mol, 3, DefaultOptions()); err == nil {
		Te.Errorf("expected an error for a frame out of range")
	}
}

func TestNeighbors(Te *testing.T) {
	mol := readSmall(Te)
	all := make([]int, mol.Len())
	for i := range all {
		all[i] = i
	}
	n := Neighbors(mol.Coords[0], all, 3.5)
	//brute force
	count := 0
	for i := 0; i < mol.Len(); i++ {
		for j := i + 1; j < mol.Len(); j++ {
			if mol.Coords[0].Dist(i, j) <= 3.5 {
				count++
			}
		}
	}
	if len(n) != count {
		Te.Errorf("k-d tree found %d pairs, brute force %d", len(n), count)
	}
	for _, v := range n {
		if v.I >= v.J || math.Abs(v.Dist-mol.Coords[0].Dist(v.I, v.J)) > 1e-9 {
			Te.Errorf("wrong neighbor %+v", v)
		}
	}
	if Neighbors(mol.Coords[0], all[:1], 3.5) != nil {
		Te.Errorf("a single atom has no neighbors")
	}
}

func TestResiduePairs(Te *testing.T) {
	mol := readSmall(Te)
	c, _ := Find(mol, 0, DefaultOptions())
	pairs := ResiduePairs(c)
	want := []string{"SER 1 - HOH 101", "SER 1 - ASN 5", "ASN 5 - HOH 101"}
	if len(pairs) != len(want) {
		Te.Fatalf("expected %d residue pairs, got %d", len(want), len(pairs))
	}
	total := 0
	for i, p := range pairs {
		if p.String() != want[i] {
			Te.Errorf("pair %d: expected %s, got %s", i, want[i], p)
		}
		if len(p.Contacts) == 0 {
			Te.Errorf("pair %s has no contacts", p)
		}
		total += len(p.Contacts)
	}
	if total != len(c) {
		Te.Errorf("%d contacts in pairs, %d found", total, len(c))
	}
	if len(pairs[0].Contacts) != 2 || len(pairs[1].Contacts) != 2 {
		Te.Errorf("wrong number of contacts per pair")
	}
}

func TestClassify(Te *testing.T) {
	mol := readSmall(Te)
	c, _ := Find(mol, 0, DefaultOptions())
	cl := Classify(c)
	counts := map[Class]int{MainMain: 2, MainSide: 0, SideMain: 2, SideSide: 1}
	for k, v := range counts {
		if len(cl[k]) != v {
			Te.Errorf("%s: expected %d contacts, got %d", k, v, len(cl[k]))
		}
	}
	if ClassOf("O", "OG") != MainSide || ClassOf("NZ", "SG") != SideSide {
		Te.Errorf("wrong classes")
	}
	main, side := Membership(c)
	names := func(r []*chem.Residue) string {
		s := make([]string, 0, len(r))
		for _, v := range r {
			s = append(s, v.String())
		}
		return strings.Join(s, ",")
	}
	if m := names(main); m != "SER 1,HOH 101,ASN 5" {
		Te.Errorf("wrong main chain residues %s", m)
	}
	if s := names(side); s != "ASN 5,SER 1,HOH 101" {
		Te.Errorf("wrong side chain residues %s", s)
	}
}

func TestMembershipPartner(Te *testing.T) {
	mol := readString(Te, `ATOM      1  O   GLY A   1       0.000   0.000   0.000  1.00 10.00           O
ATOM      2  OG  SER A   9       3.000   0.000   0.000  1.00 10.00           O
END
`)
	c, err := Find(mol, 0, DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	checkContacts(Te, c, []pair{{1, 2, 3.000, "main-side"}})
	main, side := Membership(c)
	if len(main) != 1 || main[0].Name != "SER" || len(side) != 1 || side[0].Name != "GLY" {
		Te.Errorf("SER 9 touches a main chain atom and GLY 1 a side chain one, got main %v side %v", main, side)
	}
}

func TestSummarize(Te *testing.T) {
	mol := readSmall(Te)
	c, _ := Find(mol, 0, DefaultOptions())
	s := Summarize(c, COVLNK, HBLNK, 3)
	if s.N != 5 {
		Te.Errorf("expected 5 contacts, got %d", s.N)
	}
	mean := (3.176 + 2.8 + 3.0 + 2.542 + 2.542) / 5
	if math.Abs(s.Mean-mean) > 1e-3 {
		Te.Errorf("expected mean %.3f, got %.3f", mean, s.Mean)
	}
	if math.Abs(s.Min-2.542) > 1e-3 || math.Abs(s.Max-3.176) > 1e-3 {
		Te.Errorf("wrong min/max %f %f", s.Min, s.Max)
	}
	//bins: [2.0,2.5) [2.5,3.0) [3.0,3.5]
	want := []float64{0, 3, 2}
	for i, w := range want {
		if s.Counts[i] != w {
			Te.Errorf("bin %d: expected %v, got %v", i, w, s.Counts[i])
		}
	}
	fmt.Print(s)
	empty := Summarize(nil, COVLNK, HBLNK, 3)
	if empty.N != 0 || !math.IsNaN(empty.Mean) {
		Te.Errorf("wrong summary for no contacts %+v", empty)
	}
}
