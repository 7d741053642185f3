package energy

import (
	"math"
	"testing"

	chem "github.com/JMiguelRamirez/Polarcontacts"
	"github.com/JMiguelRamirez/Polarcontacts/contacts"
	"github.com/JMiguelRamirez/Polarcontacts/top"
)

const tol = 1e-5

func TestTerms(Te *testing.T) {
	if e := Coulomb(-0.5, 0.5, 1, 2); math.Abs(e+41.52) > 1e-9 {
		Te.Errorf("expected -41.52 kcal/mol, got %f", e)
	}
	if e := Coulomb(-0.5, 0.5, 2, 2); math.Abs(e+20.76) > 1e-9 {
		Te.Errorf("doubling the dielectric should halve the energy, got %f", e)
	}
	if e := LennardJones(0.2, 3.0, 3.0); math.Abs(e) > 1e-12 {
		Te.Errorf("LJ energy at sigma should be zero, got %f", e)
	}
	rmin := math.Pow(2, 1.0/6.0) * 3.0
	if e := LennardJones(0.2, 3.0, rmin); math.Abs(e+0.2) > 1e-12 {
		Te.Errorf("LJ energy at the minimum should be -eps, got %f", e)
	}
}

type setup struct {
	mol   *chem.Molecule
	pairs []*contacts.ResiduePair
	ff    *top.FF
}

func load(Te *testing.T) setup {
	Te.Helper()
	mol, err := chem.PDBFileRead("../test/small.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	c, err := contacts.Find(mol, 0, contacts.DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	ff, err := top.FFFileRead("../test/vdwprm.txt", "../test/aaLib.txt")
	if err != nil {
		Te.Fatal(err)
	}
	return setup{mol: mol, pairs: contacts.ResiduePairs(c), ff: ff}
}

func TestPairs(Te *testing.T) {
	s := load(Te)
	C, err := NewCalculator(s.ff, 1.0, s.mol.Coords[0])
	if err != nil {
		Te.Fatal(err)
	}
	ints := C.Pairs(s.pairs)
	want := [][2]float64{
		{107.403789, 4.247828}, //SER 1 - HOH 101
		{105.196862, 0.796700}, //SER 1 - ASN 5
		{82.033424, 7.603166},  //ASN 5 - HOH 101
	}
	if len(ints) != len(want) {
		Te.Fatalf("expected %d interactions, got %d", len(want), len(ints))
	}
	for i, w := range want {
		if math.Abs(ints[i].Elec-w[0]) > tol || math.Abs(ints[i].VdW-w[1]) > tol {
			Te.Errorf("%s: expected %.6f %.6f, got %.6f %.6f", ints[i], w[0], w[1], ints[i].Elec, ints[i].VdW)
		}
	}
	if C.Missing() != 0 {
		Te.Errorf("no parameters should be missing, %d are", C.Missing())
	}
	low := Lowest(ints, 2)
	if len(low) != 2 || low[0] != ints[2] || low[1] != ints[1] {
		Te.Errorf("wrong lowest interactions %v", low)
	}
	if ints[0].R1.ID != 1 {
		Te.Errorf("Lowest should not reorder its argument")
	}
	if all := Lowest(ints, 10); len(all) != 3 {
		Te.Errorf("expected all 3 interactions, got %d", len(all))
	}
}

func TestSymmetryAndDielectric(Te *testing.T) {
	s := load(Te)
	C1, _ := NewCalculator(s.ff, 1.0, s.mol.Coords[0])
	C2, _ := NewCalculator(s.ff, 2.0, s.mol.Coords[0])
	for _, p := range s.pairs {
		a := C1.Residues(p.R1, p.R2)
		b := C1.Residues(p.R2, p.R1)
		if math.Abs(a.Elec-b.Elec) > 1e-9 || math.Abs(a.VdW-b.VdW) > 1e-9 {
			Te.Errorf("%s: energy not symmetric", p)
		}
		h := C2.Residues(p.R1, p.R2)
		if math.Abs(h.Elec-a.Elec/2) > 1e-9 || math.Abs(h.VdW-a.VdW) > 1e-9 {
			Te.Errorf("%s: doubling the dielectric should only halve the electrostatics", p)
		}
	}
	if _, err := NewCalculator(s.ff, 0, s.mol.Coords[0]); err == nil {
		Te.Errorf("expected an error for a zero dielectric")
	}
}

func TestMissingParams(Te *testing.T) {
	s := load(Te)
	lib := top.NewResidueLib()
	lib.Add(&top.AtomParams{Residue: "SER", Atom: "OG", Type: "O", Charge: -0.66})
	lib.Add(&top.AtomParams{Residue: "ASN", Atom: "OD1", Type: "O", Charge: -0.55})
	C, err := NewCalculator(top.NewFF(s.ff.VdW, lib), 1.0, s.mol.Coords[0])
	if err != nil {
		Te.Fatal(err)
	}
	in := C.Residues(s.mol.Residue(0), s.mol.Residue(2))
	//only OG-OD1, at 3 A
	if e := Coulomb(-0.66, -0.55, 1, 3); math.Abs(in.Elec-e) > 1e-9 {
		Te.Errorf("expected %f, got %f", e, in.Elec)
	}
	//SER N, SER CA, ASN N
	if C.Missing() != 3 {
		Te.Errorf("expected 3 missing keys, got %d", C.Missing())
	}
	C.Residues(s.mol.Residue(0), s.mol.Residue(2))
	if C.Missing() != 3 {
		Te.Errorf("missing keys should be counted once, got %d", C.Missing())
	}
}

func TestSurface(Te *testing.T) {
	s := load(Te)
	C, _ := NewCalculator(s.ff, 1.0, s.mol.Coords[0])
	if got := C.Surface(s.pairs, DefaultSurface(), SurfaceFactor); len(got) != 0 {
		Te.Errorf("no residue of the test structure is in the default surface, got %v", got)
	}
	surf, err := SurfaceFileRead("../test/surface.toml")
	if err != nil {
		Te.Fatal(err)
	}
	if len(surf) != 2 || surf[1].Name != "ASN" || surf[1].ID != 5 {
		Te.Fatalf("surface file read wrong: %v", surf)
	}
	got := C.Surface(s.pairs, surf, SurfaceFactor)
	if len(got) != 1 || got[0].R1.ID != 1 || got[0].R2.ID != 5 {
		Te.Fatalf("expected only SER 1 - ASN 5, got %v", got)
	}
	if math.Abs(got[0].Elec-25.336431) > tol || got[0].VdW != 0 {
		Te.Errorf("expected 25.336431, got %f", got[0].Elec)
	}
	if _, err := SurfaceFileRead("../test/vdwprm.txt"); err == nil {
		Te.Errorf("expected an error reading a non-TOML file")
	}
}
