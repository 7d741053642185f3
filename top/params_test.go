package top

import (
	"bufio"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestVdWFileRead(Te *testing.T) {
	V, err := VdWFileRead("../test/vdwprm.txt")
	if err != nil {
		Te.Fatal(err)
	}
	if V.NTypes() != 5 {
		Te.Errorf("expected 5 atom types, got %d", V.NTypes())
	}
	ow, ok := V.Type("OW")
	if !ok {
		Te.Fatal("atom type OW not read")
	}
	if ow.Eps != 0.1521 || ow.Sig != 3.1507 || ow.Mass != 15.999 {
		Te.Errorf("OW read wrong: %+v", ow)
	}
}

func TestResidueLibFileRead(Te *testing.T) {
	L, err := ResidueLibFileRead("../test/aaLib.txt")
	if err != nil {
		Te.Fatal(err)
	}
	if L.NAtoms() != 9 {
		Te.Errorf("expected 9 entries, got %d", L.NAtoms())
	}
	p, ok := L.Params("HOH", "O")
	if !ok {
		Te.Fatal("HOH:O not found")
	}
	if p.Type != "OW" || p.Charge != -0.834 || p.Key() != "HOH:O" {
		Te.Errorf("HOH:O read wrong: %+v", p)
	}
	if _, ok := L.Params("HOH", "H1"); ok {
		Te.Errorf("HOH:H1 should not be in the library")
	}
}

func TestParseErrors(Te *testing.T) {
	_, err := ReadVdW(bufio.NewReader(strings.NewReader("# comment\nC 0.1 3.4\nO 0.2 x\n")))
	if err == nil {
		Te.Fatal("expected an error for a bad sigma")
	}
	if !strings.Contains(err.Error(), "line 3") {
		Te.Errorf("error should report the line number: %v", err)
	}
	_, err = ReadResidueLib(bufio.NewReader(strings.NewReader("SER OG O\n")))
	if err == nil {
		Te.Errorf("expected an error for a short line")
	}
	_, err = ReadResidueLib(bufio.NewReader(strings.NewReader("SER OG O minus\n")))
	if err == nil {
		Te.Errorf("expected an error for a bad charge")
	}
	if _, err := VdWFileRead("../test/nothere.txt"); err == nil {
		Te.Errorf("expected an error for a missing file")
	}
}

func TestFF(Te *testing.T) {
	F, err := FFFileRead("../test/vdwprm.txt", "../test/aaLib.txt")
	if err != nil {
		Te.Fatal(err)
	}
	og, err := F.Params("SER", "OG")
	if err != nil {
		Te.Fatal(err)
	}
	if og.Type != "O" || og.Charge != -0.66 || og.Eps != 0.21 || og.Sig != 2.96 {
		Te.Errorf("SER:OG wrong: %+v", og)
	}
	w, _ := F.Params("HOH", "O")
	eps, sig := CombineLJ(og, w)
	if math.Abs(eps-math.Sqrt(0.21*0.1521)) > 1e-12 || math.Abs(sig-math.Sqrt(2.96*3.1507)) > 1e-12 {
		Te.Errorf("wrong combination %f %f", eps, sig)
	}
	_, err = F.Params("SER", "CB")
	var miss *MissingError
	if !errors.As(err, &miss) || miss.Key != "SER:CB" || miss.Type {
		Te.Errorf("expected a missing entry error, got %v", err)
	}
	F.Lib.Add(&AtomParams{Residue: "SER", Atom: "CB", Type: "CT", Charge: 0.1})
	_, err = F.Params("SER", "CB")
	if !errors.As(err, &miss) || miss.Key != "CT" || !miss.Type {
		Te.Errorf("expected a missing type error, got %v", err)
	}
}
