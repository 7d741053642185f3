package chemgraph

import (
	"testing"

	chem "github.com/JMiguelRamirez/Polarcontacts"
	"github.com/JMiguelRamirez/Polarcontacts/contacts"
)

func TestNetwork(Te *testing.T) {
	mol, err := chem.PDBFileRead("../test/small.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	c, err := contacts.Find(mol, 0, contacts.DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	N := NewNetwork(contacts.ResiduePairs(c))
	if N.NResidues() != 3 {
		Te.Errorf("expected 3 residues in the network, got %d", N.NResidues())
	}
	ser, asn, cys, hoh := mol.Residue(0), mol.Residue(2), mol.Residue(3), mol.Residue(4)
	if N.Contacts(ser, asn) != 2 || N.Contacts(asn, hoh) != 1 || N.Contacts(ser, cys) != 0 {
		Te.Errorf("wrong contact counts")
	}
	cl := N.Clusters()
	if len(cl) != 1 || len(cl[0]) != 3 {
		Te.Fatalf("expected one cluster of 3 residues, got %v", cl)
	}
	if cl[0][0] != ser || cl[0][1] != asn || cl[0][2] != hoh {
		Te.Errorf("cluster residues not in topology order: %v", cl[0])
	}
	if n := N.ClusterContacts(cl[0]); n != len(c) {
		Te.Errorf("expected all the %d contacts in the cluster, got %d", len(c), n)
	}
}

func TestClusters(Te *testing.T) {
	mol, err := chem.PDBFileRead("../test/small.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	r := mol.Residues()
	one := []*contacts.Contact{{}}
	pairs := []*contacts.ResiduePair{
		{R1: r[3], R2: r[4], Contacts: one},
		{R1: r[0], R2: r[1], Contacts: one},
		{R1: r[1], R2: r[2], Contacts: one},
		{R1: r[0], R2: r[1], Contacts: one},
	}
	N := NewNetwork(pairs)
	cl := N.Clusters()
	if len(cl) != 2 || len(cl[0]) != 3 || len(cl[1]) != 2 {
		Te.Fatalf("expected clusters of 3 and 2 residues, got %v", cl)
	}
	if cl[1][0] != r[3] {
		Te.Errorf("wrong second cluster %v", cl[1])
	}
	//repeated pairs add up
	if N.Contacts(r[1], r[0]) != 2 {
		Te.Errorf("expected 2 contacts between %s and %s, got %d", r[0], r[1], N.Contacts(r[0], r[1]))
	}
	if N.ClusterContacts(cl[0]) != 3 || N.ClusterContacts(cl[1]) != 1 {
		Te.Errorf("wrong contacts per cluster %d %d", N.ClusterContacts(cl[0]), N.ClusterContacts(cl[1]))
	}
}
