/*Package chem is the main package of Polarcontacts. It provides atom, residue and molecule
structures and facilities for reading the structure files used in structural biology.

	**Capabilities**

    Reads PDB and PDBx/mmCIF files, plain or compressed with gzip (.gz) or z-standard (.zst).

    Keeps the structure hierarchy: models (coordinate frames), chains, residues and atoms.
	Each atom keeps a reference to the residue it belongs to.

    Allows to select atoms by using a go slice of indexes.

Coordinates are kept in a v3.Matrix (see the v3 package), based on gonum's Dense type.
Each row of a v3.Matrix represents one point in space.

The contacts, energy, top, chemgraph and chemplot packages build on this one to detect
polar contacts and evaluate residue-residue interaction energies.
*/
package chem
