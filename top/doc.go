/*
Top is a package for reading the force-field parameters needed to evaluate
non-bonded interaction energies (not to be confused with the chem Topology
structure).

Two plain-text files are supported. The VdW parameter file has one atom type
per line:

	type  eps  sig  [mass  [fsrf]]

and the residue library assigns a type and a partial charge to each atom name
of each residue:

	RES  ATOM  type  charge

In both files everything after a '#' is a comment. Atoms are looked up with the
"RES:ATOM" key.
*/
package top
