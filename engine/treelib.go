package engine

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// xmlLibrary is the on-disk tree library schema:
//
//	<treelibrary>
//	  <tree label="willow">
//	    <recursionlevels>4</recursionlevels>
//	    <branchesperlevel>5</branchesperlevel>
//	    <trunksegments>8</trunksegments>
//	    <leavesperbranch>12</leavesperbranch>
//	  </tree>
//	</treelibrary>
type xmlLibrary struct {
	XMLName xml.Name  `xml:"treelibrary"`
	Trees   []xmlTree `xml:"tree"`
}

type xmlTree struct {
	Label            string `xml:"label,attr"`
	RecursionLevels  int    `xml:"recursionlevels"`
	BranchesPerLevel int    `xml:"branchesperlevel"`
	TrunkSegments    int    `xml:"trunksegments"`
	LeavesPerBranch  int    `xml:"leavesperbranch"`
}

// LoadLibrary merges the species definitions from an XML tree library file
// into the generator's library. Existing labels are overwritten. The file
// format is owned by the engine, not the boundary layer.
func (g *TreeGenerator) LoadLibrary(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTreeLibrary, err)
	}

	var lib xmlLibrary
	if err := xml.Unmarshal(data, &lib); err != nil {
		return fmt.Errorf("%w: %v", ErrTreeLibrary, err)
	}
	if len(lib.Trees) == 0 {
		return fmt.Errorf("%w: no tree entries in %s", ErrTreeLibrary, path)
	}

	for _, t := range lib.Trees {
		if t.Label == "" {
			return fmt.Errorf("%w: tree entry without label in %s", ErrTreeLibrary, path)
		}
		p := TreeParams{
			Label:            t.Label,
			RecursionLevels:  t.RecursionLevels,
			BranchesPerLevel: t.BranchesPerLevel,
			TrunkSegments:    t.TrunkSegments,
			LeavesPerBranch:  t.LeavesPerBranch,
		}
		// Missing numeric fields fall back to modest defaults rather than
		// zero so a sparse entry still produces geometry.
		if p.RecursionLevels <= 0 {
			p.RecursionLevels = 2
		}
		if p.BranchesPerLevel <= 0 {
			p.BranchesPerLevel = 3
		}
		if p.TrunkSegments <= 0 {
			p.TrunkSegments = 4
		}
		if p.LeavesPerBranch <= 0 {
			p.LeavesPerBranch = 10
		}
		g.library[strings.ToLower(p.Label)] = p
	}
	return nil
}
