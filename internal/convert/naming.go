package convert

import (
	"path/filepath"
	"strings"
)

// LosslessExt is the extension forced when the source extension is not kept.
const LosslessExt = ".png"

// Naming controls destination file names.
type Naming struct {
	Suffix  string // appended to the stem before the extension
	KeepExt bool   // keep the source extension instead of LosslessExt
}

// OutputPath maps rel, a path relative to the input root, to its destination
// under outRoot.
func (n Naming) OutputPath(outRoot, rel string) string {
	ext := filepath.Ext(rel)
	stem := strings.TrimSuffix(filepath.Base(rel), ext)

	outExt := LosslessExt
	if n.KeepExt && ext != "" {
		outExt = ext
	}

	return filepath.Join(outRoot, filepath.Dir(rel), stem+n.Suffix+outExt)
}
