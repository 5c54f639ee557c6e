package loop

import "github.com/wexinc/lazymvn/internal/pom"

// DocumentPersister saves dependency lists into a pom document.
type DocumentPersister struct {
	Document *pom.Document
}

// Save reconciles the document with deps and writes it to disk.
func (p DocumentPersister) Save(deps []pom.Dependency) error {
	if err := p.Document.Reconcile(deps); err != nil {
		return err
	}
	if !p.Document.Dirty() {
		return nil
	}
	return p.Document.Persist()
}
