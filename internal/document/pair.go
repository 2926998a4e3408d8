package document

import (
	"golang.org/x/sync/errgroup"
)

// LoadPair loads documents A and B concurrently.
// When both fail, the error for A is returned.
func LoadPair(pathA, pathB string) (Document, Document, error) {
	var (
		docA, docB Document
		errA, errB error
		g          errgroup.Group
	)

	g.Go(func() error {
		docA, errA = Load(pathA)
		return errA
	})
	g.Go(func() error {
		docB, errB = Load(pathB)
		return errB
	})
	_ = g.Wait()

	if errA != nil {
		return Document{}, Document{}, errA
	}
	if errB != nil {
		return Document{}, Document{}, errB
	}
	return docA, docB, nil
}
