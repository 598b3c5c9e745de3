package epg

import "os"

// WriteFile marshals the document and writes it to path through a temporary
// file plus rename, so a failing run never truncates the previous guide.
func WriteFile(t *TV, path string) error {
	data, err := t.Marshal()
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
